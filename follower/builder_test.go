package follower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTrigger(t *testing.T) {
	cases := []struct {
		name      string
		line      string
		note      int
		repeats   int
		action    []string
		hasAction bool
		advance   bool
	}{
		{"action", "60 3 trigger 144 60 100", 60, 3, []string{"144", "60", "100"}, true, false},
		{"advance only", "60 3 next", 60, 3, nil, false, true},
		{"action and advance", "60 3 trigger 144 60 100 next", 60, 3, []string{"144", "60", "100"}, true, true},
		{"empty action", "0 1 trigger", 0, 1, nil, true, false},
		{"empty action with advance", "127 2 trigger next", 127, 2, nil, true, true},
		{"next inside payload", "60 1 trigger next 1", 60, 1, []string{"next", "1"}, true, false},
		{"non numeric payload", "60 1 trigger play cue-3", 60, 1, []string{"play", "cue-3"}, true, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr, err := BuildTrigger(ParseDefinition(c.line))
			require.NoError(t, err)
			assert.Equal(t, c.note, tr.Note)
			assert.Equal(t, c.repeats, tr.Repeats)
			assert.Equal(t, c.action, tr.Action)
			assert.Equal(t, c.hasAction, tr.HasAction)
			assert.Equal(t, c.advance, tr.Advance)
		})
	}
}

func TestBuildTrigger_Rejects(t *testing.T) {
	cases := []struct {
		line string
		want error
	}{
		{"", ErrInsufficientArguments},
		{"60", ErrInsufficientArguments},
		{"60 3", ErrInsufficientArguments},
		{"128 3 next", ErrMalformedTrigger},
		{"-1 3 next", ErrMalformedTrigger},
		{"60.5 3 next", ErrMalformedTrigger},
		{"c4 3 next", ErrMalformedTrigger},
		{"60 0 next", ErrMalformedTrigger},
		{"60 -2 next", ErrMalformedTrigger},
		{"60 x next", ErrMalformedTrigger},
		{"60 3 play", ErrUnknownTriggerType},
		{"60 3 144 60 100", ErrUnknownTriggerType},
	}
	for _, c := range cases {
		t.Run(c.line, func(t *testing.T) {
			_, err := BuildTrigger(ParseDefinition(c.line))
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestBuildTrigger_TwoTokensRejected(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec)

	_, err := e.DefineTrigger([]string{"60", "3"})

	assert.ErrorIs(t, err, ErrInsufficientArguments)
	assert.Empty(t, e.Triggers())
	assert.Zero(t, e.NextID())
	assert.Len(t, rec.diagnostics, 1)
}

func TestActionRoundTrip(t *testing.T) {
	e := NewEngine(nil)
	tr, err := e.DefineTrigger([]string{"60", "3", "trigger", "144", "60", "100"})
	require.NoError(t, err)

	got := e.Triggers()
	require.Len(t, got, 1)
	assert.Equal(t, tr, got[0])
	assert.Equal(t, []string{"144", "60", "100"}, got[0].Action)
}

func TestBuildTrigger_DoesNotAliasInput(t *testing.T) {
	tokens := []string{"60", "1", "trigger", "144", "60", "100"}
	tr, err := BuildTrigger(tokens)
	require.NoError(t, err)

	tokens[3] = "128"
	assert.Equal(t, "144", tr.Action[0])
}

package follower

import (
	"testing"

	"github.com/Southclaws/fault/ftag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	actions     [][]string
	advances    int
	counters    int
	refreshes   []State
	diagnostics []error
}

func (r *recorder) Action(p []string)      { r.actions = append(r.actions, p) }
func (r *recorder) Advance()               { r.advances++ }
func (r *recorder) Counters([NumNotes]int) { r.counters++ }
func (r *recorder) Refresh(s State)        { r.refreshes = append(r.refreshes, s) }
func (r *recorder) Diagnostic(err error)   { r.diagnostics = append(r.diagnostics, err) }

func define(t *testing.T, e *Engine, line string) Trigger {
	t.Helper()
	tr, err := e.DefineTrigger(ParseDefinition(line))
	require.NoError(t, err, line)
	return tr
}

func TestProcessNote_LowVelocityIsIgnored(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec)
	e.SetMinVelocity(10)
	define(t, e, "60 1 trigger 144 60 100")

	for v := 0; v <= 10; v++ {
		require.NoError(t, e.ProcessNote(60, v))
	}

	assert.Equal(t, [NumNotes]int{}, e.Counters())
	assert.Empty(t, rec.actions)
	assert.Equal(t, 1, len(e.Triggers()))
	assert.Zero(t, rec.counters)
	// every ignored event still asks for a redraw
	assert.Len(t, rec.refreshes, 1+11)
}

func TestProcessNote_Malformed(t *testing.T) {
	cases := []struct{ note, vel int }{
		{-1, 100}, {128, 100}, {60, -1}, {60, 128},
	}
	for _, c := range cases {
		rec := &recorder{}
		e := NewEngine(rec)
		err := e.ProcessNote(c.note, c.vel)
		assert.ErrorIs(t, err, ErrMalformedNoteEvent)
		assert.Equal(t, ftag.InvalidArgument, ftag.Get(err))
		assert.Len(t, rec.diagnostics, 1)
		assert.Equal(t, [NumNotes]int{}, e.Counters())
	}
}

func TestProcessNote_ActionFiresOnceOnThirdHit(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec)
	e.SetMinVelocity(1)
	define(t, e, "60 3 trigger 144 60 100")

	require.NoError(t, e.ProcessNote(60, 100))
	require.NoError(t, e.ProcessNote(60, 100))
	assert.Empty(t, rec.actions)
	assert.Len(t, e.Triggers(), 1)

	require.NoError(t, e.ProcessNote(60, 100))
	require.Len(t, rec.actions, 1)
	assert.Equal(t, []string{"144", "60", "100"}, rec.actions[0])
	assert.Empty(t, e.Triggers())

	require.NoError(t, e.ProcessNote(60, 100))
	assert.Len(t, rec.actions, 1)
	assert.Equal(t, 4, e.Counters()[60])
}

func TestProcessNote_AdvanceResetsEverything(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec)
	define(t, e, "62 5 trigger 144 62 100")
	define(t, e, "64 2 next")
	define(t, e, "60 1 next")
	require.NoError(t, e.ProcessNote(64, 90))

	require.NoError(t, e.ProcessNote(60, 100))

	assert.Equal(t, 1, rec.advances)
	assert.Equal(t, [NumNotes]int{}, e.Counters())
	assert.Empty(t, e.Triggers())
	assert.Zero(t, e.NextID())

	last := rec.refreshes[len(rec.refreshes)-1]
	assert.Empty(t, last.Triggers)
	assert.Equal(t, [NumNotes]int{}, last.Counts)
}

func TestProcessNote_ReverseScanContinuesPastUnmetTrigger(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec)
	first := define(t, e, "60 1 trigger 144 60 100")
	second := define(t, e, "60 2 next")

	require.NoError(t, e.ProcessNote(60, 100))

	require.Len(t, rec.actions, 1)
	assert.Equal(t, []string{"144", "60", "100"}, rec.actions[0])
	assert.Zero(t, rec.advances)

	left := e.Triggers()
	require.Len(t, left, 1)
	assert.Equal(t, second.ID, left[0].ID)
	assert.NotEqual(t, first.ID, left[0].ID)
}

func TestProcessNote_NewestTriggerFiresFirst(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec)
	define(t, e, "60 1 trigger a")
	define(t, e, "60 1 trigger b")
	define(t, e, "60 1 trigger c")

	require.NoError(t, e.ProcessNote(60, 100))

	assert.Equal(t, [][]string{{"c"}, {"b"}, {"a"}}, rec.actions)
	assert.Empty(t, e.Triggers())
}

func TestProcessNote_AdvanceStopsScan(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec)
	define(t, e, "60 1 trigger older")
	define(t, e, "60 1 trigger newer next")

	require.NoError(t, e.ProcessNote(60, 100))

	// the older trigger is wiped by the reset, never fired
	assert.Equal(t, [][]string{{"newer"}}, rec.actions)
	assert.Equal(t, 1, rec.advances)
	assert.Empty(t, e.Triggers())
}

func TestProcessNote_EmptyActionStillFires(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec)
	define(t, e, "60 1 trigger")

	require.NoError(t, e.ProcessNote(60, 100))

	require.Len(t, rec.actions, 1)
	assert.Empty(t, rec.actions[0])
	assert.Empty(t, e.Triggers())
}

func TestProcessNote_RefreshOnlyWhenRelevant(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(rec)
	define(t, e, "60 2 next")
	before := len(rec.refreshes)

	require.NoError(t, e.ProcessNote(61, 100))
	assert.Len(t, rec.refreshes, before, "unwatched note should not redraw")
	assert.Equal(t, 1, rec.counters)

	require.NoError(t, e.ProcessNote(60, 100))
	require.Len(t, rec.refreshes, before+1)
	assert.Equal(t, 1, rec.refreshes[before].Triggers[0].Hits)
}

func TestDefineTrigger_IDsIncrease(t *testing.T) {
	e := NewEngine(nil)
	lines := []string{
		"60 3 trigger 144 60 100",
		"60 3",
		"61 1 next",
		"x 1 next",
		"62 2 foo",
		"63 4 trigger 1 next",
	}
	accepted := 0
	for _, l := range lines {
		if _, err := e.DefineTrigger(ParseDefinition(l)); err == nil {
			accepted++
		}
	}

	got := e.Triggers()
	require.Len(t, got, accepted)
	assert.Equal(t, 3, accepted)
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i].ID, got[i-1].ID)
	}
	assert.Equal(t, 3, e.NextID())
}

func TestResetAll_Idempotent(t *testing.T) {
	e := NewEngine(nil)
	define(t, e, "60 3 trigger 1 2 3")
	require.NoError(t, e.ProcessNote(60, 100))

	e.ResetAll()
	once := e.State()
	e.ResetAll()

	assert.Equal(t, once, e.State())
	assert.Equal(t, [NumNotes]int{}, e.Counters())
	assert.Empty(t, e.Triggers())
	assert.Zero(t, e.NextID())
}

func TestResetCounters_KeepsTriggers(t *testing.T) {
	e := NewEngine(nil)
	define(t, e, "60 2 trigger x")
	require.NoError(t, e.ProcessNote(60, 100))

	e.ResetCounters()

	assert.Equal(t, [NumNotes]int{}, e.Counters())
	assert.Len(t, e.Triggers(), 1)
	assert.Equal(t, 1, e.NextID())

	// counting starts over
	require.NoError(t, e.ProcessNote(60, 100))
	assert.Len(t, e.Triggers(), 1)
}

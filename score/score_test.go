package score

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"score-follower/follower"
)

const etude = `
title = "Etude"

[[cue]]
name = "opening"
scene = "Wide"
triggers = [
  "60 3 trigger 144 72 100",
  "67 1 next",
]

[[cue]]
triggers = ["62 2 trigger 144 74 90 next"]
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(etude))
	require.NoError(t, err)

	assert.Equal(t, "Etude", s.Title)
	require.Equal(t, 2, s.Len())

	c, ok := s.Cue(0)
	require.True(t, ok)
	assert.Equal(t, "opening", c.Label(0))
	assert.Equal(t, "Wide", c.Scene)
	assert.Equal(t, [][]string{
		{"60", "3", "trigger", "144", "72", "100"},
		{"67", "1", "next"},
	}, c.Tokens())

	c, ok = s.Cue(1)
	require.True(t, ok)
	assert.Equal(t, "cue 2", c.Label(1))

	_, ok = s.Cue(2)
	assert.False(t, ok)
	_, ok = s.Cue(-1)
	assert.False(t, ok)
}

func TestParseRejectsBadTrigger(t *testing.T) {
	_, err := Parse([]byte(`
[[cue]]
name = "broken"
triggers = ["60 3 trigger 1", "200 1 next"]
`))
	assert.ErrorIs(t, err, follower.ErrMalformedTrigger)
	assert.ErrorContains(t, err, "broken, trigger 2")

	_, err = Parse([]byte(`[[cue]]
triggers = ["60 3"]`))
	assert.ErrorIs(t, err, follower.ErrInsufficientArguments)

	_, err = Parse([]byte(`title = `))
	assert.Error(t, err)
}

func TestNilScore(t *testing.T) {
	var s *Score
	assert.Zero(t, s.Len())
	_, ok := s.Cue(0)
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etude.toml")
	require.NoError(t, os.WriteFile(path, []byte(etude), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etude.toml")
	require.NoError(t, os.WriteFile(path, []byte(etude), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Score, 8)
	errs := make(chan error, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(s *Score) { changes <- s }, func(err error) { errs <- err })
	}()

	updated := etude + "\n[[cue]]\nname = \"coda\"\ntriggers = [\"48 1 next\"]\n"

	// keep writing until the watcher is up and has seen a change
	var got *Score
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(updated), 0o644)
		select {
		case got = <-changes:
			return true
		default:
			return false
		}
	}, 5*time.Second, 200*time.Millisecond)

	assert.Equal(t, 3, got.Len())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not stop")
	}
}

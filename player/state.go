package player

import (
	"time"

	"score-follower/debug"
	"score-follower/follower"
)

// EntryKind classifies activity log lines
type EntryKind int

const (
	EntryInfo EntryKind = iota
	EntryAction
	EntryCue
	EntryError
)

func (k EntryKind) String() string {
	switch k {
	case EntryAction:
		return "action"
	case EntryCue:
		return "cue"
	case EntryError:
		return "error"
	default:
		return "info"
	}
}

// Entry is one line of the activity log
type Entry struct {
	Time time.Time
	Kind EntryKind
	Text string
}

// maxEntries bounds the activity log
const maxEntries = 8

// record appends to the activity log. Caller holds mu.
func (m *Manager) record(kind EntryKind, text string) {
	debug.Log(kind.String(), "%s", text)
	m.recent = append(m.recent, Entry{Time: time.Now(), Kind: kind, Text: text})
	if len(m.recent) > maxEntries {
		m.recent = m.recent[len(m.recent)-maxEntries:]
	}
}

// Snapshot is a consistent copy of everything the TUI draws
type Snapshot struct {
	State       follower.State
	Title       string
	Cue         int // 0-based; == Cues once the score has ended
	Cues        int
	CueName     string
	MinVelocity int
	Recent      []Entry
}

// Ended reports whether every cue has been played
func (s Snapshot) Ended() bool {
	return s.Cues > 0 && s.Cue >= s.Cues
}

// Snapshot returns the current state
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Snapshot{
		State:       m.state,
		Cue:         m.cue,
		Cues:        m.score.Len(),
		MinVelocity: m.engine.MinVelocity(),
		Recent:      append([]Entry(nil), m.recent...),
	}
	if m.score != nil {
		s.Title = m.score.Title
	}
	if c, ok := m.score.Cue(m.cue); ok {
		s.CueName = c.Label(m.cue)
	}
	return s
}

package follower

import (
	"fmt"
	"io"
)

// TriggerView is the display projection of one armed trigger
type TriggerView struct {
	ID      int
	Note    int
	Hits    int
	Repeats int
	Action  string
	Advance bool
}

// Describe renders the view as a single cell line
func (v TriggerView) Describe() string {
	s := fmt.Sprintf("Trigger @%d  |  Note: %d  |  completed: %d/%d  |  action: %s",
		v.ID, v.Note, v.Hits, v.Repeats, v.Action)
	if v.Advance {
		s += MarkerNext
	}
	return s
}

// State is everything a display needs to redraw
type State struct {
	Counts   [NumNotes]int
	Triggers []TriggerView
}

// State builds the current display projection
func (e *Engine) State() State {
	s := State{Counts: e.counters.Snapshot()}
	for _, t := range e.registry.triggers {
		s.Triggers = append(s.Triggers, TriggerView{
			ID:      t.ID,
			Note:    t.Note,
			Hits:    e.counters.Get(t.Note),
			Repeats: t.Repeats,
			Action:  FormatAction(t.Action),
			Advance: t.Advance,
		})
	}
	return s
}

// DumpCounters writes one line per note with its hit count
func (e *Engine) DumpCounters(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Score Follower - Note Dump:"); err != nil {
		return err
	}
	for note, hits := range e.counters.Snapshot() {
		if _, err := fmt.Fprintf(w, " - Hits for %d: %d\n", note, hits); err != nil {
			return err
		}
	}
	return nil
}

// DumpTriggers writes every armed trigger, or a notice when there are none
func (e *Engine) DumpTriggers(w io.Writer) error {
	if e.registry.Len() == 0 {
		_, err := fmt.Fprintln(w, "No armed triggers currently set")
		return err
	}
	for _, t := range e.registry.triggers {
		_, err := fmt.Fprintf(w, "Trigger is waiting for :\n   - Note :%d\n   - Repeats :%d\n   - Action :%s\n",
			t.Note, t.Repeats, FormatAction(t.Action))
		if err != nil {
			return err
		}
	}
	return nil
}

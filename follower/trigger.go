package follower

import "strings"

// Trigger waits for Repeats hits on Note, then fires its action and/or
// advances to the next cue.
type Trigger struct {
	ID        int
	Note      int
	Repeats   int
	Action    []string // emitted verbatim when fired
	HasAction bool     // true even when Action is empty ("60 1 trigger")
	Advance   bool
}

// Satisfied reports whether the counters have reached this trigger's threshold
func (t Trigger) Satisfied(c *Counters) bool {
	return c.Get(t.Note) >= t.Repeats
}

// FormatAction renders an action payload as space separated tokens,
// each followed by a space. Deterministic for equal inputs.
func FormatAction(action []string) string {
	var b strings.Builder
	for _, tok := range action {
		b.WriteString(tok)
		b.WriteByte(' ')
	}
	return b.String()
}

// Registry is the insertion-ordered list of armed triggers
type Registry struct {
	triggers []Trigger
}

// Add appends a trigger
func (r *Registry) Add(t Trigger) {
	r.triggers = append(r.triggers, t)
}

// Len returns the number of armed triggers
func (r *Registry) Len() int {
	return len(r.triggers)
}

// At returns the trigger at insertion position i
func (r *Registry) At(i int) Trigger {
	return r.triggers[i]
}

// RemoveAt drops the trigger at insertion position i, keeping the order of the rest
func (r *Registry) RemoveAt(i int) {
	r.triggers = append(r.triggers[:i], r.triggers[i+1:]...)
}

// Clear drops every trigger
func (r *Registry) Clear() {
	r.triggers = nil
}

// Watches reports whether any armed trigger listens to note
func (r *Registry) Watches(note int) bool {
	for _, t := range r.triggers {
		if t.Note == note {
			return true
		}
	}
	return false
}

// All returns a copy of the armed triggers in insertion order
func (r *Registry) All() []Trigger {
	out := make([]Trigger, len(r.triggers))
	copy(out, r.triggers)
	return out
}

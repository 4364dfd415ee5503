package follower

// NumNotes is the number of MIDI note numbers tracked
const NumNotes = 128

// Counters holds one hit counter per note number.
// Values only ever go up by one, and only ever reset all together.
type Counters struct {
	counts [NumNotes]int
}

// Increment adds one hit for note
func (c *Counters) Increment(note int) error {
	if !validNote(note) {
		return invalid(ErrNoteOutOfRange, "increment note %d", note)
	}
	c.counts[note]++
	return nil
}

// Get returns the hits recorded for note (0 if out of range)
func (c *Counters) Get(note int) int {
	if !validNote(note) {
		return 0
	}
	return c.counts[note]
}

// Reset zeroes every counter
func (c *Counters) Reset() {
	c.counts = [NumNotes]int{}
}

// Snapshot returns a copy of all counters, indexed by note number
func (c *Counters) Snapshot() [NumNotes]int {
	return c.counts
}

func validNote(n int) bool {
	return n >= 0 && n < NumNotes
}

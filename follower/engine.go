package follower

// DefaultMinVelocity is the velocity at or below which notes are ignored
const DefaultMinVelocity = 1

// Engine matches note events against armed triggers.
//
// Engine does no locking. The owner must serialise calls to ProcessNote,
// DefineTrigger and the reset methods.
type Engine struct {
	counters    Counters
	registry    Registry
	nextID      int
	minVelocity int
	out         Outlet
}

// NewEngine creates an engine reporting to out (nil discards output)
func NewEngine(out Outlet) *Engine {
	if out == nil {
		out = NopOutlet{}
	}
	return &Engine{
		minVelocity: DefaultMinVelocity,
		out:         out,
	}
}

// SetMinVelocity sets the velocity threshold; notes with velocity <= v are ignored
func (e *Engine) SetMinVelocity(v int) {
	e.minVelocity = v
}

// MinVelocity returns the current velocity threshold
func (e *Engine) MinVelocity() int {
	return e.minVelocity
}

// NextID returns the id the next accepted trigger will get
func (e *Engine) NextID() int {
	return e.nextID
}

// DefineTrigger parses tokens and arms the resulting trigger.
// Rejected definitions leave the registry untouched.
func (e *Engine) DefineTrigger(tokens []string) (Trigger, error) {
	t, err := BuildTrigger(tokens)
	if err != nil {
		e.out.Diagnostic(err)
		return Trigger{}, err
	}
	t.ID = e.nextID
	e.nextID++
	e.registry.Add(t)
	e.out.Refresh(e.State())
	return t, nil
}

// ProcessNote counts one note event and fires whatever it satisfies
func (e *Engine) ProcessNote(note, velocity int) error {
	if !validNote(note) || velocity < 0 || velocity > 127 {
		err := invalid(ErrMalformedNoteEvent, "note=%d velocity=%d", note, velocity)
		e.out.Diagnostic(err)
		return err
	}

	if velocity <= e.minVelocity {
		// nothing changes; redraw anyway
		e.out.Refresh(e.State())
		return nil
	}

	if err := e.counters.Increment(note); err != nil {
		return err
	}
	refresh := e.registry.Watches(note)
	e.out.Counters(e.counters.Snapshot())

	// Newest first. Removing index i never disturbs indices below it.
	for i := e.registry.Len() - 1; i >= 0; i-- {
		t := e.registry.At(i)
		if !t.Satisfied(&e.counters) {
			continue
		}
		refresh = true
		if t.HasAction {
			e.out.Action(t.Action)
			e.registry.RemoveAt(i)
		}
		if t.Advance {
			e.reset()
			e.out.Advance()
			break
		}
	}

	if refresh {
		e.out.Refresh(e.State())
	}
	return nil
}

// ResetCounters zeroes the hit counters, leaving triggers armed
func (e *Engine) ResetCounters() {
	e.counters.Reset()
	e.out.Refresh(e.State())
}

// ResetAll zeroes the counters, disarms every trigger and restarts ids at 0
func (e *Engine) ResetAll() {
	e.reset()
	e.out.Refresh(e.State())
}

func (e *Engine) reset() {
	e.counters.Reset()
	e.registry.Clear()
	e.nextID = 0
}

// Counters returns a copy of the hit counters
func (e *Engine) Counters() [NumNotes]int {
	return e.counters.Snapshot()
}

// Triggers returns the armed triggers in insertion order
func (e *Engine) Triggers() []Trigger {
	return e.registry.All()
}

package follower

// Outlet receives everything the engine emits. Calls are synchronous and
// happen while the engine is mid-operation, so implementations must not
// call back into the engine.
type Outlet interface {
	// Action delivers a fired trigger's payload verbatim
	Action(payload []string)
	// Advance signals that an advancing trigger fired; the engine has
	// already been reset when this is called
	Advance()
	// Counters publishes the counter table after a counted hit
	Counters(counts [NumNotes]int)
	// Refresh asks the display to redraw from s
	Refresh(s State)
	// Diagnostic reports a rejected input
	Diagnostic(err error)
}

// NopOutlet discards everything
type NopOutlet struct{}

func (NopOutlet) Action([]string)        {}
func (NopOutlet) Advance()               {}
func (NopOutlet) Counters([NumNotes]int) {}
func (NopOutlet) Refresh(State)          {}
func (NopOutlet) Diagnostic(error)       {}

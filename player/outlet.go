package player

import "score-follower/follower"

// batch collects what the engine emits during one locked call. The
// manager drains it after the engine returns and performs any I/O once
// the lock is released.
type batch struct {
	actions [][]string
	advance bool
	errs    []error
	state   *follower.State
}

func (b *batch) Action(payload []string) {
	b.actions = append(b.actions, payload)
}

func (b *batch) Advance() {
	b.advance = true
}

// Counters is ignored; every counted hit that matters also refreshes
func (b *batch) Counters([follower.NumNotes]int) {}

func (b *batch) Refresh(s follower.State) {
	b.state = &s
}

func (b *batch) Diagnostic(err error) {
	b.errs = append(b.errs, err)
}

// take returns the collected output and empties the batch
func (b *batch) take() batch {
	out := *b
	*b = batch{}
	return out
}

// Package player runs a score: it owns the follower engine, feeds it live
// note input, steps through cues when triggers advance, and performs the
// resulting MIDI and OBS output.
package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"score-follower/debug"
	"score-follower/follower"
	"score-follower/midi"
	"score-follower/score"
)

var (
	ErrNoScore   = errors.New("no score loaded")
	ErrNoSuchCue = errors.New("no such cue")
)

// ActionSender delivers a fired trigger's payload
type ActionSender interface {
	Send(tokens []string) error
}

// SceneSwitcher shows a scene when a cue that names one is entered
type SceneSwitcher interface {
	SetScene(name string) error
}

// Options configures a Manager. Nil senders disable that output.
type Options struct {
	Channel     int // 0 accepts every channel
	MinVelocity int
	Actions     ActionSender
	Scenes      SceneSwitcher
}

// Manager serialises everything that touches the engine. Note input,
// trigger definitions, resets and cue changes may come from any goroutine.
type Manager struct {
	mu     sync.Mutex
	engine *follower.Engine
	out    batch
	state  follower.State

	score *score.Score
	cue   int // == score.Len() once the score has ended

	channel int
	actions ActionSender
	scenes  SceneSwitcher

	recent []Entry

	midiInputChan chan midi.NoteEvent

	// Notify TUI of updates
	UpdateChan chan struct{}
}

// pending is the I/O left over from one locked call
type pending struct {
	actions [][]string
	scene   string
}

// NewManager creates a manager with an empty engine and no score
func NewManager(opts Options) *Manager {
	m := &Manager{
		channel:       opts.Channel,
		actions:       opts.Actions,
		scenes:        opts.Scenes,
		midiInputChan: make(chan midi.NoteEvent, 32),
		UpdateChan:    make(chan struct{}, 1),
	}
	m.engine = follower.NewEngine(&m.out)
	m.engine.SetMinVelocity(opts.MinVelocity)
	m.state = m.engine.State()
	return m
}

// StartRuntime consumes note input from attached controllers until ctx is done
func (m *Manager) StartRuntime(ctx context.Context) {
	go m.midiInputLoop(ctx)
}

func (m *Manager) midiInputLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-m.midiInputChan:
			m.HandleNote(evt)
		}
	}
}

// Attach forwards a controller's note events until its channel closes
func (m *Manager) Attach(ctrl midi.Controller) {
	if ctrl == nil {
		return
	}
	go func() {
		for evt := range ctrl.NoteEvents() {
			select {
			case m.midiInputChan <- evt:
			default:
				debug.LogEvery(10, "midi", "input queue full, dropped note %d", evt.Note)
			}
		}
	}()
}

// HandleNote feeds one note-on to the engine
func (m *Manager) HandleNote(evt midi.NoteEvent) error {
	if !midi.AcceptsChannel(m.channel, evt.Channel) {
		return nil
	}
	debug.Log("engine", "note=%d vel=%d ch=%d", evt.Note, evt.Velocity, evt.Channel)
	return m.run(func(p *pending) error {
		return m.engine.ProcessNote(int(evt.Note), int(evt.Velocity))
	})
}

// DefineTrigger arms a trigger from a definition line such as "60 3 trigger 144 72 100 next"
func (m *Manager) DefineTrigger(line string) (follower.Trigger, error) {
	var t follower.Trigger
	err := m.run(func(p *pending) error {
		var err error
		t, err = m.engine.DefineTrigger(follower.ParseDefinition(line))
		return err
	})
	return t, err
}

// ResetCounters zeroes the hit counters
func (m *Manager) ResetCounters() {
	m.run(func(p *pending) error {
		m.engine.ResetCounters()
		return nil
	})
}

// ResetAll zeroes the counters and disarms every trigger. The cue pointer
// does not move.
func (m *Manager) ResetAll() {
	m.run(func(p *pending) error {
		m.engine.ResetAll()
		return nil
	})
}

// SetMinVelocity changes the velocity threshold
func (m *Manager) SetMinVelocity(v int) {
	m.run(func(p *pending) error {
		m.engine.SetMinVelocity(v)
		return nil
	})
}

// Start enters the first cue of the loaded score
func (m *Manager) Start() error {
	return m.GotoCue(0)
}

// NextCue moves to the following cue, or to the end of the score
func (m *Manager) NextCue() error {
	return m.run(func(p *pending) error {
		n := m.score.Len()
		if n == 0 {
			return ErrNoScore
		}
		if m.cue >= n {
			return nil
		}
		m.enterLocked(m.cue+1, p)
		return nil
	})
}

// PrevCue moves back one cue, stopping at the first
func (m *Manager) PrevCue() error {
	return m.run(func(p *pending) error {
		if m.score.Len() == 0 {
			return ErrNoScore
		}
		m.enterLocked(max(m.cue-1, 0), p)
		return nil
	})
}

// GotoCue re-arms cue i from scratch
func (m *Manager) GotoCue(i int) error {
	return m.run(func(p *pending) error {
		n := m.score.Len()
		if n == 0 {
			return ErrNoScore
		}
		if i < 0 || i >= n {
			return fmt.Errorf("%w: %d (score has %d)", ErrNoSuchCue, i+1, n)
		}
		m.enterLocked(i, p)
		return nil
	})
}

// Reload swaps in a new score and re-enters the current cue position,
// clamped to the new length
func (m *Manager) Reload(s *score.Score) {
	m.run(func(p *pending) error {
		m.score = s
		idx := min(m.cue, max(s.Len()-1, 0))
		m.record(EntryInfo, fmt.Sprintf("score reloaded (%d cues)", s.Len()))
		m.enterLocked(idx, p)
		return nil
	})
}

// Report records an error from outside the engine (score watcher, devices)
func (m *Manager) Report(err error) {
	if err == nil {
		return
	}
	m.mu.Lock()
	m.record(EntryError, err.Error())
	m.mu.Unlock()
	m.notifyUpdate()
}

// Notice records an informational line
func (m *Manager) Notice(format string, args ...any) {
	m.mu.Lock()
	m.record(EntryInfo, fmt.Sprintf(format, args...))
	m.mu.Unlock()
	m.notifyUpdate()
}

// Dump writes the counter and trigger dumps to w
func (m *Manager) Dump(w io.Writer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.engine.DumpCounters(w); err != nil {
		return err
	}
	return m.engine.DumpTriggers(w)
}

// run executes fn under the lock, drains engine output, then performs I/O
// and notifies the UI with the lock released
func (m *Manager) run(fn func(p *pending) error) error {
	var p pending
	m.mu.Lock()
	err := fn(&p)
	m.drain(&p)
	m.mu.Unlock()

	m.perform(p)
	m.notifyUpdate()
	return err
}

// drain consumes the batch; an advance enters the next cue, whose
// definitions are drained in turn
func (m *Manager) drain(p *pending) {
	for {
		b := m.out.take()
		if b.state != nil {
			m.state = *b.state
		}
		for _, err := range b.errs {
			m.record(EntryError, err.Error())
		}
		for _, a := range b.actions {
			p.actions = append(p.actions, a)
			m.record(EntryAction, follower.FormatAction(a))
		}
		if !b.advance {
			return
		}
		if m.cue >= m.score.Len() {
			// ended or no score: the engine has already reset itself
			continue
		}
		m.enterLocked(m.cue+1, p)
	}
}

// enterLocked resets the engine and arms cue i. Past the last cue the
// engine stays empty. Bad definitions are logged with their cue and
// position and skipped. Caller holds mu.
func (m *Manager) enterLocked(i int, p *pending) {
	m.engine.ResetAll()
	m.cue = i

	c, ok := m.score.Cue(i)
	if !ok {
		if m.score.Len() > 0 {
			m.record(EntryCue, "end of score")
		}
		return
	}

	m.record(EntryCue, fmt.Sprintf("entered %s (%d/%d)", c.Label(i), i+1, m.score.Len()))
	queued := len(m.out.errs)
	for j, tokens := range c.Tokens() {
		if _, err := m.engine.DefineTrigger(tokens); err != nil {
			m.record(EntryError, fmt.Sprintf("%s, trigger %d: %v", c.Label(i), j+1, err))
		}
	}
	// drop the engine's bare diagnostics for these definitions
	m.out.errs = m.out.errs[:queued]

	if c.Scene != "" {
		p.scene = c.Scene
	}
}

// perform sends actions and switches scenes; failures are recorded
func (m *Manager) perform(p pending) {
	for _, a := range p.actions {
		if m.actions == nil {
			debug.Log("engine", "action %s(no output)", follower.FormatAction(a))
			continue
		}
		if err := m.actions.Send(a); err != nil {
			m.Report(fmt.Errorf("send %s: %w", follower.FormatAction(a), err))
		}
	}

	if p.scene != "" && m.scenes != nil {
		if err := m.scenes.SetScene(p.scene); err != nil {
			m.Report(err)
		}
	}
}

// notifyUpdate wakes the TUI without blocking
func (m *Manager) notifyUpdate() {
	select {
	case m.UpdateChan <- struct{}{}:
	default:
	}
}

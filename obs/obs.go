// Package obs switches OBS program scenes over obs-websocket when a cue
// is entered.
package obs

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/andreykaipov/goobs"
	"github.com/andreykaipov/goobs/api/requests/scenes"

	"score-follower/debug"
)

// sceneSetter is the slice of the goobs client we use
type sceneSetter interface {
	SetCurrentProgramScene(params *scenes.SetCurrentProgramSceneParams) (*scenes.SetCurrentProgramSceneResponse, error)
}

// Switcher sets the program scene on one OBS instance. The connection is
// made on first use and re-made after a failure.
type Switcher struct {
	addr     string
	password string
	timeout  time.Duration

	mu     sync.Mutex
	scenes sceneSetter
	dial   func() (sceneSetter, func() error, error)
	close  func() error
}

// NewSwitcher creates a switcher for addr (host:port, ws:// is stripped)
func NewSwitcher(addr, password string, timeout time.Duration) *Switcher {
	s := &Switcher{
		addr:     NormalizeAddr(addr),
		password: strings.TrimSpace(password),
		timeout:  timeout,
	}
	s.dial = s.dialGoobs
	return s
}

func (s *Switcher) dialGoobs() (sceneSetter, func() error, error) {
	var opts []goobs.Option
	if s.password != "" {
		opts = append(opts, goobs.WithPassword(s.password))
	}
	c, err := goobs.New(s.addr, opts...)
	if err != nil {
		return nil, nil, err
	}
	return goobsScenes{c.Scenes}, c.Disconnect, nil
}

// goobsScenes adapts the variadic goobs scenes client to sceneSetter
type goobsScenes struct{ c *scenes.Client }

func (g goobsScenes) SetCurrentProgramScene(params *scenes.SetCurrentProgramSceneParams) (*scenes.SetCurrentProgramSceneResponse, error) {
	return g.c.SetCurrentProgramScene(params)
}

// Addr returns the normalised server address
func (s *Switcher) Addr() string {
	return s.addr
}

// SetScene switches the program scene, connecting first if needed
func (s *Switcher) SetScene(name string) error {
	if name == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scenes == nil {
		sc, closeFn, err := s.dial()
		if err != nil {
			return fmt.Errorf("connect ws://%s: %w", s.addr, err)
		}
		s.scenes, s.close = sc, closeFn
		debug.Log("obs", "connected ws://%s", s.addr)
	}

	sc := s.scenes
	call := func() error {
		_, err := sc.SetCurrentProgramScene((&scenes.SetCurrentProgramSceneParams{}).WithSceneName(name))
		return err
	}
	if err := withTimeout(call, s.timeout); err != nil {
		// drop the connection so the next cue reconnects
		s.disconnect()
		return fmt.Errorf("[%s] SetCurrentProgramScene %q: %w", s.addr, name, err)
	}
	debug.Log("obs", "[%s] scene -> %s", s.addr, name)
	return nil
}

// Close disconnects from OBS
func (s *Switcher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disconnect()
}

func (s *Switcher) disconnect() error {
	var err error
	if s.close != nil {
		err = s.close()
	}
	s.scenes, s.close = nil, nil
	return err
}

func withTimeout(fn func() error, d time.Duration) error {
	if d <= 0 {
		return fn()
	}
	ch := make(chan error, 1)
	go func() { ch <- fn() }()
	select {
	case err := <-ch:
		return err
	case <-time.After(d):
		return fmt.Errorf("timeout after %s", d)
	}
}

// NormalizeAddr trims whitespace and a ws:// or wss:// prefix, which goobs.New does not accept
func NormalizeAddr(a string) string {
	a = strings.TrimSpace(a)
	a = strings.TrimPrefix(a, "ws://")
	a = strings.TrimPrefix(a, "wss://")
	return a
}

package midi

import (
	"errors"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// Ports lists input and output port names, giving up after timeout
// (CoreMIDI can hang: sudo killall coreaudiod midiserver)
func Ports(timeout time.Duration) (ins, outs []string, err error) {
	type result struct {
		ins, outs []string
	}
	ch := make(chan result, 1)
	go func() {
		var r result
		for _, p := range gomidi.GetInPorts() {
			r.ins = append(r.ins, p.String())
		}
		for _, p := range gomidi.GetOutPorts() {
			r.outs = append(r.outs, p.String())
		}
		ch <- r
	}()

	select {
	case r := <-ch:
		return r.ins, r.outs, nil
	case <-time.After(timeout):
		return nil, nil, errors.New("timed out listing MIDI ports")
	}
}

package midi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// ErrNotMIDI is returned for action payloads that are not a byte sequence
var ErrNotMIDI = errors.New("action is not a MIDI byte sequence")

// ParseAction turns action tokens ("144 60 100") into a raw message.
// Every token must be an integer in 0-255.
func ParseAction(tokens []string) (gomidi.Message, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	msg := make(gomidi.Message, 0, len(tokens))
	for _, tok := range tokens {
		v, err := strconv.Atoi(tok)
		if err != nil || v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: token %q", ErrNotMIDI, tok)
		}
		msg = append(msg, byte(v))
	}
	if msg[0] < 0x80 {
		return nil, fmt.Errorf("%w: first byte %d is not a status byte", ErrNotMIDI, msg[0])
	}
	return msg, nil
}

// Output sends fired action payloads to a named output port.
// The port is opened lazily on first send and kept open.
type Output struct {
	portName string

	mu     sync.RWMutex
	sender func(gomidi.Message) error
	open   func(portName string) (func(gomidi.Message) error, error)
}

// NewOutput creates an output for the first port whose name contains portName
func NewOutput(portName string) *Output {
	return &Output{
		portName: portName,
		open:     openOutPort,
	}
}

// NewOutputWithSender creates an output that sends through send
func NewOutputWithSender(send func(gomidi.Message) error) *Output {
	return &Output{sender: send}
}

// PortName returns the configured output port name
func (o *Output) PortName() string {
	return o.portName
}

// Send parses and sends an action payload. Empty payloads are a no-op.
func (o *Output) Send(tokens []string) error {
	msg, err := ParseAction(tokens)
	if err != nil || msg == nil {
		return err
	}
	send, err := o.getSender()
	if err != nil {
		return err
	}
	return send(msg)
}

// getSender returns the sender, opening the port on first use
func (o *Output) getSender() (func(gomidi.Message) error, error) {
	o.mu.RLock()
	if o.sender != nil {
		defer o.mu.RUnlock()
		return o.sender, nil
	}
	o.mu.RUnlock()

	o.mu.Lock()
	defer o.mu.Unlock()

	// Double-check after acquiring write lock
	if o.sender != nil {
		return o.sender, nil
	}
	if o.open == nil || o.portName == "" {
		return nil, errors.New("no MIDI output port configured")
	}
	send, err := o.open(o.portName)
	if err != nil {
		return nil, err
	}
	o.sender = send
	return send, nil
}

func openOutPort(portName string) (func(gomidi.Message) error, error) {
	want := strings.ToLower(portName)
	for _, port := range gomidi.GetOutPorts() {
		if Matches(port.String(), want) {
			send, err := gomidi.SendTo(port)
			if err != nil {
				return nil, fmt.Errorf("open output %s: %w", port.String(), err)
			}
			return send, nil
		}
	}
	return nil, fmt.Errorf("MIDI output %q not found", portName)
}

package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Controller is an open MIDI input delivering note events
type Controller interface {
	ID() string
	NoteEvents() <-chan NoteEvent
	Close() error
}

// InputController listens to one input port
type InputController struct {
	id       string
	inPort   drivers.In
	stopFunc func()

	noteChan chan NoteEvent
}

// NewInputController opens inPort and starts forwarding note-ons
func NewInputController(id string, inPort drivers.In) (*InputController, error) {
	ic := &InputController{
		id:       id,
		inPort:   inPort,
		noteChan: make(chan NoteEvent, 64),
	}

	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			ic.handle(msg)
		})
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		ic.stopFunc = stop
	}

	return ic, nil
}

// handle forwards note-ons with a non-zero velocity; everything else is dropped
func (ic *InputController) handle(msg gomidi.Message) {
	var channel, note, velocity uint8
	if !msg.GetNoteOn(&channel, &note, &velocity) || velocity == 0 {
		return
	}
	select {
	case ic.noteChan <- NoteEvent{Note: note, Velocity: velocity, Channel: channel + 1}:
	default:
		// never block the driver callback
	}
}

func (ic *InputController) ID() string {
	return ic.id
}

func (ic *InputController) NoteEvents() <-chan NoteEvent {
	return ic.noteChan
}

func (ic *InputController) Close() error {
	if ic.stopFunc != nil {
		ic.stopFunc()
	}
	close(ic.noteChan)
	return nil
}

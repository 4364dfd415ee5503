package midi

// MIDI status bytes (channel 1)
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
	CC      uint8 = 0xB0
)

// NoteEvent is sent when a note is played on an input port
type NoteEvent struct {
	Note     uint8
	Velocity uint8
	Channel  uint8 // 1-16
}

// AcceptsChannel reports whether ch passes a channel filter (0 = all)
func AcceptsChannel(filter int, ch uint8) bool {
	return filter == 0 || int(ch) == filter
}

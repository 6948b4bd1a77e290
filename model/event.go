package model

// EventKind tags an InputEvent.
type EventKind uint8

const (
	NoteOn EventKind = iota
	NoteOff
	ControlChange
	ProgramChange
)

func (k EventKind) String() string {
	switch k {
	case NoteOn:
		return "note-on"
	case NoteOff:
		return "note-off"
	case ControlChange:
		return "control-change"
	case ProgramChange:
		return "program-change"
	}
	return "unknown"
}

// InputEvent is one decoded message from the keyboard. TimestampMS is
// milliseconds on the device's monotonic clock, relative to stream start.
type InputEvent struct {
	Kind     EventKind
	Channel  uint8
	Note     uint8
	Velocity uint8

	// ControlChange / ProgramChange payloads
	Controller uint8
	Value      uint8
	Program    uint8

	TimestampMS int32
}

// Seconds is the event timestamp in seconds.
func (e InputEvent) Seconds() float64 {
	return float64(e.TimestampMS) / 1000
}

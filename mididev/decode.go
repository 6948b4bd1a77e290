package mididev

import "github.com/Cable-s/PianoGame/model"

// Status nibbles of the channel voice messages we decode.
const (
	statusNoteOff       = 0x8
	statusNoteOn        = 0x9
	statusControlChange = 0xB
	statusProgramChange = 0xC
)

// Decode turns one raw channel message into an InputEvent. The top nibble
// of the status byte selects the kind; a note-on with velocity 0 is a
// note-off per the wire convention. Messages we don't handle (aftertouch,
// pitch bend, sysex, realtime) return ok=false.
func Decode(raw []byte, timestampMS int32) (model.InputEvent, bool) {
	if len(raw) == 0 {
		return model.InputEvent{}, false
	}

	status := raw[0]
	channel := status & 0x0F

	data := func(i int) uint8 {
		if i < len(raw) {
			return raw[i]
		}
		return 0
	}

	switch status >> 4 {
	case statusNoteOn:
		ev := model.InputEvent{
			Kind:        model.NoteOn,
			Channel:     channel,
			Note:        data(1),
			Velocity:    data(2),
			TimestampMS: timestampMS,
		}
		if ev.Velocity == 0 {
			ev.Kind = model.NoteOff
		}
		return ev, true
	case statusNoteOff:
		return model.InputEvent{
			Kind:        model.NoteOff,
			Channel:     channel,
			Note:        data(1),
			Velocity:    data(2),
			TimestampMS: timestampMS,
		}, true
	case statusControlChange:
		return model.InputEvent{
			Kind:        model.ControlChange,
			Channel:     channel,
			Controller:  data(1),
			Value:       data(2),
			TimestampMS: timestampMS,
		}, true
	case statusProgramChange:
		return model.InputEvent{
			Kind:        model.ProgramChange,
			Channel:     channel,
			Program:     data(1),
			TimestampMS: timestampMS,
		}, true
	}
	return model.InputEvent{}, false
}

// Package perflog stores captured keyboard input as standard MIDI files so
// performances can be recorded once and re-scored offline.
package perflog

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/Cable-s/PianoGame/mididev"
	"github.com/Cable-s/PianoGame/model"
)

const (
	ticksPerQuarter = 960
	logTempo        = 120.0
)

// ticks per millisecond at the fixed log tempo
const ticksPerMS = ticksPerQuarter * logTempo / 60 / 1000

// Write saves the events as a single-track SMF. Timestamps are preserved by
// writing a fixed tempo and converting milliseconds to ticks.
func Write(path string, events []model.InputEvent) error {
	var s smf.SMF
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var track smf.Track
	track = append(track, smf.Event{
		Delta:   0,
		Message: smf.MetaTempo(logTempo),
	})

	var lastTicks uint32
	for _, ev := range events {
		msg, ok := message(ev)
		if !ok {
			continue
		}
		ticks := uint32(float64(ev.TimestampMS) * ticksPerMS)
		if ticks < lastTicks {
			ticks = lastTicks
		}
		track = append(track, smf.Event{
			Delta:   ticks - lastTicks,
			Message: smf.Message(msg),
		})
		lastTicks = ticks
	}
	track.Close(0)
	s.Tracks = append(s.Tracks, track)

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return fmt.Errorf("encoding performance log: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing performance log: %w", err)
	}
	return nil
}

func message(ev model.InputEvent) (midi.Message, bool) {
	switch ev.Kind {
	case model.NoteOn:
		return midi.NoteOn(ev.Channel, ev.Note, ev.Velocity), true
	case model.NoteOff:
		return midi.NoteOff(ev.Channel, ev.Note), true
	case model.ControlChange:
		return midi.ControlChange(ev.Channel, ev.Controller, ev.Value), true
	case model.ProgramChange:
		return midi.ProgramChange(ev.Channel, ev.Program), true
	}
	return nil, false
}

// Read loads a performance log and reconstructs the input events with
// millisecond timestamps, in file order.
func Read(path string) (events []model.InputEvent, e error) {
	// the SMF decoder panics on some malformed files
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading performance log: %w", err)
	}
	s, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("parsing performance log: %w", err)
	}

	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			micros := s.TimeAt(absTicks)
			raw := event.Message.Bytes()
			if ev, ok := mididev.Decode(raw, int32(micros/1000)); ok {
				events = append(events, ev)
			}
		}
	}
	return events, nil
}

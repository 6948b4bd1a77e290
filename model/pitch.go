package model

import "strconv"

// Pitch is a spelled pitch: a letter step, an octave and a semitone
// alteration (-2..2, negative for flats).
type Pitch struct {
	Step   string
	Octave int
	Alter  int
}

func stepSemitone(step string) int {
	switch step {
	case "C":
		return 0
	case "D":
		return 2
	case "E":
		return 4
	case "F":
		return 5
	case "G":
		return 7
	case "A":
		return 9
	case "B":
		return 11
	}
	return 0
}

// MidiNote converts the pitch to its MIDI note number, clamped to 0..127.
// C4 is 60.
func (p Pitch) MidiNote() uint8 {
	n := (p.Octave+1)*12 + stepSemitone(p.Step) + p.Alter
	if n < 0 {
		n = 0
	}
	if n > 127 {
		n = 127
	}
	return uint8(n)
}

// sharp spellings of the 12 pitch classes, index = semitone
var pitchClassSteps = [12]struct {
	step  string
	alter int
}{
	{"C", 0}, {"C", 1}, {"D", 0}, {"D", 1}, {"E", 0}, {"F", 0},
	{"F", 1}, {"G", 0}, {"G", 1}, {"A", 0}, {"A", 1}, {"B", 0},
}

// PitchFromMidiNote spells a MIDI note number as a Pitch. Black keys always
// come back as sharps, never flats.
func PitchFromMidiNote(code uint8) Pitch {
	pc := pitchClassSteps[int(code)%12]
	return Pitch{
		Step:   pc.step,
		Octave: int(code)/12 - 1,
		Alter:  pc.alter,
	}
}

func (p Pitch) String() string {
	acc := ""
	switch {
	case p.Alter > 0:
		for i := 0; i < p.Alter; i++ {
			acc += "#"
		}
	case p.Alter < 0:
		for i := 0; i > p.Alter; i-- {
			acc += "b"
		}
	}
	return p.Step + acc + strconv.Itoa(p.Octave)
}

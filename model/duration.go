package model

import "strings"

// NoteType is the written rhythmic value of a note, before dots or tuplet
// modification.
type NoteType uint8

const (
	Whole NoteType = iota
	Half
	Quarter
	Eighth
	Sixteenth
	ThirtySecond
)

// baseBeats is in quarter-note beats.
func (t NoteType) baseBeats() float64 {
	switch t {
	case Whole:
		return 4
	case Half:
		return 2
	case Quarter:
		return 1
	case Eighth:
		return 0.5
	case Sixteenth:
		return 0.25
	case ThirtySecond:
		return 0.125
	}
	return 1
}

func (t NoteType) String() string {
	switch t {
	case Whole:
		return "whole"
	case Half:
		return "half"
	case Quarter:
		return "quarter"
	case Eighth:
		return "eighth"
	case Sixteenth:
		return "16th"
	case ThirtySecond:
		return "32nd"
	}
	return "quarter"
}

// NoteTypeFromString maps a MusicXML type value (and common long-form
// synonyms) to a NoteType. Anything unrecognized comes back as Quarter.
func NoteTypeFromString(s string) NoteType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "whole":
		return Whole
	case "half":
		return Half
	case "quarter":
		return Quarter
	case "eighth", "8th":
		return Eighth
	case "16th", "sixteenth":
		return Sixteenth
	case "32nd", "thirty-second", "thirtysecond":
		return ThirtySecond
	}
	return Quarter
}

// Duration is a written rhythmic value: a base type, a dot count and a
// tuplet divisor (1 for none, 3 for a triplet member, ...).
type Duration struct {
	Type   NoteType
	Dots   int
	Tuplet int
}

// Beats returns the duration in quarter-note beats. Each dot adds half of
// the previous addition, so d dots multiply by 2 - 0.5^d; the tuplet divisor
// divides the result. Always > 0.
func (d Duration) Beats() float64 {
	beats := d.Type.baseBeats()
	add := beats / 2
	for i := 0; i < d.Dots; i++ {
		beats += add
		add /= 2
	}
	div := d.Tuplet
	if div < 1 {
		div = 1
	}
	return beats / float64(div)
}

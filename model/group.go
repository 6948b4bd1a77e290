package model

// Notes is a set of MIDI note numbers.
type Notes = []uint8

// NoteEval is the per-note evaluation record inside a group.
type NoteEval struct {
	Note       Note
	StartBeat  float64
	EndBeat    float64
	Hit        bool
	HoldBroken bool
}

// NoteGroup is a simultaneity group: every note whose onset falls within the
// grouping epsilon of Beat. A single note is a group of one; a chord is a
// group of several. Groups are totally ordered by Beat.
type NoteGroup struct {
	Beat  float64
	Notes []NoteEval

	// Required is the distinct MIDI note numbers that must all be played
	// to satisfy the group. Duplicate pitches at the same instant collapse
	// to one entry.
	Required Notes
}

// Requires reports whether the group needs the given MIDI note.
func (g *NoteGroup) Requires(code uint8) bool {
	for _, r := range g.Required {
		if r == code {
			return true
		}
	}
	return false
}

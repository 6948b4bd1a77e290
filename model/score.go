package model

// Staff index values for piano scores. Notes without an explicit staff tag
// carry StaffUnset.
const (
	StaffUnset = 0
	StaffUpper = 1
	StaffLower = 2
)

// Note is one note or rest placed in time. Built once by the parser and
// read-only afterward.
type Note struct {
	Pitch    Pitch
	Duration Duration
	Rest     bool

	// BeatInMeasure is the onset in quarter-note beats from the start of
	// the owning measure; Beat is from the start of the score.
	BeatInMeasure float64
	Beat          float64
	StartSeconds  float64

	MeasureNumber int
	Staff         int
}

// Beats is the sounding length of the note in quarter-note beats.
func (n Note) Beats() float64 {
	return n.Duration.Beats()
}

// EndBeat is the score-wide beat at which the note should be released.
func (n Note) EndBeat() float64 {
	return n.Beat + n.Duration.Beats()
}

// Measure is one bar of one staff.
type Measure struct {
	Number       int
	StartSeconds float64
	BeatsPerBar  int
	BeatUnit     int
	Notes        []Note
}

// Staff is an ordered run of measures. A piano part produces two.
type Staff struct {
	Index    int
	Measures []Measure
}

// Score is the root of the parsed note model. It owns every staff, measure
// and note for its lifetime; a reload builds an entirely new Score.
type Score struct {
	Title     string
	Composer  string
	Tempo     float64
	Divisions int
	Staves    []Staff
}

// FlatNotes returns every note and rest of every staff in staff order,
// already time-ordered within each staff.
func (s *Score) FlatNotes() []Note {
	var res []Note
	for _, staff := range s.Staves {
		for _, m := range staff.Measures {
			res = append(res, m.Notes...)
		}
	}
	return res
}

// PlayedNotes returns the non-rest notes to perform given per-hand enable
// flags. The upper staff is the right hand, the lower the left; notes with
// no staff tag are kept if either hand is enabled.
func (s *Score) PlayedNotes(left, right bool) []Note {
	var res []Note
	for _, n := range s.FlatNotes() {
		if n.Rest {
			continue
		}
		switch n.Staff {
		case StaffUpper:
			if !right {
				continue
			}
		case StaffLower:
			if !left {
				continue
			}
		default:
			if !left && !right {
				continue
			}
		}
		res = append(res, n)
	}
	return res
}

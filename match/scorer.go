package match

import "math"

// Base points per classification. Good and off-time hits are further
// docked by the size of the timing error.
const (
	perfectPoints = 100
	goodPoints    = 75
	earlyPoints   = 50
	latePoints    = 50
	missedPenalty = 50
	extraPenalty  = 25
)

// Points returns the points earned by one hit result. Missed and Extra earn
// nothing here; their penalties are applied in Score.
func Points(r Result) int {
	switch r.Class {
	case Perfect:
		return perfectPoints
	case Good:
		return docked(goodPoints, r.TimingError)
	case Early:
		return docked(earlyPoints, r.TimingError)
	case Late:
		return docked(latePoints, r.TimingError)
	}
	return 0
}

func docked(base int, timingError float64) int {
	p := base - int(math.Abs(timingError)*100)
	if p < 0 {
		p = 0
	}
	return p
}

// Summary aggregates a full run of results.
type Summary struct {
	Total    int     `json:"total"`
	Perfect  int     `json:"perfect"`
	Good     int     `json:"good"`
	Early    int     `json:"early"`
	Late     int     `json:"late"`
	Missed   int     `json:"missed"`
	Extra    int     `json:"extra"`
	Expected int     `json:"expected"`
	Accuracy float64 `json:"accuracy"`
	Grade    string  `json:"grade"`
}

// Score tallies points and derives the letter grade. expected is the total
// number of expected notes; accuracy counts Perfect and Good hits against
// it.
func Score(results []Result, expected int) Summary {
	var s Summary
	s.Expected = expected

	for _, r := range results {
		switch r.Class {
		case Perfect:
			s.Perfect++
		case Good:
			s.Good++
		case Early:
			s.Early++
		case Late:
			s.Late++
		case Missed:
			s.Missed++
		case Extra:
			s.Extra++
		}
		s.Total += Points(r)
	}

	s.Total -= s.Missed * missedPenalty
	s.Total -= s.Extra * extraPenalty
	if s.Total < 0 {
		s.Total = 0
	}

	if expected > 0 {
		s.Accuracy = float64(s.Perfect+s.Good) / float64(expected)
	}
	s.Grade = Grade(s.Accuracy)
	return s
}

// Grade maps accuracy to a letter.
func Grade(accuracy float64) string {
	switch {
	case accuracy >= 0.95:
		return "S"
	case accuracy >= 0.90:
		return "A"
	case accuracy >= 0.80:
		return "B"
	case accuracy >= 0.70:
		return "C"
	case accuracy >= 0.60:
		return "D"
	}
	return "F"
}

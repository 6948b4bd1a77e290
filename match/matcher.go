// Package match classifies performed input events against a timed list of
// expected notes and aggregates the outcomes into a score and grade. It
// works on a complete event log, independent of the live session machinery.
package match

import (
	"math"

	"github.com/Cable-s/PianoGame/constants"
	"github.com/Cable-s/PianoGame/model"
)

// Classification is the timing verdict for one input event or expectation.
type Classification int

const (
	Perfect Classification = iota
	Good
	Early
	Late
	Missed
	Extra
)

func (c Classification) String() string {
	switch c {
	case Perfect:
		return "perfect"
	case Good:
		return "good"
	case Early:
		return "early"
	case Late:
		return "late"
	case Missed:
		return "missed"
	case Extra:
		return "extra"
	}
	return "unknown"
}

// searchWindow bounds the candidate search around an event, in seconds.
const searchWindow = 0.5

// Tolerance is the allowed early/late timing error in seconds.
type Tolerance struct {
	Early float64
	Late  float64
}

// DefaultTolerance matches the session defaults.
func DefaultTolerance() Tolerance {
	return Tolerance{
		Early: constants.DefaultToleranceSeconds,
		Late:  constants.DefaultToleranceSeconds,
	}
}

// Expectation is one note the performer was supposed to play.
type Expectation struct {
	Note    model.Note
	Pitch   uint8
	Seconds float64
	Matched bool
}

// NewExpectations builds expectations from non-rest notes, in score order.
func NewExpectations(notes []model.Note) []Expectation {
	var res []Expectation
	for _, n := range notes {
		if n.Rest {
			continue
		}
		res = append(res, Expectation{
			Note:    n,
			Pitch:   n.Pitch.MidiNote(),
			Seconds: n.StartSeconds,
		})
	}
	return res
}

// Result is the classified outcome for one event (or, for Missed, one
// unmatched expectation).
type Result struct {
	Class Classification

	// TimingError is signed seconds, event minus expectation. Zero for
	// Extra and Missed.
	TimingError float64

	Event       model.InputEvent
	Expectation *Expectation
}

// Classify matches a single note-on event against the expectation list.
// The candidate is the unmatched expectation with the same pitch whose time
// is nearest the event's, searched within ±0.5 s; no candidate means the
// event was an extra note. The chosen expectation is marked matched.
func Classify(ev model.InputEvent, exps []Expectation, tol Tolerance) Result {
	t := ev.Seconds()

	best := -1
	bestDiff := math.Inf(1)
	for i := range exps {
		if exps[i].Matched || exps[i].Pitch != ev.Note {
			continue
		}
		diff := math.Abs(t - exps[i].Seconds)
		if diff > searchWindow {
			continue
		}
		if diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}

	if best < 0 {
		return Result{Class: Extra, Event: ev}
	}

	exp := &exps[best]
	exp.Matched = true
	e := t - exp.Seconds

	res := Result{TimingError: e, Event: ev, Expectation: exp}
	switch {
	case e < -tol.Early:
		res.Class = Early
	case e > tol.Late:
		res.Class = Late
	case math.Abs(e) < 0.5*math.Min(tol.Early, tol.Late):
		res.Class = Perfect
	default:
		res.Class = Good
	}
	return res
}

// Run classifies every note-on in the log against the expectations, then
// reports each expectation that never matched as Missed.
func Run(events []model.InputEvent, notes []model.Note, tol Tolerance) []Result {
	exps := NewExpectations(notes)

	var results []Result
	for _, ev := range events {
		if ev.Kind != model.NoteOn {
			continue
		}
		results = append(results, Classify(ev, exps, tol))
	}

	for i := range exps {
		if !exps[i].Matched {
			results = append(results, Result{Class: Missed, Expectation: &exps[i]})
		}
	}
	return results
}

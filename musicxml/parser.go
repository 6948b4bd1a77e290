package musicxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Cable-s/PianoGame/model"
	"golang.org/x/net/html/charset"
)

// Hard failure modes. Every field-level anomaly inside a well-formed
// partwise document is resolved by defaulting instead.
var (
	ErrEmptyInput          = errors.New("empty notation document")
	ErrMalformed           = errors.New("malformed notation document")
	ErrTimewiseUnsupported = errors.New("time-wise documents are not implemented")
	ErrUnknownRoot         = errors.New("not a music notation document")
)

// Parse reads a score-partwise MusicXML document and builds the timed note
// model. Parsing is a pure function of the document text: the same input
// always yields the same flattened note sequence.
func Parse(data []byte) (*model.Score, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	root, err := rootElement(dec)
	if err != nil {
		return nil, err
	}
	switch root.Name.Local {
	case "score-partwise":
	case "score-timewise":
		return nil, ErrTimewiseUnsupported
	default:
		return nil, fmt.Errorf("%w: root element <%v>", ErrUnknownRoot, root.Name.Local)
	}

	var doc document
	if err := dec.DecodeElement(&doc, root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return build(&doc), nil
}

// ParseFile reads and parses a notation document from disk.
func ParseFile(path string) (*model.Score, error) {
	if path == "" {
		return nil, ErrEmptyInput
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading notation document: %w", err)
	}
	return Parse(data)
}

func rootElement(dec *xml.Decoder) (*xml.StartElement, error) {
	for {
		token, err := dec.Token()
		if err == io.EOF {
			return nil, ErrEmptyInput
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if start, ok := token.(xml.StartElement); ok {
			return &start, nil
		}
	}
}

// firstTempo scans the whole document for the first declared tempo.
func firstTempo(doc *document) float64 {
	for _, p := range doc.Parts {
		for _, m := range p.Measures {
			for _, ev := range m.Events {
				if s, ok := ev.(soundElem); ok && s.Tempo != "" {
					if t := atofOr(s.Tempo, 0); t > 0 {
						return t
					}
				}
			}
		}
	}
	return 120
}

// firstDivisions scans for the first declared divisions-per-quarter.
func firstDivisions(doc *document) int {
	for _, p := range doc.Parts {
		for _, m := range p.Measures {
			for _, ev := range m.Events {
				if a, ok := ev.(attributesElem); ok {
					if d := atoiOr(a.Divisions, 0); d > 0 {
						return d
					}
				}
			}
		}
	}
	return 1
}

func title(doc *document) string {
	if doc.Work.Title != "" {
		return doc.Work.Title
	}
	return doc.MovementTitle
}

func composer(doc *document) string {
	for _, c := range doc.Identification.Creators {
		if c.Type == "" || c.Type == "composer" {
			return strings.TrimSpace(c.Name)
		}
	}
	return ""
}

func build(doc *document) *model.Score {
	score := &model.Score{
		Title:     title(doc),
		Composer:  composer(doc),
		Tempo:     firstTempo(doc),
		Divisions: firstDivisions(doc),
	}

	for i, p := range doc.Parts {
		staff := buildStaff(p, i+1, score)
		score.Staves = append(score.Staves, staff)
	}
	return score
}

func buildStaff(p part, index int, score *model.Score) model.Staff {
	staff := model.Staff{Index: index}
	divisions := float64(score.Divisions)
	secondsPerBeat := 60 / score.Tempo

	beatsPerBar, beatUnit := 4, 4
	globalBeat := 0.0
	globalSeconds := 0.0

	for i, me := range p.Measures {
		number := atoiOr(me.Number, i+1)
		measure := model.Measure{
			Number:       number,
			StartSeconds: globalSeconds,
		}

		// cursor and watermark are in raw division units
		cursor := 0.0
		watermark := 0.0
		chordAnchor := 0.0

		for _, ev := range me.Events {
			switch e := ev.(type) {
			case attributesElem:
				beatsPerBar = atoiOr(e.Time.Beats, beatsPerBar)
				beatUnit = atoiOr(e.Time.BeatType, beatUnit)
			case backupElem:
				cursor -= atofOr(e.Duration, 0)
				if cursor < 0 {
					cursor = 0
				}
			case forwardElem:
				cursor += atofOr(e.Duration, 0)
				if cursor > watermark {
					watermark = cursor
				}
			case noteElem:
				start := cursor
				if e.isChord() {
					start = chordAnchor
				} else {
					chordAnchor = cursor
					cursor += atofOr(e.Duration, 0)
					if cursor > watermark {
						watermark = cursor
					}
				}
				note := buildNote(e, start/divisions, number)
				note.Beat = globalBeat + note.BeatInMeasure
				note.StartSeconds = globalSeconds + note.BeatInMeasure*secondsPerBeat
				measure.Notes = append(measure.Notes, note)
			}
		}

		measure.BeatsPerBar = beatsPerBar
		measure.BeatUnit = beatUnit

		measureBeats := watermark / divisions
		if measureBeats == 0 {
			// nothing advanced the cursor, fall back to the signature
			measureBeats = float64(beatsPerBar) * 4 / float64(beatUnit)
		}
		globalBeat += measureBeats
		globalSeconds += measureBeats * secondsPerBeat

		staff.Measures = append(staff.Measures, measure)
	}
	return staff
}

func buildNote(e noteElem, beatInMeasure float64, measureNumber int) model.Note {
	n := model.Note{
		Rest:          e.isRest(),
		BeatInMeasure: beatInMeasure,
		MeasureNumber: measureNumber,
		Staff:         atoiOr(e.Staff, model.StaffUnset),
	}

	if !n.Rest {
		n.Pitch = buildPitch(e.Pitch)
	}

	tuplet := 1
	if e.TimeMod != nil {
		tuplet = atoiOr(e.TimeMod.ActualNotes, 1)
		if tuplet < 1 {
			tuplet = 1
		}
	}
	n.Duration = model.Duration{
		Type:   model.NoteTypeFromString(e.Type),
		Dots:   len(e.Dots),
		Tuplet: tuplet,
	}
	return n
}

func buildPitch(p *pitchElem) model.Pitch {
	if p == nil {
		return model.Pitch{Step: "C", Octave: 4}
	}
	step := strings.ToUpper(strings.TrimSpace(p.Step))
	switch step {
	case "C", "D", "E", "F", "G", "A", "B":
	default:
		step = "C"
	}
	return model.Pitch{
		Step:   step,
		Octave: atoiOr(p.Octave, 4),
		Alter:  atoiOr(p.Alter, 0),
	}
}

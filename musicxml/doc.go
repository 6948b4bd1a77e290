package musicxml

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

// document mirrors the parts of a score-partwise file we care about. Measure
// contents are decoded by hand because note, backup and forward elements
// must keep their document order.
type document struct {
	Work           work           `xml:"work"`
	MovementTitle  string         `xml:"movement-title"`
	Identification identification `xml:"identification"`
	Parts          []part         `xml:"part"`
}

type work struct {
	Title string `xml:"work-title"`
}

type identification struct {
	Creators []creator `xml:"creator"`
}

type creator struct {
	Type string `xml:"type,attr"`
	Name string `xml:",chardata"`
}

type part struct {
	ID       string        `xml:"id,attr"`
	Measures []measureElem `xml:"measure"`
}

type measureElem struct {
	Number string
	Events []any
}

type attributesElem struct {
	Divisions string   `xml:"divisions"`
	Time      timeElem `xml:"time"`
}

type timeElem struct {
	Beats    string `xml:"beats"`
	BeatType string `xml:"beat-type"`
}

type soundElem struct {
	Tempo string `xml:"tempo,attr"`
}

type directionElem struct {
	Sound soundElem `xml:"sound"`
}

type backupElem struct {
	Duration string `xml:"duration"`
}

type forwardElem struct {
	Duration string `xml:"duration"`
}

type noteElem struct {
	Pitch    *pitchElem    `xml:"pitch"`
	Rest     xml.Name      `xml:"rest"`
	Chord    xml.Name      `xml:"chord"`
	Duration string        `xml:"duration"`
	Voice    string        `xml:"voice"`
	Type     string        `xml:"type"`
	Dots     []xml.Name    `xml:"dot"`
	Staff    string        `xml:"staff"`
	TimeMod  *timeModeElem `xml:"time-modification"`
}

type timeModeElem struct {
	ActualNotes string `xml:"actual-notes"`
}

type pitchElem struct {
	Step   string `xml:"step"`
	Octave string `xml:"octave"`
	Alter  string `xml:"alter"`
}

func (n noteElem) isRest() bool  { return n.Rest.Local != "" }
func (n noteElem) isChord() bool { return n.Chord.Local != "" }

// UnmarshalXML keeps note/backup/forward/attributes events in document
// order; struct-tag decoding would collect them per kind and lose the
// cursor semantics.
func (m *measureElem) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Local == "number" {
			m.Number = attr.Value
		}
	}

	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "attributes":
				var a attributesElem
				if err := d.DecodeElement(&a, &t); err != nil {
					return err
				}
				m.Events = append(m.Events, a)
			case "note":
				var n noteElem
				if err := d.DecodeElement(&n, &t); err != nil {
					return err
				}
				m.Events = append(m.Events, n)
			case "backup":
				var b backupElem
				if err := d.DecodeElement(&b, &t); err != nil {
					return err
				}
				m.Events = append(m.Events, b)
			case "forward":
				var f forwardElem
				if err := d.DecodeElement(&f, &t); err != nil {
					return err
				}
				m.Events = append(m.Events, f)
			case "direction":
				var dir directionElem
				if err := d.DecodeElement(&dir, &t); err != nil {
					return err
				}
				m.Events = append(m.Events, dir.Sound)
			case "sound":
				var s soundElem
				if err := d.DecodeElement(&s, &t); err != nil {
					return err
				}
				m.Events = append(m.Events, s)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "measure" {
				return nil
			}
		}
	}
	return nil
}

// atoiOr parses a numeric field leniently: a bad or missing value yields the
// default rather than failing the document.
func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func atofOr(s string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return f
}

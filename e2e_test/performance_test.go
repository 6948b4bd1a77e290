package e2e_test

import (
	"testing"

	"github.com/Cable-s/PianoGame/match"
	"github.com/Cable-s/PianoGame/model"
	"github.com/Cable-s/PianoGame/musicxml"
	"github.com/Cable-s/PianoGame/session"
	"github.com/stretchr/testify/assert"
)

// a two-handed measure: the right hand plays a C4+E4 chord then G4, the
// left hand holds C3 underneath via a backup into voice 2
const pieceDoc = `<?xml version="1.0" encoding="UTF-8"?>
<score-partwise version="3.1">
  <work><work-title>Exercise 1</work-title></work>
  <identification><creator type="composer">Anon</creator></identification>
  <part id="P1">
    <measure number="1">
      <attributes>
        <divisions>2</divisions>
        <time><beats>4</beats><beat-type>4</beat-type></time>
      </attributes>
      <direction><sound tempo="120"/></direction>
      <note>
        <pitch><step>C</step><octave>4</octave></pitch>
        <duration>2</duration><type>quarter</type><staff>1</staff>
      </note>
      <note>
        <chord/>
        <pitch><step>E</step><octave>4</octave></pitch>
        <duration>2</duration><type>quarter</type><staff>1</staff>
      </note>
      <note>
        <pitch><step>G</step><octave>4</octave></pitch>
        <duration>2</duration><type>quarter</type><staff>1</staff>
      </note>
      <backup><duration>4</duration></backup>
      <note>
        <pitch><step>C</step><octave>3</octave></pitch>
        <duration>4</duration><type>half</type><staff>2</staff>
      </note>
    </measure>
  </part>
</score-partwise>`

func TestPracticeSessionEndToEnd(t *testing.T) {
	assert := assert.New(t)

	score, err := musicxml.Parse([]byte(pieceDoc))
	assert.NoError(err)
	assert.Equal("Exercise 1", score.Title)
	assert.Equal(120.0, score.Tempo)

	cfg := session.DefaultConfig()
	s := session.New(cfg)
	s.Load(score)

	// groups: {C3, C4, E4} at beat 0, {G4} at beat 1
	assert.Len(s.Groups(), 2)
	assert.Len(s.Groups()[0].Required, 3)
	assert.Len(s.Groups()[1].Required, 1)

	s.Tick(cfg.CountdownSeconds + 0.1)
	assert.Equal(session.Running, s.State())

	play := func(midi uint8) {
		s.HandleEvent(model.InputEvent{Kind: model.NoteOn, Note: midi, Velocity: 80})
		s.Tick(0.02)
	}

	play(36 + 12) // C3
	play(60)      // C4
	play(64)      // E4
	assert.Equal(1, s.GroupIndex())

	play(67) // G4
	assert.Equal(session.Complete, s.State())

	report := s.Report()
	assert.Equal(4, report.Stats.Correct)
	assert.Equal(0, report.Stats.Mistakes)
	assert.NotEmpty(report.ID)
}

func TestOfflineAnalysisEndToEnd(t *testing.T) {
	assert := assert.New(t)

	score, err := musicxml.Parse([]byte(pieceDoc))
	assert.NoError(err)

	notes := score.PlayedNotes(true, true)
	assert.Len(notes, 4)

	// a performance that nails everything except a late G4
	var events []model.InputEvent
	for _, n := range notes {
		ms := int32(n.StartSeconds * 1000)
		if n.Pitch.MidiNote() == 67 {
			ms += 80
		}
		events = append(events, model.InputEvent{
			Kind: model.NoteOn, Note: n.Pitch.MidiNote(), Velocity: 80, TimestampMS: ms,
		})
	}

	results := match.Run(events, notes, match.DefaultTolerance())
	summary := match.Score(results, len(notes))

	assert.Equal(3, summary.Perfect)
	assert.Equal(1, summary.Good)
	assert.Equal(0, summary.Missed)
	assert.Equal("S", summary.Grade)
	// 3*100 + (75-8)
	assert.Equal(367, summary.Total)
}

func TestLeftHandOnlyEndToEnd(t *testing.T) {
	assert := assert.New(t)

	score, err := musicxml.Parse([]byte(pieceDoc))
	assert.NoError(err)

	cfg := session.DefaultConfig()
	cfg.RightHand = false
	s := session.New(cfg)
	s.Load(score)

	// only the lower staff's C3 remains
	assert.Len(s.Groups(), 1)
	assert.Len(s.Groups()[0].Required, 1)
}

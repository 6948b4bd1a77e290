package session

import (
	"testing"

	"github.com/Cable-s/PianoGame/model"
	"github.com/stretchr/testify/assert"
)

func note(midi uint8, beat float64, dur model.Duration) model.Note {
	return model.Note{
		Pitch:    model.PitchFromMidiNote(midi),
		Duration: dur,
		Beat:     beat,
	}
}

func quarter(midi uint8, beat float64) model.Note {
	return note(midi, beat, model.Duration{Type: model.Quarter, Tuplet: 1})
}

func testScore(notes ...model.Note) *model.Score {
	return &model.Score{
		Title: "test",
		Tempo: 120,
		Staves: []model.Staff{
			{Index: 1, Measures: []model.Measure{{Number: 1, Notes: notes}}},
		},
	}
}

func noteOn(midi uint8) model.InputEvent {
	return model.InputEvent{Kind: model.NoteOn, Note: midi, Velocity: 64}
}

func noteOff(midi uint8) model.InputEvent {
	return model.InputEvent{Kind: model.NoteOff, Note: midi}
}

// loaded returns a session already past the countdown.
func loaded(cfg Config, score *model.Score) *Session {
	s := New(cfg)
	s.Load(score)
	s.Tick(cfg.CountdownSeconds + 1)
	return s
}

func TestCountdownRunsBeforeClock(t *testing.T) {
	cfg := DefaultConfig()
	s := New(cfg)
	assert.Equal(t, Idle, s.State())

	s.Load(testScore(quarter(60, 0)))
	assert.Equal(t, Countdown, s.State())

	s.Tick(1)
	assert.Equal(t, Countdown, s.State())

	s.Tick(2.5)
	assert.Equal(t, Running, s.State())
	assert.Equal(t, 0.0, s.Beat())
}

func TestPracticeClockWaitsAtGroupOnset(t *testing.T) {
	cfg := DefaultConfig()
	s := loaded(cfg, testScore(quarter(60, 0), quarter(62, 1)))

	// nothing played: the clock stays pinned at the first group's onset
	s.Tick(10)
	assert.Equal(t, 0.0, s.Beat())

	s.HandleEvent(noteOn(60))
	assert.Equal(t, 1, s.GroupIndex())

	// now the clock approaches beat 1 but never passes it
	s.Tick(0.1) // 0.2 beats at 120 bpm
	assert.InDelta(t, 0.2, s.Beat(), 1e-9)
	s.Tick(10)
	assert.Equal(t, 1.0, s.Beat())
}

func TestPracticeChordWithinWindowAdvances(t *testing.T) {
	cfg := DefaultConfig()
	s := loaded(cfg, testScore(quarter(60, 4), quarter(64, 4)))

	s.HandleEvent(noteOn(60))
	assert.Equal(t, 0, s.GroupIndex())

	s.Tick(0.1) // still inside the 0.25s window
	s.HandleEvent(noteOn(64))

	assert.Equal(t, Complete, s.State())
	assert.Equal(t, 2, s.Stats().Correct)
	assert.Equal(t, 0, s.Stats().Mistakes)
}

func TestPracticeWrongNoteResetsGroup(t *testing.T) {
	cfg := DefaultConfig()
	s := loaded(cfg, testScore(quarter(60, 4), quarter(64, 4)))

	s.HandleEvent(noteOn(60))
	s.HandleEvent(noteOn(67)) // unrelated G4

	stats := s.Stats()
	assert.Equal(t, 1, stats.Mistakes)
	assert.Equal(t, 0, s.GroupIndex())

	// progress was cleared, both pitches are needed again
	s.HandleEvent(noteOn(64))
	assert.Equal(t, 0, s.GroupIndex())
	s.HandleEvent(noteOn(60))
	assert.Equal(t, Complete, s.State())
}

func TestPracticeResetClearsEvalRecords(t *testing.T) {
	cfg := DefaultConfig()
	s := loaded(cfg, testScore(quarter(60, 4), quarter(64, 4)))

	s.HandleEvent(noteOn(60))
	g := s.Groups()[0]
	assert.True(t, g.Notes[0].Hit)
	assert.Equal(t, []uint8{60}, s.ActiveHolds())

	// the wrong note throws away partial progress everywhere a rendering
	// consumer could see it, not just in the satisfied-pitch set
	s.HandleEvent(noteOn(67))
	g = s.Groups()[0]
	assert.False(t, g.Notes[0].Hit)
	assert.False(t, g.Notes[1].Hit)
	assert.Empty(t, s.ActiveHolds())

	// the discarded hold no longer produces a break on release
	s.HandleEvent(noteOff(60))
	assert.Equal(t, 0, s.Stats().HoldBreaks)
}

func TestPracticeWindowExpiryIsAMistake(t *testing.T) {
	cfg := DefaultConfig()
	s := loaded(cfg, testScore(quarter(60, 0), quarter(64, 0)))

	s.HandleEvent(noteOn(60))
	s.Tick(cfg.WindowSeconds + 0.01) // window elapses on a tick, not on input

	stats := s.Stats()
	assert.Equal(t, 1, stats.Mistakes)
	assert.Equal(t, 0, s.GroupIndex())

	// group still completable after the reset
	s.HandleEvent(noteOn(60))
	s.HandleEvent(noteOn(64))
	assert.Equal(t, Complete, s.State())
}

func TestTempoModeMissesPassedGroups(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = Tempo
	s := loaded(cfg, testScore(quarter(60, 0), quarter(64, 0), quarter(62, 4)))

	// 2 beats of wall time pass the first group (a 2-note chord) untouched
	s.Tick(1)

	stats := s.Stats()
	assert.Equal(t, 2, stats.MissedNotes)
	assert.Equal(t, 1, stats.Mistakes)
	assert.Equal(t, 1, s.GroupIndex())
}

func TestTempoModeHitsStayCredited(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = Tempo
	s := loaded(cfg, testScore(quarter(60, 1), quarter(64, 1), quarter(62, 4)))

	s.HandleEvent(noteOn(60)) // one of two chord pitches
	s.Tick(1)                 // onset passes with the chord half played

	stats := s.Stats()
	assert.Equal(t, 1, stats.MissedNotes)
	assert.Equal(t, 1, stats.Mistakes)
}

func TestTempoModeClockIgnoresInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = Tempo
	s := loaded(cfg, testScore(quarter(60, 8)))

	s.Tick(1) // 2 beats at 120 bpm
	assert.InDelta(t, 2.0, s.Beat(), 1e-9)
	s.Tick(1)
	assert.InDelta(t, 4.0, s.Beat(), 1e-9)
}

func TestHoldBreakDetection(t *testing.T) {
	cfg := DefaultConfig()
	// half note: two beats, above the 1-beat hold threshold
	s := loaded(cfg, testScore(
		note(60, 0, model.Duration{Type: model.Half, Tuplet: 1}),
		quarter(62, 2),
	))

	s.HandleEvent(noteOn(60))
	assert.Equal(t, 1, s.GroupIndex())

	// release almost immediately, well before the expected end at beat 2
	s.Tick(0.05)
	s.HandleEvent(noteOff(60))
	assert.Equal(t, 1, s.Stats().HoldBreaks)

	// a second release of the same pitch is not double counted
	s.HandleEvent(noteOff(60))
	assert.Equal(t, 1, s.Stats().HoldBreaks)
}

func TestHoldReleasedOnTime(t *testing.T) {
	cfg := DefaultConfig()
	s := loaded(cfg, testScore(
		note(60, 0, model.Duration{Type: model.Half, Tuplet: 1}),
		quarter(62, 2),
	))

	s.HandleEvent(noteOn(60))
	s.Tick(1) // clock reaches beat 2 and waits there
	s.HandleEvent(noteOff(60))
	assert.Equal(t, 0, s.Stats().HoldBreaks)
}

func TestShortNotesNotTrackedAsHolds(t *testing.T) {
	cfg := DefaultConfig()
	s := loaded(cfg, testScore(
		note(60, 0, model.Duration{Type: model.Eighth, Tuplet: 1}),
		quarter(62, 4),
	))

	s.HandleEvent(noteOn(60))
	s.HandleEvent(noteOff(60))
	assert.Equal(t, 0, s.Stats().HoldBreaks)
}

func TestEventsIgnoredOutsideRunningSession(t *testing.T) {
	cfg := DefaultConfig()
	s := New(cfg)

	// no score loaded
	s.HandleEvent(noteOn(60))
	assert.Equal(t, Stats{}, s.Stats())

	s.Load(testScore(quarter(60, 0)))
	// countdown still running
	s.HandleEvent(noteOn(60))
	assert.Equal(t, 0, s.GroupIndex())

	s.Tick(cfg.CountdownSeconds + 1)
	s.HandleEvent(noteOn(60))
	assert.Equal(t, Complete, s.State())

	// session over: further input is not an error and changes nothing
	before := s.Stats()
	s.HandleEvent(noteOn(62))
	assert.Equal(t, before, s.Stats())
}

func TestBothHandsDisabledYieldsEmptyPerformance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LeftHand = false
	cfg.RightHand = false
	s := New(cfg)
	s.Load(testScore(quarter(60, 0)))

	s.Tick(cfg.CountdownSeconds + 1)
	s.Tick(0.01)
	assert.Equal(t, Complete, s.State())
}

func TestLoadReplacesAllState(t *testing.T) {
	cfg := DefaultConfig()
	s := loaded(cfg, testScore(quarter(60, 0), quarter(62, 1)))
	s.HandleEvent(noteOn(67))
	assert.Equal(t, 1, s.Stats().Mistakes)

	s.Load(testScore(quarter(64, 0)))
	assert.Equal(t, Countdown, s.State())
	assert.Equal(t, Stats{}, s.Stats())
	assert.Equal(t, 0, s.GroupIndex())
}

func TestReportCarriesFreshID(t *testing.T) {
	cfg := DefaultConfig()
	s := loaded(cfg, testScore(quarter(60, 0)))
	s.HandleEvent(noteOn(60))

	a := s.Report()
	b := s.Report()
	assert.Equal(t, "test", a.Title)
	assert.Equal(t, "practice", a.Mode)
	assert.Equal(t, 1, a.Stats.Correct)
	assert.NotEqual(t, a.ID, b.ID)
}

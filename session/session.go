// Package session owns the live performance: the countdown, the beat clock,
// the current simultaneity group and its completion window, and hold-note
// tracking. The clock advances under one of two policies. Practice pins the
// clock at each unresolved group's onset until the performer plays it. Tempo
// converts wall time straight into beats and records a miss for any group
// whose onset goes by unsatisfied.
//
// In tempo mode, points and correct-note credit earned on a group before it
// is missed stay credited; the miss itself already costs a mistake and the
// unplayed notes.
package session

import (
	"github.com/google/uuid"

	"github.com/Cable-s/PianoGame/constants"
	"github.com/Cable-s/PianoGame/grouping"
	"github.com/Cable-s/PianoGame/model"
	"github.com/Cable-s/PianoGame/util"
)

// Mode selects the clock-advance policy.
type Mode int

const (
	Practice Mode = iota
	Tempo
)

func (m Mode) String() string {
	if m == Tempo {
		return "tempo"
	}
	return "practice"
}

// State is the session lifecycle phase.
type State int

const (
	Idle State = iota
	Countdown
	Running
	Complete
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Countdown:
		return "countdown"
	case Running:
		return "running"
	case Complete:
		return "complete"
	}
	return "unknown"
}

// Config carries the per-session knobs. Zero values fall back to the
// defaults in constants.
type Config struct {
	Mode Mode

	// Tempo overrides the score's tempo when > 0.
	Tempo float64

	WindowSeconds             float64
	HoldMinBeats              float64
	HoldReleaseToleranceBeats float64
	CountdownSeconds          float64

	LeftHand  bool
	RightHand bool
}

// DefaultConfig enables both hands in practice mode with the standard
// tuning values.
func DefaultConfig() Config {
	return Config{
		Mode:                      Practice,
		WindowSeconds:             constants.DefaultWindowSeconds,
		HoldMinBeats:              constants.DefaultHoldMinBeats,
		HoldReleaseToleranceBeats: constants.DefaultHoldReleaseToleranceBeats,
		CountdownSeconds:          constants.DefaultCountdownSeconds,
		LeftHand:                  true,
		RightHand:                 true,
	}
}

// Stats are the running counters for the session.
type Stats struct {
	Correct     int
	Mistakes    int
	MissedNotes int
	HoldBreaks  int
}

// Report is the summary produced when the session completes.
type Report struct {
	ID     string
	Title  string
	Mode   string
	Groups int
	Stats  Stats
}

type hold struct {
	group   int // index into groups
	note    int // index into group.Notes
	endBeat float64
}

// Session drives one performance of one score. It is not safe for
// concurrent use; the consumer loop owns it and feeds it ticks and events.
type Session struct {
	cfg   Config
	score *model.Score

	groups  []model.NoteGroup
	state   State
	groupIx int

	tempo         float64
	beat          float64
	countdownLeft float64

	windowOpen bool
	windowLeft float64
	hit        map[uint8]bool

	holds map[uint8]hold

	stats Stats
}

// New returns an idle session. Call Load to start one.
func New(cfg Config) *Session {
	def := DefaultConfig()
	if cfg.WindowSeconds <= 0 {
		cfg.WindowSeconds = def.WindowSeconds
	}
	if cfg.HoldMinBeats <= 0 {
		cfg.HoldMinBeats = def.HoldMinBeats
	}
	if cfg.HoldReleaseToleranceBeats <= 0 {
		cfg.HoldReleaseToleranceBeats = def.HoldReleaseToleranceBeats
	}
	if cfg.CountdownSeconds <= 0 {
		cfg.CountdownSeconds = def.CountdownSeconds
	}
	return &Session{cfg: cfg, state: Idle}
}

// Load replaces all session state from a freshly parsed score and starts
// the countdown. From the consumer's perspective the swap is atomic: every
// field is rebuilt before Load returns and no input is processed meanwhile.
func (s *Session) Load(score *model.Score) {
	s.score = score
	s.groups = grouping.FromScore(score, s.cfg.LeftHand, s.cfg.RightHand)

	s.tempo = s.cfg.Tempo
	if s.tempo <= 0 {
		s.tempo = score.Tempo
	}
	if s.tempo <= 0 {
		s.tempo = constants.DefaultTempo
	}

	s.state = Countdown
	s.countdownLeft = s.cfg.CountdownSeconds
	s.groupIx = 0
	s.beat = 0
	s.windowOpen = false
	s.hit = make(map[uint8]bool)
	s.holds = make(map[uint8]hold)
	s.stats = Stats{}
}

// Tick advances the session by dt seconds of wall time.
func (s *Session) Tick(dt float64) {
	switch s.state {
	case Countdown:
		s.countdownLeft -= dt
		if s.countdownLeft <= 0 {
			s.state = Running
			s.beat = 0
		}
	case Running:
		s.advanceClock(dt)
	}
}

func (s *Session) advanceClock(dt float64) {
	if s.groupIx >= len(s.groups) {
		s.state = Complete
		return
	}

	beats := dt * s.tempo / 60

	switch s.cfg.Mode {
	case Practice:
		// approach the next unresolved onset, never pass it
		s.beat += beats
		if target := s.groups[s.groupIx].Beat; s.beat > target {
			s.beat = target
		}
		if s.windowOpen {
			s.windowLeft -= dt
			if s.windowLeft <= 0 {
				// window expired with the group incomplete
				s.stats.Mistakes++
				s.resetGroupProgress()
			}
		}
	case Tempo:
		s.beat += beats
		for s.groupIx < len(s.groups) && s.beat > s.groups[s.groupIx].Beat {
			s.missCurrentGroup()
		}
		if s.groupIx >= len(s.groups) {
			s.state = Complete
		}
	}
}

// missCurrentGroup records a tempo-mode miss for every unsatisfied pitch of
// the current group and advances past it.
func (s *Session) missCurrentGroup() {
	g := &s.groups[s.groupIx]
	unhit := 0
	for _, code := range g.Required {
		if !s.hit[code] {
			unhit++
		}
	}
	s.stats.MissedNotes += unhit
	s.stats.Mistakes++
	s.advanceGroup()
}

// resetGroupProgress throws away all partial progress on the current group:
// the satisfied-pitch set, the completion window, the per-note eval flags
// rendering consumers see, and any holds the partial hits registered.
func (s *Session) resetGroupProgress() {
	s.windowOpen = false
	s.hit = make(map[uint8]bool)
	if s.groupIx >= len(s.groups) {
		return
	}
	g := &s.groups[s.groupIx]
	for i := range g.Notes {
		g.Notes[i].Hit = false
	}
	for code, h := range s.holds {
		if h.group == s.groupIx {
			delete(s.holds, code)
		}
	}
}

func (s *Session) advanceGroup() {
	s.groupIx++
	s.resetGroupProgress()
	if s.groupIx >= len(s.groups) {
		s.state = Complete
	}
}

// HandleEvent feeds one decoded input event into the session. Events
// arriving outside a running session are ignored.
func (s *Session) HandleEvent(ev model.InputEvent) {
	if s.state != Running {
		return
	}
	switch ev.Kind {
	case model.NoteOn:
		s.handleNoteOn(ev.Note)
	case model.NoteOff:
		s.handleNoteOff(ev.Note)
	}
}

func (s *Session) handleNoteOn(code uint8) {
	if s.groupIx >= len(s.groups) {
		return
	}
	g := &s.groups[s.groupIx]

	if !g.Requires(code) {
		// wrong note: in practice mode this throws away all progress on
		// the group and closes the window
		s.stats.Mistakes++
		if s.cfg.Mode == Practice {
			s.resetGroupProgress()
		}
		return
	}
	if s.hit[code] {
		return
	}

	if s.cfg.Mode == Practice && !s.windowOpen {
		s.windowOpen = true
		s.windowLeft = s.cfg.WindowSeconds
	}

	s.hit[code] = true
	s.markHit(g, code)

	if len(s.hit) == len(g.Required) {
		s.stats.Correct += len(g.Required)
		s.advanceGroup()
	}
}

// markHit flags the group's evaluation records for the pitch and registers
// a hold for notes long enough to need release tracking.
func (s *Session) markHit(g *model.NoteGroup, code uint8) {
	for i := range g.Notes {
		n := &g.Notes[i]
		if n.Note.Pitch.MidiNote() != code {
			continue
		}
		n.Hit = true
		if n.Note.Beats() >= s.cfg.HoldMinBeats {
			s.holds[code] = hold{group: s.groupIx, note: i, endBeat: n.EndBeat}
		}
	}
}

func (s *Session) handleNoteOff(code uint8) {
	h, ok := s.holds[code]
	if !ok {
		return
	}
	if s.beat < h.endBeat-s.cfg.HoldReleaseToleranceBeats {
		s.stats.HoldBreaks++
		s.groups[h.group].Notes[h.note].HoldBroken = true
	}
	delete(s.holds, code)
}

// Beat is the current clock position, for scroll/rendering consumers.
func (s *Session) Beat() float64 { return s.beat }

// State reports the lifecycle phase.
func (s *Session) State() State { return s.state }

// Stats returns a copy of the running counters.
func (s *Session) Stats() Stats { return s.stats }

// GroupIndex is the index of the current (next unresolved) group.
func (s *Session) GroupIndex() int { return s.groupIx }

// Groups exposes the built groups read-only for rendering consumers.
func (s *Session) Groups() []model.NoteGroup { return s.groups }

// CurrentGroup returns the group awaiting completion, if any.
func (s *Session) CurrentGroup() (*model.NoteGroup, bool) {
	if s.state != Running || s.groupIx >= len(s.groups) {
		return nil, false
	}
	return &s.groups[s.groupIx], true
}

// ActiveHolds lists the pitches currently tracked for release, sorted, so
// rendering consumers can highlight sustained keys.
func (s *Session) ActiveHolds() []uint8 {
	return util.SortedKeys(s.holds)
}

// CountdownLeft is the seconds remaining before the clock starts.
func (s *Session) CountdownLeft() float64 {
	if s.state != Countdown {
		return 0
	}
	return s.countdownLeft
}

// Report summarizes the session. Each report carries a fresh ID so callers
// can persist or transmit several runs of the same score.
func (s *Session) Report() Report {
	title := ""
	if s.score != nil {
		title = s.score.Title
	}
	return Report{
		ID:     uuid.New().String(),
		Title:  title,
		Mode:   s.cfg.Mode.String(),
		Groups: len(s.groups),
		Stats:  s.stats,
	}
}

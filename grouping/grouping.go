// Package grouping reduces a flat time-ordered note sequence into
// simultaneity groups: runs of notes whose onsets coincide within a small
// beat epsilon, each with the distinct set of pitches required to satisfy
// it.
package grouping

import (
	"sort"

	"github.com/Cable-s/PianoGame/model"
)

// BeatEpsilon is the maximum beat distance between two onsets that still
// count as simultaneous.
const BeatEpsilon = 1e-4

// Build partitions notes into ordered NoteGroups. The input may be in any
// order; rests must already be filtered out. The sort is stable so notes
// sharing an onset keep their source order inside the group.
func Build(notes []model.Note) []model.NoteGroup {
	sorted := make([]model.Note, len(notes))
	copy(sorted, notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Beat < sorted[j].Beat
	})

	var groups []model.NoteGroup
	for _, n := range sorted {
		if len(groups) == 0 || n.Beat-groups[len(groups)-1].Beat > BeatEpsilon {
			groups = append(groups, model.NoteGroup{Beat: n.Beat})
		}
		g := &groups[len(groups)-1]
		g.Notes = append(g.Notes, model.NoteEval{
			Note:      n,
			StartBeat: n.Beat,
			EndBeat:   n.EndBeat(),
		})
		code := n.Pitch.MidiNote()
		if !g.Requires(code) {
			g.Required = append(g.Required, code)
		}
	}
	return groups
}

// FromScore filters the score by hand enablement and builds groups.
func FromScore(score *model.Score, left, right bool) []model.NoteGroup {
	return Build(score.PlayedNotes(left, right))
}

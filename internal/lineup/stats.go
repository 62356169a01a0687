package lineup

import (
	"math"

	"github.com/pikard86/ai-squad-builder/internal/formation"
	"github.com/pikard86/ai-squad-builder/internal/types"
)

// SlotView is one slot of the board with its occupant resolved against the roster.
type SlotView struct {
	Role      formation.Role     `json:"role"`
	Label     string             `json:"label"`
	Position  formation.Position `json:"position"`
	Candidate *types.Candidate   `json:"candidate,omitempty"`
	Lead      bool               `json:"lead,omitempty"`
}

// Snapshot is a read-only copy of the engine state for transport and for external evaluators.
type Snapshot struct {
	Formation  formation.Formation      `json:"formation"`
	Slots      []SlotView               `json:"slots"`
	LeadID     string                   `json:"lead_id,omitempty"`
	Overall    int                      `json:"overall"`
	Attributes []types.Attribute        `json:"attributes"`
	Synergy    *types.SynergyEvaluation `json:"synergy,omitempty"`
	Revision   uint64                   `json:"revision"`
}

// Occupied returns the filled slots of the snapshot.
func (s Snapshot) Occupied() []SlotView {
	out := make([]SlotView, 0, len(s.Slots))
	for _, v := range s.Slots {
		if v.Candidate != nil {
			out = append(out, v)
		}
	}
	return out
}

// Occupied returns the placed candidates in formation slot order.
func (e *Engine) Occupied() []types.Candidate {
	out := make([]types.Candidate, 0, len(e.lineup.players))
	for _, s := range e.formation.Slots {
		id, ok := e.lineup.players[s.Role]
		if !ok {
			continue
		}
		if c, ok := e.roster.Get(id); ok {
			out = append(out, c)
		}
	}
	return out
}

// AverageAttributes returns, per attribute label, the rounded mean over placed candidates.
// Labels appear in first-seen order. An empty lineup yields an empty slice.
func (e *Engine) AverageAttributes() []types.Attribute {
	players := e.Occupied()
	if len(players) == 0 {
		return []types.Attribute{}
	}

	var labels []string
	totals := make(map[string]int)
	fullLabels := make(map[string]string)
	for _, p := range players {
		for _, a := range p.Attributes {
			if _, seen := totals[a.Label]; !seen {
				labels = append(labels, a.Label)
				fullLabels[a.Label] = a.FullLabel
			}
			totals[a.Label] += a.Value
		}
	}

	out := make([]types.Attribute, 0, len(labels))
	for _, label := range labels {
		out = append(out, types.Attribute{
			Label:     label,
			Value:     roundedMean(totals[label], len(players)),
			FullLabel: fullLabels[label],
		})
	}
	return out
}

// OverallRating returns the rounded mean overall rating of placed candidates, or 0 when empty.
func (e *Engine) OverallRating() int {
	players := e.Occupied()
	if len(players) == 0 {
		return 0
	}
	total := 0
	for _, p := range players {
		total += p.Overall
	}
	return roundedMean(total, len(players))
}

// Snapshot captures the board for the current revision.
func (e *Engine) Snapshot() Snapshot {
	lead, hasLead := e.lineup.Lead()
	snap := Snapshot{
		Formation:  e.formation,
		Slots:      make([]SlotView, 0, len(e.formation.Slots)),
		Overall:    e.OverallRating(),
		Attributes: e.AverageAttributes(),
		Revision:   e.revision,
	}
	if hasLead {
		snap.LeadID = lead
	}
	for _, s := range e.formation.Slots {
		view := SlotView{Role: s.Role, Label: s.DisplayLabel(), Position: s.Position}
		if id, ok := e.lineup.players[s.Role]; ok {
			if c, ok := e.roster.Get(id); ok {
				view.Candidate = &c
				view.Lead = hasLead && lead == id
			}
		}
		snap.Slots = append(snap.Slots, view)
	}
	if eval, ok := e.Synergy(); ok {
		snap.Synergy = &eval
	}
	return snap
}

// roundedMean rounds the mean to the nearest integer, halves up.
func roundedMean(total, n int) int {
	return int(math.Floor(float64(total)/float64(n) + 0.5))
}

package lineup

import (
	"sort"

	"github.com/pikard86/ai-squad-builder/internal/formation"
	"github.com/pikard86/ai-squad-builder/internal/types"
)

// Reasons a proposal entry was dropped during reconciliation.
const (
	DropUnknownSlot      = "unknown_slot"
	DropSlotNotInLayout  = "slot_not_in_formation"
	DropUnknownCandidate = "unknown_candidate"
	DropDuplicate        = "candidate_already_placed"
)

// DroppedEntry is a proposal entry that could not be applied.
type DroppedEntry struct {
	Slot        string `json:"slot"`
	CandidateID string `json:"candidate_id"`
	Reason      string `json:"reason"`
}

// ReconcileReport describes what a reconciliation did with a proposal.
type ReconcileReport struct {
	Applied     map[string]string `json:"applied"`
	Dropped     []DroppedEntry    `json:"dropped,omitempty"`
	LeadKept    bool              `json:"lead_kept"`
	LeadCleared bool              `json:"lead_cleared"`
}

// Reconcile replaces the lineup's occupancy wholesale with an external proposal.
//
// Entries naming an unknown slot, a slot outside the active formation, or a candidate missing
// from the roster are dropped. When the proposal puts one candidate in several slots only the
// first slot in formation order is kept. Slots absent from the proposal end up empty. The lead
// survives only if its holder is still placed. Reconcile never fails.
func (e *Engine) Reconcile(p types.Proposal) ReconcileReport {
	report := ReconcileReport{Applied: make(map[string]string)}
	staged := make(map[formation.Role]string, len(e.formation.Slots))
	placed := make(map[string]bool)

	for slotID, candidateID := range p {
		role, err := formation.ParseRole(slotID)
		switch {
		case err != nil:
			report.drop(slotID, candidateID, DropUnknownSlot)
		case !e.formation.Has(role):
			report.drop(slotID, candidateID, DropSlotNotInLayout)
		case !e.roster.Has(candidateID):
			report.drop(slotID, candidateID, DropUnknownCandidate)
		}
	}

	for _, s := range e.formation.Slots {
		candidateID, ok := p[s.Role.String()]
		if !ok || !e.roster.Has(candidateID) {
			continue
		}
		if placed[candidateID] {
			report.drop(s.Role.String(), candidateID, DropDuplicate)
			continue
		}
		placed[candidateID] = true
		staged[s.Role] = candidateID
		report.Applied[s.Role.String()] = candidateID
	}

	_, hadLead := e.lineup.Lead()
	e.lineup.players = staged
	e.lineup.revalidateLead()
	_, hasLead := e.lineup.Lead()
	report.LeadKept = hadLead && hasLead
	report.LeadCleared = hadLead && !hasLead

	sort.Slice(report.Dropped, func(i, j int) bool {
		return report.Dropped[i].Slot < report.Dropped[j].Slot
	})

	e.invalidate()
	return report
}

func (r *ReconcileReport) drop(slot, candidateID, reason string) {
	r.Dropped = append(r.Dropped, DroppedEntry{Slot: slot, CandidateID: candidateID, Reason: reason})
}

package types

// SlotFitness is the model's judgement of one occupied slot.
type SlotFitness struct {
	Score     int    `json:"score"`
	Rationale string `json:"rationale"`
}

// SynergyEvaluation is a cached, derived assessment of the current lineup.
// It is never authoritative state; the lineup engine drops it on every occupancy change.
type SynergyEvaluation struct {
	Overall  int                    `json:"overall"`
	Summary  string                 `json:"summary,omitempty"`
	Slots    map[string]SlotFitness `json:"slots"` // keyed by role id
	Revision uint64                 `json:"revision"`
}

// Proposal is an externally produced slot id -> candidate id arrangement.
type Proposal map[string]string

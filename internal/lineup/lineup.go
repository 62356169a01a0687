// Package lineup implements the squad assignment engine: which candidate holds which role
// slot of the active formation, who is team lead, and the derived projections over that state.
//
// The engine holds two invariants after every mutating call:
//
//   - a candidate id occupies at most one slot;
//   - a lead, when set, names a candidate that currently occupies a slot.
//
// The engine is not safe for concurrent use; callers serialize access.
package lineup

import (
	"errors"
	"fmt"

	"github.com/pikard86/ai-squad-builder/internal/formation"
	"github.com/pikard86/ai-squad-builder/internal/roster"
	"github.com/pikard86/ai-squad-builder/internal/types"
)

var (
	// ErrRoleNotInFormation is returned when a role has no slot in the active formation.
	ErrRoleNotInFormation = errors.New("role not in active formation")
	// ErrUnknownCandidate is returned when a candidate id is not in the roster.
	ErrUnknownCandidate = errors.New("candidate not in roster")
	// ErrNotPlaced is returned when designating a lead who holds no slot.
	ErrNotPlaced = errors.New("candidate does not occupy a slot")
)

// Lineup is the sparse role -> candidate id mapping plus the lead designation.
// A missing key is an empty slot.
type Lineup struct {
	players map[formation.Role]string
	lead    string
	hasLead bool
}

func newLineup() Lineup {
	return Lineup{players: make(map[formation.Role]string)}
}

// Occupant returns the candidate id holding role, if any.
func (l Lineup) Occupant(role formation.Role) (string, bool) {
	id, ok := l.players[role]
	return id, ok
}

// Lead returns the designated lead, if any.
func (l Lineup) Lead() (string, bool) {
	return l.lead, l.hasLead
}

// Len returns the number of occupied slots.
func (l Lineup) Len() int {
	return len(l.players)
}

func (l Lineup) clone() Lineup {
	players := make(map[formation.Role]string, len(l.players))
	for r, id := range l.players {
		players[r] = id
	}
	l.players = players
	return l
}

func (l *Lineup) roleOf(candidateID string) (formation.Role, bool) {
	for r, id := range l.players {
		if id == candidateID {
			return r, true
		}
	}
	return 0, false
}

func (l *Lineup) clearLead() {
	l.lead, l.hasLead = "", false
}

// revalidateLead drops the lead when its holder left every slot.
func (l *Lineup) revalidateLead() {
	if !l.hasLead {
		return
	}
	if _, placed := l.roleOf(l.lead); !placed {
		l.clearLead()
	}
}

// Engine owns the roster, the active formation, the lineup and the cached synergy evaluation.
type Engine struct {
	roster    *roster.Roster
	formation formation.Formation
	lineup    Lineup

	synergy    types.SynergyEvaluation
	hasSynergy bool
	revision   uint64
}

// New creates an engine over roster r starting with formation f and an empty lineup.
func New(r *roster.Roster, f formation.Formation) *Engine {
	if r == nil {
		r = roster.New()
	}
	return &Engine{
		roster:    r,
		formation: f,
		lineup:    newLineup(),
	}
}

// Roster returns the roster the engine resolves candidates against.
func (e *Engine) Roster() *roster.Roster { return e.roster }

// Formation returns the active formation.
func (e *Engine) Formation() formation.Formation { return e.formation }

// Lineup returns a copy of the current lineup.
func (e *Engine) Lineup() Lineup { return e.lineup.clone() }

// Revision increases on every occupancy or formation change.
func (e *Engine) Revision() uint64 { return e.revision }

// Assign places candidateID at role. Every slot currently holding the same candidate, and the
// target slot itself, is cleared first, so assigning also expresses a move or a swap-out.
func (e *Engine) Assign(role formation.Role, candidateID string) error {
	if !e.formation.Has(role) {
		return fmt.Errorf("%w: %s", ErrRoleNotInFormation, role)
	}
	if !e.roster.Has(candidateID) {
		return fmt.Errorf("%w: %s", ErrUnknownCandidate, candidateID)
	}

	for r, id := range e.lineup.players {
		if id == candidateID {
			delete(e.lineup.players, r)
		}
	}
	delete(e.lineup.players, role)
	e.lineup.players[role] = candidateID

	e.lineup.revalidateLead()
	e.invalidate()
	return nil
}

// Remove empties the slot for role and reports the candidate that held it.
// Removing from an empty slot leaves the lineup unchanged but still drops cached synergy.
func (e *Engine) Remove(role formation.Role) (string, bool) {
	id, occupied := e.lineup.players[role]
	if occupied {
		delete(e.lineup.players, role)
		if lead, ok := e.lineup.Lead(); ok && lead == id {
			e.lineup.clearLead()
		}
	}
	e.invalidate()
	return id, occupied
}

// ToggleLead clears the lead if candidateID already holds it, otherwise designates it.
// Designating a candidate who holds no slot fails with ErrNotPlaced. It reports whether
// candidateID is lead after the call.
func (e *Engine) ToggleLead(candidateID string) (bool, error) {
	if lead, ok := e.lineup.Lead(); ok && lead == candidateID {
		e.lineup.clearLead()
		return false, nil
	}
	if _, placed := e.lineup.roleOf(candidateID); !placed {
		return false, fmt.Errorf("%w: %s", ErrNotPlaced, candidateID)
	}
	e.lineup.lead, e.lineup.hasLead = candidateID, true
	return true, nil
}

// RoleOf returns the role the candidate currently holds.
func (e *Engine) RoleOf(candidateID string) (formation.Role, bool) {
	for _, s := range e.formation.Slots {
		if id, ok := e.lineup.players[s.Role]; ok && id == candidateID {
			return s.Role, true
		}
	}
	return 0, false
}

// ChangeFormation switches the active formation. Assignments to roles the new formation lacks
// are dropped, and the lead with them if its holder was orphaned.
func (e *Engine) ChangeFormation(f formation.Formation) {
	e.formation = f
	for r := range e.lineup.players {
		if !f.Has(r) {
			delete(e.lineup.players, r)
		}
	}
	e.lineup.revalidateLead()
	e.invalidate()
}

// Synergy returns the cached evaluation, if one is current.
func (e *Engine) Synergy() (types.SynergyEvaluation, bool) {
	return e.synergy, e.hasSynergy
}

// ApplySynergy caches an evaluation computed at eval.Revision. Evaluations for an older
// revision are discarded and ApplySynergy reports false.
func (e *Engine) ApplySynergy(eval types.SynergyEvaluation) bool {
	if eval.Revision != e.revision {
		return false
	}
	e.synergy, e.hasSynergy = eval, true
	return true
}

func (e *Engine) invalidate() {
	e.revision++
	e.synergy, e.hasSynergy = types.SynergyEvaluation{}, false
}

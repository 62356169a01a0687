// Package roster stores every scouted candidate for the session.
package roster

import (
	"errors"
	"fmt"

	"github.com/pikard86/ai-squad-builder/internal/types"
)

var (
	// ErrNotFound is returned when no candidate has the requested id.
	ErrNotFound = errors.New("candidate not found")
	// ErrDuplicate is returned when adding a candidate whose id is already present.
	ErrDuplicate = errors.New("candidate already in roster")
)

// Roster is the ordered set of scouted candidates, keyed by id.
// Candidates are inserted and updated in place but never removed.
type Roster struct {
	order []string
	byID  map[string]types.Candidate
}

// New creates an empty roster.
func New() *Roster {
	return &Roster{byID: make(map[string]types.Candidate)}
}

// Add inserts a new candidate at the end of the roster.
func (r *Roster) Add(c types.Candidate) error {
	if c.ID == "" {
		return fmt.Errorf("candidate id is required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, c.ID)
	}
	r.order = append(r.order, c.ID)
	r.byID[c.ID] = c.Clone()
	return nil
}

// Update overwrites an existing candidate wholesale. The id is the key and is preserved.
func (r *Roster) Update(c types.Candidate) error {
	if _, exists := r.byID[c.ID]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, c.ID)
	}
	r.byID[c.ID] = c.Clone()
	return nil
}

// SetImage attaches or replaces the display image of a candidate.
func (r *Roster) SetImage(id, imageURL string) error {
	c, exists := r.byID[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	c.ImageURL = imageURL
	r.byID[id] = c
	return nil
}

// Get returns a copy of the candidate with the given id.
func (r *Roster) Get(id string) (types.Candidate, bool) {
	c, ok := r.byID[id]
	if !ok {
		return types.Candidate{}, false
	}
	return c.Clone(), true
}

// Has reports whether a candidate with the given id exists.
func (r *Roster) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// List returns copies of all candidates in insertion order.
func (r *Roster) List() []types.Candidate {
	out := make([]types.Candidate, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out
}

// Len returns the number of candidates.
func (r *Roster) Len() int {
	return len(r.order)
}

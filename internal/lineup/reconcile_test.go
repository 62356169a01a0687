package lineup

import (
	"testing"

	"github.com/pikard86/ai-squad-builder/internal/formation"
	"github.com/pikard86/ai-squad-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_DropsUnknownCandidates(t *testing.T) {
	e := newTestEngine(t, "real-id")

	report := e.Reconcile(types.Proposal{
		"fe1": "real-id",
		"fe2": "unknown-id",
	})

	id, ok := e.Lineup().Occupant(formation.RoleFrontend1)
	require.True(t, ok)
	assert.Equal(t, "real-id", id)
	_, ok = e.Lineup().Occupant(formation.RoleFrontend2)
	assert.False(t, ok)

	assert.Equal(t, map[string]string{"fe1": "real-id"}, report.Applied)
	require.Len(t, report.Dropped, 1)
	assert.Equal(t, DroppedEntry{Slot: "fe2", CandidateID: "unknown-id", Reason: DropUnknownCandidate}, report.Dropped[0])
}

func TestReconcile_DropsBadSlots(t *testing.T) {
	e := newTestEngine(t, "p1", "p2")

	report := e.Reconcile(types.Proposal{
		"striker": "p1",
		"be3":     "p2", // not in cross-functional
	})

	assert.Equal(t, 0, e.Lineup().Len())
	assert.Empty(t, report.Applied)
	require.Len(t, report.Dropped, 2)
	assert.Equal(t, DropSlotNotInLayout, report.Dropped[0].Reason)
	assert.Equal(t, DropUnknownSlot, report.Dropped[1].Reason)
}

func TestReconcile_ReplacesWholesale(t *testing.T) {
	e := newTestEngine(t, "p1", "p2", "p3")
	require.NoError(t, e.Assign(formation.RoleManager, "p1"))
	require.NoError(t, e.Assign(formation.RoleDevOps, "p2"))

	e.Reconcile(types.Proposal{"po": "p3"})

	assert.Equal(t, 1, e.Lineup().Len())
	_, ok := e.Lineup().Occupant(formation.RoleManager)
	assert.False(t, ok)
	role, ok := e.RoleOf("p3")
	require.True(t, ok)
	assert.Equal(t, formation.RoleProductOwner, role)
}

func TestReconcile_DuplicateCandidateKeepsFirstSlotInFormationOrder(t *testing.T) {
	e := newTestEngine(t, "p1")

	report := e.Reconcile(types.Proposal{
		"be2":     "p1",
		"manager": "p1",
	})

	role, ok := e.RoleOf("p1")
	require.True(t, ok)
	assert.Equal(t, formation.RoleManager, role)
	assert.Equal(t, 1, e.Lineup().Len())
	require.Len(t, report.Dropped, 1)
	assert.Equal(t, DropDuplicate, report.Dropped[0].Reason)
	assert.Equal(t, "be2", report.Dropped[0].Slot)
}

func TestReconcile_LeadKeptWhenStillPlaced(t *testing.T) {
	e := newTestEngine(t, "p1", "p2")
	require.NoError(t, e.Assign(formation.RoleManager, "p1"))
	_, err := e.ToggleLead("p1")
	require.NoError(t, err)

	report := e.Reconcile(types.Proposal{"po": "p1", "manager": "p2"})

	lead, ok := e.Lineup().Lead()
	require.True(t, ok)
	assert.Equal(t, "p1", lead)
	assert.True(t, report.LeadKept)
	assert.False(t, report.LeadCleared)
}

func TestReconcile_LeadClearedWhenDropped(t *testing.T) {
	e := newTestEngine(t, "p1", "p2")
	require.NoError(t, e.Assign(formation.RoleManager, "p1"))
	_, err := e.ToggleLead("p1")
	require.NoError(t, err)

	report := e.Reconcile(types.Proposal{"manager": "p2"})

	_, ok := e.Lineup().Lead()
	assert.False(t, ok)
	assert.True(t, report.LeadCleared)
}

func TestReconcile_NilProposal(t *testing.T) {
	e := newTestEngine(t, "p1")
	require.NoError(t, e.Assign(formation.RoleManager, "p1"))

	assert.NotPanics(t, func() { e.Reconcile(nil) })
	assert.Equal(t, 0, e.Lineup().Len())
}

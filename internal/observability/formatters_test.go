package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pikard86/ai-squad-builder/internal/formation"
	"github.com/pikard86/ai-squad-builder/internal/lineup"
	"github.com/pikard86/ai-squad-builder/internal/roster"
	"github.com/pikard86/ai-squad-builder/internal/types"
)

func sampleCandidate() types.Candidate {
	return types.Candidate{
		ID:          "c1",
		Name:        "Margaret Hamilton",
		Position:    "Flight Software",
		Nationality: "US",
		Overall:     95,
		Attributes: []types.Attribute{
			{Label: "CODE", Value: 95}, {Label: "ARCH", Value: 97}, {Label: "LEAD", Value: 92},
			{Label: "COMM", Value: 85}, {Label: "PROB", Value: 99}, {Label: "EXP", Value: 90},
		},
		TechSkills: []types.TechSkill{
			{Name: "Assembly", Rating: 99}, {Name: "AGC", Rating: 98}, {Name: "Fortran", Rating: 80},
			{Name: "Lisp", Rating: 60}, {Name: "COBOL", Rating: 50}, {Name: "Ada", Rating: 40},
		},
		Summary: "Coined software engineering.",
		Foot:    "Both",
	}
}

func TestPrintCandidate(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCandidate(sampleCandidate())
	output := buf.String()

	assert.Contains(t, output, "MARGARET HAMILTON")
	assert.Contains(t, output, "95  Flight Software")
	assert.Contains(t, output, "PROB 99 "+strings.Repeat("█", 20))
	assert.Contains(t, output, "• Assembly (99)")
	assert.Contains(t, output, "... and 1 more")
	assert.NotContains(t, output, "Ada (40)")
	assert.Contains(t, output, "Foot: Both")
}

func TestPrintBox_LinesFit(t *testing.T) {
	var buf bytes.Buffer
	c := sampleCandidate()
	c.Summary = strings.Repeat("très long résumé ", 10)
	NewPrinter(&buf).PrintCandidate(c)

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), "line %q", line)
	}
}

func TestPrintSquad(t *testing.T) {
	r := roster.New()
	require.NoError(t, r.Add(sampleCandidate()))
	e := lineup.New(r, formation.Default())
	require.NoError(t, e.Assign(formation.RoleManager, "c1"))
	_, err := e.ToggleLead("c1")
	require.NoError(t, err)
	e.ApplySynergy(types.SynergyEvaluation{
		Overall:  88,
		Slots:    map[string]types.SlotFitness{"manager": {Score: 90, Rationale: "Led Apollo software"}},
		Revision: e.Revision(),
	})

	var buf bytes.Buffer
	NewPrinter(&buf).PrintSquad(e.Snapshot())
	output := buf.String()

	assert.Contains(t, output, "SQUAD: Classic Agile (Cross-Functional)")
	assert.Contains(t, output, "Margaret Hamilton (95) [C]")
	assert.Contains(t, output, "Team overall: 95")
	assert.Contains(t, output, "SYNERGY")
	assert.Contains(t, output, "Led Apollo software")
}

func TestPrintFormations(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintFormations(formation.Catalog())
	output := buf.String()

	assert.Contains(t, output, "cross-functional: Classic Agile")
	assert.Contains(t, output, "microservices: Microservices Squad")
}

func TestPrintReconcile(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintReconcile(lineup.ReconcileReport{
		Applied: map[string]string{"be1": "c1"},
		Dropped: []lineup.DroppedEntry{{Slot: "zz", CandidateID: "c2", Reason: lineup.DropUnknownSlot}},
	})
	output := buf.String()

	assert.Contains(t, output, "Applied: 1")
	assert.Contains(t, output, "zz -> c2 (unknown_slot)")
}

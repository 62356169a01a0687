// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pikard86/ai-squad-builder/internal/formation"
	"github.com/pikard86/ai-squad-builder/internal/lineup"
	"github.com/pikard86/ai-squad-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the width of attribute bars
	barWidth = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens a line to the box's inner width, counting runes.
func truncate(line string) string {
	runes := []rune(line)
	if len(runes) > boxWidth-4 {
		return string(runes[:boxWidth-7]) + "..."
	}
	return line
}

// bar renders a 0-99 score as a fixed-width bar.
func bar(value int) string {
	filled := types.ClampScore(value) * barWidth / types.MaxScore
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// PrintCandidate outputs a candidate card.
func (p *Printer) PrintCandidate(c types.Candidate) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%d  %s\n", c.Overall, c.Position))
	sb.WriteString(fmt.Sprintf("ID:          %s\n", c.ID))
	sb.WriteString(fmt.Sprintf("Nationality: %s\n", c.Nationality))
	if c.Foot != "" || c.WorkRate != "" {
		sb.WriteString(fmt.Sprintf("Foot: %-6s  Work rate: %s\n", c.Foot, c.WorkRate))
	}
	sb.WriteString("\n")

	for _, a := range c.Attributes {
		sb.WriteString(fmt.Sprintf("%-4s %2d %s\n", a.Label, a.Value, bar(a.Value)))
	}

	if len(c.TechSkills) > 0 {
		sb.WriteString("\nTech:\n")
		count := min(len(c.TechSkills), maxItemsToShow)
		for _, s := range c.TechSkills[:count] {
			sb.WriteString(fmt.Sprintf("  • %s (%d)\n", s.Name, s.Rating))
		}
		if len(c.TechSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(c.TechSkills)-maxItemsToShow))
		}
	}

	if c.Summary != "" {
		sb.WriteString("\n")
		sb.WriteString(c.Summary)
		sb.WriteString("\n")
	}

	p.printBox(strings.ToUpper(c.Name), sb.String())
}

// PrintFormations lists the formation catalog.
func (p *Printer) PrintFormations(formations []formation.Formation) {
	var sb strings.Builder
	for i, f := range formations {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", f.ID, f.Name))
		sb.WriteString(fmt.Sprintf("  %s\n", f.Description))
		roles := make([]string, 0, len(f.Slots))
		for _, s := range f.Slots {
			roles = append(roles, s.Role.String())
		}
		sb.WriteString(fmt.Sprintf("  slots: %s\n", strings.Join(roles, ", ")))
	}
	p.printBox("FORMATIONS", sb.String())
}

// PrintSquad outputs the board: every slot in formation order, the lead, and team averages.
func (p *Printer) PrintSquad(snap lineup.Snapshot) {
	var sb strings.Builder

	for _, s := range snap.Slots {
		occupant := "-"
		if s.Candidate != nil {
			occupant = fmt.Sprintf("%s (%d)", s.Candidate.Name, s.Candidate.Overall)
			if s.Lead {
				occupant += " [C]"
			}
		}
		sb.WriteString(fmt.Sprintf("%-7s %-15s %s\n", s.Role, s.Label, occupant))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Team overall: %d\n", snap.Overall))
	for _, a := range snap.Attributes {
		sb.WriteString(fmt.Sprintf("%-4s %2d %s\n", a.Label, a.Value, bar(a.Value)))
	}

	p.printBox(fmt.Sprintf("SQUAD: %s", snap.Formation.Name), sb.String())

	if snap.Synergy != nil {
		p.PrintSynergy(*snap.Synergy)
	}
}

// PrintSynergy outputs a synergy evaluation, slots sorted by id.
func (p *Printer) PrintSynergy(eval types.SynergyEvaluation) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Overall: %d %s\n", eval.Overall, bar(eval.Overall)))
	if eval.Summary != "" {
		sb.WriteString(eval.Summary)
		sb.WriteString("\n")
	}

	slots := make([]string, 0, len(eval.Slots))
	for slot := range eval.Slots {
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	if len(slots) > 0 {
		sb.WriteString("\n")
	}
	for _, slot := range slots {
		fit := eval.Slots[slot]
		sb.WriteString(fmt.Sprintf("%-7s %2d  %s\n", slot, fit.Score, fit.Rationale))
	}

	p.printBox("SYNERGY", sb.String())
}

// PrintReconcile outputs what an arrangement did.
func (p *Printer) PrintReconcile(report lineup.ReconcileReport) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Applied: %d\n", len(report.Applied)))
	if len(report.Dropped) > 0 {
		sb.WriteString(fmt.Sprintf("Dropped: %d\n", len(report.Dropped)))
		count := min(len(report.Dropped), maxItemsToShow)
		for _, d := range report.Dropped[:count] {
			sb.WriteString(fmt.Sprintf("  • %s -> %s (%s)\n", d.Slot, d.CandidateID, d.Reason))
		}
		if len(report.Dropped) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.Dropped)-maxItemsToShow))
		}
	}
	if report.LeadCleared {
		sb.WriteString("Lead cleared: holder no longer placed\n")
	}

	p.printBox("ARRANGEMENT", sb.String())
}

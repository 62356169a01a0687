package scouting

import (
	"strings"

	"github.com/pikard86/ai-squad-builder/internal/types"
)

// Model replies use float64 for every score; models sometimes answer 87.5 or 87.0.

type cardReply struct {
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	Nationality string  `json:"nationality"`
	Overall     float64 `json:"overall"`
	Summary     string  `json:"summary"`
	Attributes  []struct {
		Label     string  `json:"label"`
		Value     float64 `json:"value"`
		FullLabel string  `json:"full_label"`
	} `json:"attributes"`
	TechSkills []struct {
		Name   string  `json:"name"`
		Rating float64 `json:"rating"`
	} `json:"tech_skills"`
	Foot     string `json:"foot"`
	WorkRate string `json:"work_rate"`
}

type synergyReply struct {
	Overall float64 `json:"overall"`
	Summary string  `json:"summary"`
	Slots   map[string]struct {
		Score     float64 `json:"score"`
		Rationale string  `json:"rationale"`
	} `json:"slots"`
}

type arrangementReply struct {
	Assignments map[string]string `json:"assignments"`
}

func (r cardReply) toCandidate() types.Candidate {
	c := types.Candidate{
		Name:        strings.TrimSpace(r.Name),
		Position:    strings.TrimSpace(r.Position),
		Nationality: strings.TrimSpace(r.Nationality),
		Overall:     score(r.Overall),
		Summary:     strings.TrimSpace(r.Summary),
		Foot:        normalizeFoot(r.Foot),
		WorkRate:    strings.TrimSpace(r.WorkRate),
		Attributes:  make([]types.Attribute, 0, len(r.Attributes)),
	}
	if c.Nationality == "" {
		c.Nationality = "World"
	}

	for _, a := range r.Attributes {
		label := strings.ToUpper(strings.TrimSpace(a.Label))
		full := strings.TrimSpace(a.FullLabel)
		if full == "" {
			full = fullLabels[label]
		}
		c.Attributes = append(c.Attributes, types.Attribute{Label: label, Value: score(a.Value), FullLabel: full})
	}

	for _, t := range r.TechSkills {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			continue
		}
		c.TechSkills = append(c.TechSkills, types.TechSkill{Name: name, Rating: score(t.Rating)})
	}
	return c
}

// normalizeFoot maps the model's answer onto Left/Right/Both, or empty when unrecognized.
func normalizeFoot(foot string) string {
	switch strings.ToLower(strings.TrimSpace(foot)) {
	case "left":
		return "Left"
	case "right":
		return "Right"
	case "both":
		return "Both"
	default:
		return ""
	}
}

// Package types provides type definitions for structured data used throughout the squad builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// AttributeCount is the number of scored attributes on every candidate card.
const AttributeCount = 6

// MaxScore is the upper bound of every rating on a card.
const MaxScore = 99

// Attribute is one of the six labeled scores on a card (CODE, ARCH, LEAD, COMM, PROB, EXP).
type Attribute struct {
	Label     string `json:"label" validate:"required"`
	Value     int    `json:"value" validate:"min=0,max=99"`
	FullLabel string `json:"full_label,omitempty"`
}

// TechSkill is a named technology rating.
type TechSkill struct {
	Name   string `json:"name" validate:"required"`
	Rating int    `json:"rating" validate:"min=0,max=99"`
}

// Candidate is a scouted profile rendered as a player card.
type Candidate struct {
	ID          string      `json:"id" validate:"required"`
	Name        string      `json:"name" validate:"required"`
	Position    string      `json:"position"`
	Nationality string      `json:"nationality"`
	Overall     int         `json:"overall" validate:"min=0,max=99"`
	Attributes  []Attribute `json:"attributes" validate:"len=6,dive"`
	Summary     string      `json:"summary"`
	TechSkills  []TechSkill `json:"tech_skills,omitempty" validate:"omitempty,dive"`
	Foot        string      `json:"foot,omitempty" validate:"omitempty,oneof=Left Right Both"`
	WorkRate    string      `json:"work_rate,omitempty"`
	ImageURL    string      `json:"image_url,omitempty"`
}

// Validate checks the card's structural constraints.
func (c *Candidate) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// Clone returns a deep copy so callers cannot mutate roster-owned slices.
func (c Candidate) Clone() Candidate {
	c.Attributes = append([]Attribute(nil), c.Attributes...)
	if c.TechSkills != nil {
		c.TechSkills = append([]TechSkill(nil), c.TechSkills...)
	}
	return c
}

// Attribute returns the value of the attribute with the given label.
func (c *Candidate) Attribute(label string) (int, bool) {
	for _, a := range c.Attributes {
		if a.Label == label {
			return a.Value, true
		}
	}
	return 0, false
}

// ClampScore bounds a model-produced score to [0, MaxScore].
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCandidate() Candidate {
	return Candidate{
		ID:      "p1",
		Name:    "Ada Lovelace",
		Overall: 88,
		Attributes: []Attribute{
			{Label: "CODE", Value: 90},
			{Label: "ARCH", Value: 85},
			{Label: "LEAD", Value: 70},
			{Label: "COMM", Value: 80},
			{Label: "PROB", Value: 95},
			{Label: "EXP", Value: 89},
		},
		TechSkills: []TechSkill{{Name: "Go", Rating: 80}},
	}
}

func TestCandidate_Validate(t *testing.T) {
	c := validCandidate()
	assert.NoError(t, c.Validate())
}

func TestCandidate_Validate_AttributeCount(t *testing.T) {
	c := validCandidate()
	c.Attributes = c.Attributes[:5]
	assert.Error(t, c.Validate())
}

func TestCandidate_Validate_ScoreRange(t *testing.T) {
	c := validCandidate()
	c.Attributes[2].Value = 120
	assert.Error(t, c.Validate())

	c = validCandidate()
	c.Overall = -1
	assert.Error(t, c.Validate())

	c = validCandidate()
	c.TechSkills[0].Rating = 100
	assert.Error(t, c.Validate())
}

func TestCandidate_Validate_Foot(t *testing.T) {
	c := validCandidate()
	c.Foot = "Both"
	assert.NoError(t, c.Validate())
	c.Foot = "Neither"
	assert.Error(t, c.Validate())
}

func TestCandidate_Clone(t *testing.T) {
	c := validCandidate()
	cp := c.Clone()
	cp.Attributes[0].Value = 1
	cp.TechSkills[0].Name = "Rust"

	assert.Equal(t, 90, c.Attributes[0].Value)
	assert.Equal(t, "Go", c.TechSkills[0].Name)
}

func TestCandidate_Attribute(t *testing.T) {
	c := validCandidate()
	v, ok := c.Attribute("PROB")
	require.True(t, ok)
	assert.Equal(t, 95, v)

	_, ok = c.Attribute("PACE")
	assert.False(t, ok)
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, ClampScore(-5))
	assert.Equal(t, 42, ClampScore(42))
	assert.Equal(t, 99, ClampScore(140))
}

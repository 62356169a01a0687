package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	result := CleanText("Senior    Engineer\t\tat   Acme")
	assert.Equal(t, "Senior Engineer at Acme", result)
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	result := CleanText("Experience\n\n\n\n\nEducation")
	assert.Equal(t, "Experience\n\nEducation", result)
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	result := CleanText("Line 1\r\nLine 2\rLine 3\nLine 4")
	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
}

func TestCleanText_BulletGlyphs(t *testing.T) {
	input := "Skills\n• Go\n  · Kubernetes\n- Postgres"
	result := CleanText(input)

	assert.Equal(t, "Skills\n- Go\n  - Kubernetes\n- Postgres", result)
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Empty(t, CleanText(""))
	assert.Empty(t, CleanText("   \n  \n  "))
}

func TestCleanText_Unicode(t *testing.T) {
	input := "José   Müller 🚀"
	assert.Equal(t, "José Müller 🚀", CleanText(input))
}

func TestCleanText_Deterministic(t *testing.T) {
	input := "A   b\n\n\n\nc"
	assert.Equal(t, CleanText(input), CleanText(CleanText(input)))
}

package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputFormat(t *testing.T) {
	schema := ExtractionSchema{
		Name: "Tiny",
		Fields: []SchemaField{
			{Name: "a", Type: "integer", Description: "first", Required: true},
			{Name: "b"},
		},
	}

	out := schema.OutputFormat()
	assert.Contains(t, out, `"a": integer (required) // first,`)
	assert.Contains(t, out, `"b": string`+"\n}")
	assert.True(t, strings.HasSuffix(out, "no code blocks."))
}

func TestPredefinedSchemas(t *testing.T) {
	for _, schema := range []ExtractionSchema{CandidateCardSchema(), SynergySchema(), ArrangementSchema()} {
		assert.NotEmpty(t, schema.Name)
		assert.NotEmpty(t, schema.Fields)
		assert.Contains(t, schema.OutputFormat(), "Return ONLY valid JSON")
	}

	out := CandidateCardSchema().OutputFormat()
	for _, field := range []string{"name", "overall", "attributes", "tech_skills"} {
		assert.Contains(t, out, `"`+field+`"`)
	}
}

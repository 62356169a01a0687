// Package llm - extractor.go describes expected JSON replies so prompts can spell them out.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the JSON reply a prompt asks the model for.
type ExtractionSchema struct {
	Name   string        // Schema name (e.g., "CandidateCard")
	Fields []SchemaField // Expected output fields
}

// SchemaField defines a single field in the expected output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint rendered verbatim, e.g. "integer 0-99"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// OutputFormat renders the reply contract appended to every scouting prompt.
func (s ExtractionSchema) OutputFormat() string {
	var sb strings.Builder

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range s.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(s.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")
	sb.WriteString("Return ONLY the JSON object, no markdown, no explanation, no code blocks.")

	return sb.String()
}

// --- Predefined Schemas ---

// CandidateCardSchema is the reply for resume scoring.
func CandidateCardSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "CandidateCard",
		Fields: []SchemaField{
			{Name: "name", Type: "string", Description: "Candidate's full name", Required: true},
			{Name: "position", Type: "string", Description: "Primary job title, max 3 words", Required: true},
			{Name: "nationality", Type: "string", Description: "ISO 2-letter code, country name, or 'World' if unknown", Required: true},
			{Name: "overall", Type: "integer 1-99", Description: "Weighted overall rating", Required: true},
			{Name: "summary", Type: "string", Description: "Punchy 2-sentence bio", Required: true},
			{Name: "attributes", Type: `[{"label": "CODE|ARCH|LEAD|COMM|PROB|EXP", "value": 0-99, "full_label": "string"}]`, Description: "Exactly 6 entries, one per label", Required: true},
			{Name: "tech_skills", Type: `[{"name": "string", "rating": 0-99}]`, Description: "Top 6-8 technologies from the resume", Required: true},
			{Name: "foot", Type: `"Left" | "Right" | "Both"`, Description: "Frontend-leaning, backend-leaning, or full-stack", Required: false},
			{Name: "work_rate", Type: "string", Description: "e.g. 'High/Medium'", Required: false},
		},
	}
}

// SynergySchema is the reply for lineup evaluation.
func SynergySchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "Synergy",
		Fields: []SchemaField{
			{Name: "overall", Type: "integer 0-99", Description: "Team synergy score", Required: true},
			{Name: "summary", Type: "string", Description: "One or two sentences on the squad as a whole", Required: false},
			{Name: "slots", Type: `{"<slot id>": {"score": 0-99, "rationale": "string"}}`, Description: "One entry per occupied slot id listed above", Required: true},
		},
	}
}

// ArrangementSchema is the reply for auto-arrangement.
func ArrangementSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "Arrangement",
		Fields: []SchemaField{
			{Name: "assignments", Type: `{"<slot id>": "<candidate id>"}`, Description: "Omit slots nobody fits; use each candidate at most once", Required: true},
		},
	}
}

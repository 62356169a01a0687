// Package scouting turns resumes into candidate cards and asks the model to judge and arrange squads.
package scouting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/pikard86/ai-squad-builder/internal/formation"
	"github.com/pikard86/ai-squad-builder/internal/ingestion"
	"github.com/pikard86/ai-squad-builder/internal/lineup"
	"github.com/pikard86/ai-squad-builder/internal/llm"
	"github.com/pikard86/ai-squad-builder/internal/prompts"
	"github.com/pikard86/ai-squad-builder/internal/schemas"
	"github.com/pikard86/ai-squad-builder/internal/types"
)

const promptFile = "scouting.json"

// Model tiers per action.
const (
	scoreTier   = llm.TierStandard
	synergyTier = llm.TierStandard
	arrangeTier = llm.TierLite
)

// fullLabels fills in attribute names the model leaves out.
var fullLabels = map[string]string{
	"CODE": "Coding",
	"ARCH": "Architecture",
	"LEAD": "Leadership",
	"COMM": "Communication",
	"PROB": "Problem Solving",
	"EXP":  "Experience",
}

// Scout runs the three model-backed contracts over an llm.Client.
type Scout struct {
	client llm.Client
}

// New creates a Scout. The caller owns the client and closes it.
func New(client llm.Client) *Scout {
	return &Scout{client: client}
}

// ScoreResume scores a resume into a candidate card with a fresh id.
// PDFs are attached inline; DOCX and text resumes are embedded in the prompt.
func (s *Scout) ScoreResume(ctx context.Context, doc *ingestion.Document) (*types.Candidate, error) {
	if doc == nil {
		return nil, &ValidationError{Message: "no document"}
	}

	var section string
	if doc.Inline() {
		section = prompts.MustGet(promptFile, "resume-document-section")
	} else {
		section = prompts.Format(prompts.MustGet(promptFile, "resume-text-section"), map[string]string{
			"ResumeText": doc.Text,
		})
	}
	prompt := prompts.Format(prompts.MustGet(promptFile, "score-resume"), map[string]string{
		"OutputFormat":  llm.CandidateCardSchema().OutputFormat(),
		"ResumeSection": section,
	})

	var reply cardReply
	var attachment *llm.Document
	if doc.Inline() {
		attachment = &llm.Document{MIMEType: doc.MIMEType(), Data: doc.Data}
	}
	if err := s.generate(ctx, prompt, attachment, scoreTier, schemas.CandidateCard, &reply); err != nil {
		return nil, err
	}

	candidate := reply.toCandidate()
	candidate.ID = uuid.NewString()
	if err := candidate.Validate(); err != nil {
		return nil, &ValidationError{Field: "candidate", Message: "scored card failed validation", Cause: err}
	}

	log.Printf("[scouting] scored %s as %q overall=%d", doc.Name, candidate.Name, candidate.Overall)
	return &candidate, nil
}

// EvaluateSynergy judges the placed squad of snap. Fitness entries the model returns for roles
// that are not occupied are dropped. The result carries snap.Revision so a stale answer can be
// recognized by the engine.
func (s *Scout) EvaluateSynergy(ctx context.Context, snap lineup.Snapshot) (types.SynergyEvaluation, error) {
	occupied := snap.Occupied()
	if len(occupied) == 0 {
		return types.SynergyEvaluation{}, ErrEmptyLineup
	}

	lead := "none"
	var squad strings.Builder
	for _, v := range occupied {
		fmt.Fprintf(&squad, "- %s (%s): %s\n", v.Role, v.Label, describe(*v.Candidate))
		if v.Lead {
			lead = fmt.Sprintf("%s (%s)", v.Candidate.Name, v.Role)
		}
	}

	prompt := prompts.Format(prompts.MustGet(promptFile, "evaluate-synergy"), map[string]string{
		"FormationName":        snap.Formation.Name,
		"FormationDescription": snap.Formation.Description,
		"Lead":                 lead,
		"Squad":                strings.TrimRight(squad.String(), "\n"),
		"OutputFormat":         llm.SynergySchema().OutputFormat(),
	})

	var reply synergyReply
	if err := s.generate(ctx, prompt, nil, synergyTier, schemas.Synergy, &reply); err != nil {
		return types.SynergyEvaluation{}, err
	}

	eval := types.SynergyEvaluation{
		Overall:  score(reply.Overall),
		Summary:  strings.TrimSpace(reply.Summary),
		Slots:    make(map[string]types.SlotFitness, len(occupied)),
		Revision: snap.Revision,
	}
	for _, v := range occupied {
		fit, ok := reply.Slots[v.Role.String()]
		if !ok {
			continue
		}
		eval.Slots[v.Role.String()] = types.SlotFitness{
			Score:     score(fit.Score),
			Rationale: strings.TrimSpace(fit.Rationale),
		}
	}
	if dropped := len(reply.Slots) - len(eval.Slots); dropped > 0 {
		log.Printf("[scouting] synergy: ignored %d entries for unoccupied slots", dropped)
	}

	return eval, nil
}

// ProposeArrangement asks the model to fill f's slots from candidates. The proposal is
// untrusted and must go through lineup reconciliation.
func (s *Scout) ProposeArrangement(ctx context.Context, candidates []types.Candidate, f formation.Formation) (types.Proposal, error) {
	if len(candidates) == 0 {
		return nil, ErrEmptyRoster
	}

	var slots strings.Builder
	for _, slot := range f.Slots {
		fmt.Fprintf(&slots, "- %s: %s\n", slot.Role, slot.DisplayLabel())
	}
	var pool strings.Builder
	for _, c := range candidates {
		fmt.Fprintf(&pool, "- %s: %s\n", c.ID, describe(c))
	}

	prompt := prompts.Format(prompts.MustGet(promptFile, "propose-arrangement"), map[string]string{
		"FormationName":        f.Name,
		"FormationDescription": f.Description,
		"Slots":                strings.TrimRight(slots.String(), "\n"),
		"Candidates":           strings.TrimRight(pool.String(), "\n"),
		"OutputFormat":         llm.ArrangementSchema().OutputFormat(),
	})

	var reply arrangementReply
	if err := s.generate(ctx, prompt, nil, arrangeTier, schemas.Arrangement, &reply); err != nil {
		return nil, err
	}

	proposal := make(types.Proposal, len(reply.Assignments))
	for slot, id := range reply.Assignments {
		proposal[strings.TrimSpace(slot)] = strings.TrimSpace(id)
	}
	return proposal, nil
}

// generate calls the model, strips fences and prose, checks the reply against the named
// embedded schema and decodes it into out.
func (s *Scout) generate(ctx context.Context, prompt string, doc *llm.Document, tier llm.ModelTier, schema string, out any) error {
	var (
		resp string
		err  error
	)
	if doc != nil {
		resp, err = s.client.GenerateJSONFromDocument(ctx, prompt, *doc, tier)
	} else {
		resp, err = s.client.GenerateJSON(ctx, prompt, tier)
	}
	if err != nil {
		return &APICallError{Message: fmt.Sprintf("%s request failed", schema), Cause: err}
	}

	raw := llm.CleanJSONBlock(resp)
	if !json.Valid([]byte(raw)) {
		return &ParseError{Message: fmt.Sprintf("%s reply is not valid JSON", schema)}
	}

	if err := schemas.Validate(schema, raw); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) && len(ve.Errors) > 0 {
			return &ValidationError{Field: ve.Errors[0].Field, Message: ve.Errors[0].Message, Cause: err}
		}
		return &ValidationError{Message: "schema check failed", Cause: err}
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return &ParseError{Message: fmt.Sprintf("failed to decode %s reply", schema), Cause: err}
	}
	return nil
}

// describe renders a one-line card summary for prompts.
func describe(c types.Candidate) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s, %s, OVR %d", c.Name, c.Position, c.Overall)
	for _, a := range c.Attributes {
		fmt.Fprintf(&sb, ", %s %d", a.Label, a.Value)
	}
	if len(c.TechSkills) > 0 {
		names := make([]string, 0, len(c.TechSkills))
		for _, t := range c.TechSkills {
			names = append(names, t.Name)
		}
		fmt.Fprintf(&sb, ", skills: %s", strings.Join(names, "/"))
	}
	return sb.String()
}

// score rounds a model number and clamps it to the card range.
func score(v float64) int {
	return types.ClampScore(int(math.Round(v)))
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pikard86/ai-squad-builder/internal/config"
	"github.com/pikard86/ai-squad-builder/internal/formation"
	"github.com/pikard86/ai-squad-builder/internal/ingestion"
	"github.com/pikard86/ai-squad-builder/internal/lineup"
	"github.com/pikard86/ai-squad-builder/internal/session"
	"github.com/pikard86/ai-squad-builder/internal/types"
)

// stubScouter turns the first line of a resume into a card and fills slots in roster order.
type stubScouter struct {
	scored atomic.Int32
}

func (s *stubScouter) ScoreResume(_ context.Context, doc *ingestion.Document) (*types.Candidate, error) {
	s.scored.Add(1)
	name := strings.SplitN(doc.Text, "\n", 2)[0]
	return &types.Candidate{
		ID:         "id-" + strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		Name:       name,
		Position:   "Backend Dev",
		Overall:    75,
		Attributes: attributes(75),
	}, nil
}

func (s *stubScouter) EvaluateSynergy(_ context.Context, snap lineup.Snapshot) (types.SynergyEvaluation, error) {
	return types.SynergyEvaluation{Overall: 88, Summary: "works well together", Revision: snap.Revision}, nil
}

func (s *stubScouter) ProposeArrangement(_ context.Context, candidates []types.Candidate, f formation.Formation) (types.Proposal, error) {
	p := types.Proposal{}
	for i, c := range candidates {
		if i < len(f.Slots) {
			p[f.Slots[i].Role.String()] = c.ID
		}
	}
	return p, nil
}

func attributes(v int) []types.Attribute {
	out := make([]types.Attribute, 0, types.AttributeCount)
	for _, label := range []string{"CODE", "ARCH", "LEAD", "COMM", "PROB", "EXP"} {
		out = append(out, types.Attribute{Label: label, Value: v})
	}
	return out
}

func useStub(t *testing.T) *stubScouter {
	t.Helper()
	stub := &stubScouter{}
	prev := newScouter
	newScouter = func(context.Context, config.Config) (session.Scouter, func(), error) {
		return stub, func() {}, nil
	}
	t.Cleanup(func() { newScouter = prev })
	return stub
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SQUAD_FORMATION", "")
	t.Setenv("SQUAD_CONCURRENCY", "")
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFormationsCommand(t *testing.T) {
	out, err := execute(t, "formations")
	require.NoError(t, err)
	for _, f := range formation.Catalog() {
		assert.Contains(t, out, f.ID)
	}

	out, err = execute(t, "formations", "--json")
	require.NoError(t, err)
	var catalog []formation.Formation
	require.NoError(t, json.Unmarshal([]byte(out), &catalog))
	assert.Len(t, catalog, len(formation.Catalog()))
}

func TestScoutCommand_JSONRoster(t *testing.T) {
	stub := useStub(t)
	dir := t.TempDir()
	var paths []string
	for i := range 5 {
		paths = append(paths, writeFile(t, dir, fmt.Sprintf("cv%d.txt", i), fmt.Sprintf("Engineer %d\nGo, Kubernetes", i)))
	}

	out, err := execute(t, append([]string{"scout", "--json", "--concurrency", "2"}, paths...)...)
	require.NoError(t, err)
	assert.EqualValues(t, 5, stub.scored.Load())

	var cards []types.Candidate
	require.NoError(t, json.Unmarshal([]byte(out), &cards))
	require.Len(t, cards, 5)
	for i, c := range cards {
		assert.Equal(t, fmt.Sprintf("Engineer %d", i), c.Name, "cards keep argument order")
	}
}

func TestScoutCommand_PrintsCards(t *testing.T) {
	useStub(t)
	path := writeFile(t, t.TempDir(), "ada.md", "Ada Lovelace\nAnalytical engines")

	out, err := execute(t, "scout", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ADA LOVELACE")
	assert.Contains(t, out, "CODE")
}

func TestScoutCommand_BadInputSkipsModel(t *testing.T) {
	stub := useStub(t)
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "Someone")

	_, err := execute(t, "scout", good, filepath.Join(dir, "missing.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.pdf")
	assert.Zero(t, stub.scored.Load())

	_, err = execute(t, "scout")
	assert.Error(t, err)
}

func TestScoutCommand_InvalidConcurrency(t *testing.T) {
	useStub(t)
	path := writeFile(t, t.TempDir(), "cv.txt", "Someone")

	_, err := execute(t, "scout", "--concurrency", "64", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config error")
}

func TestArrangeCommand(t *testing.T) {
	useStub(t)
	dir := t.TempDir()
	cards := []types.Candidate{
		{ID: "a", Name: "Ada", Overall: 90, Attributes: attributes(90)},
		{ID: "b", Name: "Brian", Overall: 70, Attributes: attributes(70)},
	}
	data, err := json.Marshal(cards)
	require.NoError(t, err)
	path := writeFile(t, dir, "roster.json", string(data))

	out, err := execute(t, "arrange", "--roster", path, "--formation", "microservices", "--analyze")
	require.NoError(t, err)
	assert.Contains(t, out, "Applied: 2")
	assert.Contains(t, out, "Microservices")
	assert.Contains(t, out, "Ada (90)")
	assert.Contains(t, out, "Team overall: 80")
	assert.Contains(t, out, "SYNERGY")
}

func TestArrangeCommand_InvalidRoster(t *testing.T) {
	useStub(t)
	dir := t.TempDir()

	bad := writeFile(t, dir, "bad.json", `[{"id": "a", "name": "Ada", "overall": 120, "attributes": []}]`)
	_, err := execute(t, "arrange", "--roster", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid roster file")

	dup := []types.Candidate{
		{ID: "a", Name: "Ada", Overall: 90, Attributes: attributes(90)},
		{ID: "a", Name: "Ada again", Overall: 90, Attributes: attributes(90)},
	}
	data, _ := json.Marshal(dup)
	_, err = execute(t, "arrange", "--roster", writeFile(t, dir, "dup.json", string(data)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in roster")

	_, err = execute(t, "arrange")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")

	_, err = execute(t, "arrange", "--roster", bad, "--formation", "4-4-2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown formation")
}

func TestResolveConfig_Layering(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SQUAD_FORMATION", "")
	t.Setenv("GEMINI_API_KEY", "env-key")
	path := writeFile(t, t.TempDir(), "squad.json", `{"port": 7070, "concurrency": 5}`)

	configPath = path
	t.Cleanup(func() { configPath = "" })

	cfg, err := resolveConfig(config.Config{Concurrency: 2})
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port, "file beats env")
	assert.Equal(t, 2, cfg.Concurrency, "flag beats file")
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, formation.DefaultID, cfg.Formation)
}

func TestNewScouter_RequiresAPIKey(t *testing.T) {
	_, _, err := newScouter(context.Background(), config.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

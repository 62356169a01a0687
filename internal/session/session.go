// Package session owns the single lineup engine of a running squad builder and serializes
// every edit, model call and projection against it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/pikard86/ai-squad-builder/internal/formation"
	"github.com/pikard86/ai-squad-builder/internal/ingestion"
	"github.com/pikard86/ai-squad-builder/internal/lineup"
	"github.com/pikard86/ai-squad-builder/internal/metrics"
	"github.com/pikard86/ai-squad-builder/internal/roster"
	"github.com/pikard86/ai-squad-builder/internal/scouting"
	"github.com/pikard86/ai-squad-builder/internal/types"
)

// Action is a class of model-backed work. At most one of each class runs at a time.
type Action string

const (
	ActionScouting  Action = "scouting"
	ActionAnalyzing Action = "analyzing"
	ActionArranging Action = "arranging"
)

var (
	// ErrBusy is returned when an action of the same class is already in flight.
	ErrBusy = errors.New("action already in progress")
	// ErrStale is returned when the lineup changed while a synergy evaluation was running.
	ErrStale = errors.New("lineup changed during evaluation; result discarded")
)

// Scouter is the model-backed side of the session.
type Scouter interface {
	ScoreResume(ctx context.Context, doc *ingestion.Document) (*types.Candidate, error)
	EvaluateSynergy(ctx context.Context, snap lineup.Snapshot) (types.SynergyEvaluation, error)
	ProposeArrangement(ctx context.Context, candidates []types.Candidate, f formation.Formation) (types.Proposal, error)
}

// Controller serializes access to one lineup.Engine. Model calls run outside the lock against
// a snapshot and their result is applied in a single locked update.
type Controller struct {
	mu      sync.Mutex
	engine  *lineup.Engine
	scout   Scouter
	metrics *metrics.Manager
	pending map[Action]bool
	errs    map[Action]string
}

// New creates a controller. A nil metrics manager gets a private one.
func New(engine *lineup.Engine, scout Scouter, m *metrics.Manager) *Controller {
	if m == nil {
		m = metrics.NewManager()
	}
	c := &Controller{
		engine:  engine,
		scout:   scout,
		metrics: m,
		pending: make(map[Action]bool),
		errs:    make(map[Action]string),
	}
	c.refreshGauges()
	return c
}

// View is a snapshot of the board plus the session's in-flight and failed actions.
type View struct {
	lineup.Snapshot
	Pending map[Action]bool   `json:"pending"`
	Errors  map[Action]string `json:"errors"`
}

// RosterEntry is a candidate with the slot it currently holds, if any.
type RosterEntry struct {
	types.Candidate
	Role string `json:"role,omitempty"`
}

// Snapshot returns the current board.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() View {
	v := View{
		Snapshot: c.engine.Snapshot(),
		Pending:  make(map[Action]bool, len(c.pending)),
		Errors:   make(map[Action]string, len(c.errs)),
	}
	for a, p := range c.pending {
		if p {
			v.Pending[a] = true
		}
	}
	for a, msg := range c.errs {
		v.Errors[a] = msg
	}
	return v
}

// Roster lists every candidate in insertion order with the role they hold.
func (c *Controller) Roster() []RosterEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	candidates := c.engine.Roster().List()
	out := make([]RosterEntry, 0, len(candidates))
	for _, cand := range candidates {
		out = append(out, c.entryLocked(cand))
	}
	return out
}

// Candidate returns one roster entry.
func (c *Controller) Candidate(id string) (RosterEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cand, ok := c.engine.Roster().Get(id)
	if !ok {
		return RosterEntry{}, false
	}
	return c.entryLocked(cand), true
}

func (c *Controller) entryLocked(cand types.Candidate) RosterEntry {
	entry := RosterEntry{Candidate: cand}
	if role, ok := c.engine.RoleOf(cand.ID); ok {
		entry.Role = role.String()
	}
	return entry
}

// AddCandidate puts an already scored candidate on the roster.
func (c *Controller) AddCandidate(cand types.Candidate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.engine.Roster().Add(cand); err != nil {
		return err
	}
	c.refreshGauges()
	return nil
}

// SetImage attaches a display image to a candidate.
func (c *Controller) SetImage(id, imageURL string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Roster().SetImage(id, imageURL)
}

// Assign places a candidate in a slot of the active formation.
func (c *Controller) Assign(role formation.Role, candidateID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.engine.Assign(role, candidateID); err != nil {
		return err
	}
	c.mutated("assign")
	return nil
}

// Remove empties a slot and reports who held it.
func (c *Controller) Remove(role formation.Role) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, ok := c.engine.Remove(role)
	c.mutated("remove")
	return id, ok
}

// ToggleLead designates or clears the team lead.
func (c *Controller) ToggleLead(candidateID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	isLead, err := c.engine.ToggleLead(candidateID)
	if err != nil {
		return false, err
	}
	c.metrics.RecordMutation("toggle_lead")
	return isLead, nil
}

// ChangeFormation switches the active formation by catalog id.
func (c *Controller) ChangeFormation(id string) error {
	f, err := formation.Lookup(id)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	before := c.engine.Lineup().Len()
	c.engine.ChangeFormation(f)
	if dropped := before - c.engine.Lineup().Len(); dropped > 0 {
		log.Printf("[session] formation %s dropped %d orphaned assignments", f.ID, dropped)
	}
	c.mutated("change_formation")
	return nil
}

// Scout scores a resume and adds the card to the roster.
func (c *Controller) Scout(ctx context.Context, doc *ingestion.Document) (types.Candidate, error) {
	start := time.Now()
	if err := c.begin(ActionScouting); err != nil {
		return types.Candidate{}, err
	}

	cand, err := c.scout.ScoreResume(ctx, doc)
	if err != nil {
		c.finish(ActionScouting, start, err)
		return types.Candidate{}, err
	}

	c.mu.Lock()
	err = c.engine.Roster().Add(*cand)
	c.refreshGauges()
	c.mu.Unlock()

	c.finish(ActionScouting, start, err)
	if err != nil {
		return types.Candidate{}, err
	}
	return *cand, nil
}

// Rescout scores a new resume for an existing candidate and overwrites the card in place,
// keeping its id and image.
func (c *Controller) Rescout(ctx context.Context, id string, doc *ingestion.Document) (types.Candidate, error) {
	if _, ok := c.Candidate(id); !ok {
		return types.Candidate{}, fmt.Errorf("%w: %s", roster.ErrNotFound, id)
	}

	start := time.Now()
	if err := c.begin(ActionScouting); err != nil {
		return types.Candidate{}, err
	}

	cand, err := c.scout.ScoreResume(ctx, doc)
	if err != nil {
		c.finish(ActionScouting, start, err)
		return types.Candidate{}, err
	}

	c.mu.Lock()
	if prev, ok := c.engine.Roster().Get(id); ok {
		cand.ImageURL = prev.ImageURL
	}
	cand.ID = id
	err = c.engine.Roster().Update(*cand)
	c.mu.Unlock()

	c.finish(ActionScouting, start, err)
	if err != nil {
		return types.Candidate{}, err
	}
	return *cand, nil
}

// Analyze evaluates the placed squad and caches the result on the engine. An empty lineup
// fails with scouting.ErrEmptyLineup before any model call. A result computed for a lineup
// that has since changed is discarded with ErrStale.
func (c *Controller) Analyze(ctx context.Context) (types.SynergyEvaluation, error) {
	c.mu.Lock()
	snap := c.engine.Snapshot()
	c.mu.Unlock()
	if len(snap.Occupied()) == 0 {
		return types.SynergyEvaluation{}, scouting.ErrEmptyLineup
	}

	start := time.Now()
	if err := c.begin(ActionAnalyzing); err != nil {
		return types.SynergyEvaluation{}, err
	}

	eval, err := c.scout.EvaluateSynergy(ctx, snap)
	if err != nil {
		c.finish(ActionAnalyzing, start, err)
		return types.SynergyEvaluation{}, err
	}

	c.mu.Lock()
	applied := c.engine.ApplySynergy(eval)
	c.mu.Unlock()

	if !applied {
		log.Printf("[session] discarded synergy for revision %d", eval.Revision)
		c.finishStale(ActionAnalyzing, start)
		return types.SynergyEvaluation{}, ErrStale
	}
	c.finish(ActionAnalyzing, start, nil)
	return eval, nil
}

// Arrange asks the model for a full arrangement and reconciles it into the lineup.
// Reconciliation runs against whatever formation is active when the proposal arrives.
func (c *Controller) Arrange(ctx context.Context) (lineup.ReconcileReport, error) {
	c.mu.Lock()
	candidates := c.engine.Roster().List()
	f := c.engine.Formation()
	c.mu.Unlock()
	if len(candidates) == 0 {
		return lineup.ReconcileReport{}, scouting.ErrEmptyRoster
	}

	start := time.Now()
	if err := c.begin(ActionArranging); err != nil {
		return lineup.ReconcileReport{}, err
	}

	proposal, err := c.scout.ProposeArrangement(ctx, candidates, f)
	if err != nil {
		c.finish(ActionArranging, start, err)
		return lineup.ReconcileReport{}, err
	}

	c.mu.Lock()
	report := c.engine.Reconcile(proposal)
	for _, d := range report.Dropped {
		c.metrics.RecordDropped(d.Reason)
	}
	c.mutated("reconcile")
	c.mu.Unlock()

	if len(report.Dropped) > 0 {
		log.Printf("[session] arrangement: applied %d, dropped %d", len(report.Applied), len(report.Dropped))
	}
	c.finish(ActionArranging, start, nil)
	return report, nil
}

// begin marks action as in flight and clears its previous error.
func (c *Controller) begin(action Action) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending[action] {
		c.metrics.RecordBusy(string(action))
		return fmt.Errorf("%s: %w", action, ErrBusy)
	}
	c.pending[action] = true
	delete(c.errs, action)
	return nil
}

// finish clears the pending flag and records err as the action's transient error.
func (c *Controller) finish(action Action, start time.Time, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending[action] = false
	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = metrics.OutcomeError
		c.errs[action] = err.Error()
		log.Printf("[session] %s failed: %v", action, err)
	}
	c.metrics.ObserveModelCall(string(action), outcome, time.Since(start))
}

func (c *Controller) finishStale(action Action, start time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending[action] = false
	c.metrics.ObserveModelCall(string(action), metrics.OutcomeStale, time.Since(start))
}

// mutated must be called with mu held.
func (c *Controller) mutated(op string) {
	c.metrics.RecordMutation(op)
	c.refreshGauges()
}

func (c *Controller) refreshGauges() {
	c.metrics.SetRosterSize(c.engine.Roster().Len())
	c.metrics.SetOccupied(c.engine.Lineup().Len())
}

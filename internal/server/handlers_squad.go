package server

import (
	"net/http"

	"github.com/pikard86/ai-squad-builder/internal/formation"
	"github.com/pikard86/ai-squad-builder/internal/types"
)

// FormationRequest represents the request body for PUT /squad/formation
type FormationRequest struct {
	FormationID string `json:"formation_id" validate:"required"`
}

// CandidateRequest names a roster candidate
type CandidateRequest struct {
	CandidateID string `json:"candidate_id" validate:"required"`
}

// RemoveResponse represents the response for DELETE /squad/slots/{role}
type RemoveResponse struct {
	Role        string `json:"role"`
	CandidateID string `json:"candidate_id,omitempty"`
	Removed     bool   `json:"removed"`
}

// LeadResponse represents the response for POST /squad/lead
type LeadResponse struct {
	CandidateID string `json:"candidate_id"`
	Lead        bool   `json:"lead"`
}

// handleListFormations returns the formation catalog
func (s *Server) handleListFormations(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, formation.Catalog())
}

// handleGetSquad returns the board with pending flags and transient errors
func (s *Server) handleGetSquad(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.session.Snapshot())
}

// handleChangeFormation switches the active formation
func (s *Server) handleChangeFormation(w http.ResponseWriter, r *http.Request) {
	var req FormationRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.failure(w, err)
		return
	}
	if err := s.session.ChangeFormation(req.FormationID); err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.session.Snapshot())
}

// handleAssign places a candidate in the slot named by the path
func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	role, err := formation.ParseRole(r.PathValue("role"))
	if err != nil {
		s.failure(w, err)
		return
	}
	var req CandidateRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.failure(w, err)
		return
	}
	if err := s.session.Assign(role, req.CandidateID); err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.session.Snapshot())
}

// handleRemove empties the slot named by the path. Removing from an empty slot is not an error.
func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	role, err := formation.ParseRole(r.PathValue("role"))
	if err != nil {
		s.failure(w, err)
		return
	}
	id, removed := s.session.Remove(role)
	s.jsonResponse(w, http.StatusOK, RemoveResponse{Role: role.String(), CandidateID: id, Removed: removed})
}

// handleToggleLead designates or clears the team lead
func (s *Server) handleToggleLead(w http.ResponseWriter, r *http.Request) {
	var req CandidateRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.failure(w, err)
		return
	}
	isLead, err := s.session.ToggleLead(req.CandidateID)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, LeadResponse{CandidateID: req.CandidateID, Lead: isLead})
}

// handleAnalyze evaluates the placed squad's synergy
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	eval, err := s.session.Analyze(r.Context())
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, struct {
		Synergy types.SynergyEvaluation `json:"synergy"`
	}{eval})
}

// handleArrange asks the model for a lineup and applies it
func (s *Server) handleArrange(w http.ResponseWriter, r *http.Request) {
	report, err := s.session.Arrange(r.Context())
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"report": report,
		"squad":  s.session.Snapshot(),
	})
}

package server

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/pikard86/ai-squad-builder/internal/ingestion"
	"github.com/pikard86/ai-squad-builder/internal/roster"
)

// resumeField is the multipart field carrying the uploaded resume.
const resumeField = "resume"

// ImageRequest represents the request body for PUT /roster/{id}/image.
// ImageURL is either a link or a data URL of the uploaded photo.
type ImageRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
}

// handleListRoster returns every candidate with the role they hold
func (s *Server) handleListRoster(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.session.Roster())
}

// handleGetCandidate returns one candidate
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	entry, ok := s.session.Candidate(id)
	if !ok {
		s.failure(w, fmt.Errorf("%w: %s", roster.ErrNotFound, id))
		return
	}
	s.jsonResponse(w, http.StatusOK, entry)
}

// handleSetImage attaches a display image to a candidate
func (s *Server) handleSetImage(w http.ResponseWriter, r *http.Request) {
	var req ImageRequest
	if err := s.decodeBodyLimit(w, r, &req, maxImageBody); err != nil {
		s.failure(w, err)
		return
	}
	id := r.PathValue("id")
	if err := s.session.SetImage(id, req.ImageURL); err != nil {
		s.failure(w, err)
		return
	}
	entry, _ := s.session.Candidate(id)
	s.jsonResponse(w, http.StatusOK, entry)
}

// handleScout scores an uploaded resume and adds the card to the roster
func (s *Server) handleScout(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readResume(w, r)
	if err != nil {
		s.failure(w, err)
		return
	}
	cand, err := s.session.Scout(r.Context(), doc)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, cand)
}

// handleRescout rescores an existing candidate from a new resume
func (s *Server) handleRescout(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readResume(w, r)
	if err != nil {
		s.failure(w, err)
		return
	}
	cand, err := s.session.Rescout(r.Context(), r.PathValue("id"), doc)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, cand)
}

// handleScoutStream scores an uploaded resume and streams progress via SSE
func (s *Server) handleScoutStream(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readResume(w, r)
	if err != nil {
		s.failure(w, err)
		return
	}

	sse, err := NewSSEWriter(w, s.corsOrigin)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	progress := func(stage, message string) {
		if err := sse.WriteProgress(stage, message); err != nil {
			log.Printf("[server] error writing SSE event: %v", err)
		}
	}
	progress(StageReceived, fmt.Sprintf("received %s (%d bytes)", doc.Name, len(doc.Data)))
	if doc.Inline() {
		progress(StageExtracted, "document attached as "+doc.MIMEType())
	} else {
		progress(StageExtracted, fmt.Sprintf("extracted %d characters of text", len(doc.Text)))
	}
	progress(StageScoring, "scoring resume")

	cand, err := s.session.Scout(r.Context(), doc)
	if err != nil {
		sse.WriteError(err)
		return
	}
	sse.WriteComplete(cand)
}

// readResume reads the multipart resume upload into a document
func (s *Server) readResume(w http.ResponseWriter, r *http.Request) (*ingestion.Document, error) {
	r.Body = http.MaxBytesReader(w, r.Body, ingestion.MaxDocumentSize+(1<<20))
	if err := r.ParseMultipartForm(ingestion.MaxDocumentSize); err != nil {
		return nil, &ErrBadRequest{Message: "expected multipart form", Cause: err}
	}

	file, header, err := r.FormFile(resumeField)
	if err != nil {
		return nil, &ErrBadRequest{Message: "missing " + resumeField + " file", Cause: err}
	}
	defer file.Close() //nolint:errcheck

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &ErrBadRequest{Message: "failed to read upload", Cause: err}
	}
	return ingestion.FromBytes(header.Filename, data)
}

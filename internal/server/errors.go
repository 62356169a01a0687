package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pikard86/ai-squad-builder/internal/formation"
	"github.com/pikard86/ai-squad-builder/internal/ingestion"
	"github.com/pikard86/ai-squad-builder/internal/lineup"
	"github.com/pikard86/ai-squad-builder/internal/roster"
	"github.com/pikard86/ai-squad-builder/internal/scouting"
	"github.com/pikard86/ai-squad-builder/internal/session"
)

// ErrBadRequest indicates a malformed request body or form
type ErrBadRequest struct {
	Message string
	Cause   error
}

func (e *ErrBadRequest) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("bad request: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("bad request: %s", e.Message)
}

func (e *ErrBadRequest) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		badRequest    *ErrBadRequest
		fieldErrs     validator.ValidationErrors
		apiErr        *scouting.APICallError
		parseErr      *scouting.ParseError
		replyErr      *scouting.ValidationError
		maxBytesError *http.MaxBytesError
	)

	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &maxBytesError), errors.Is(err, ingestion.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &badRequest), errors.As(err, &fieldErrs),
		errors.Is(err, formation.ErrUnknownRole),
		errors.Is(err, lineup.ErrRoleNotInFormation),
		errors.Is(err, lineup.ErrNotPlaced),
		errors.Is(err, ingestion.ErrUnsupportedFormat),
		errors.Is(err, ingestion.ErrEmptyDocument):
		return http.StatusBadRequest
	case errors.Is(err, lineup.ErrUnknownCandidate),
		errors.Is(err, roster.ErrNotFound),
		errors.Is(err, formation.ErrUnknownFormation):
		return http.StatusNotFound
	case errors.Is(err, session.ErrBusy),
		errors.Is(err, session.ErrStale),
		errors.Is(err, roster.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, scouting.ErrEmptyLineup),
		errors.Is(err, scouting.ErrEmptyRoster):
		return http.StatusUnprocessableEntity
	case errors.As(err, &apiErr), errors.As(err, &parseErr), errors.As(err, &replyErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

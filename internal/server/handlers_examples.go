package server

import (
	"net/http"

	"github.com/mkuiper/voiceloop/internal/types"
)

// ---------------------------------------------------------------------
// Example Record Handlers
// ---------------------------------------------------------------------

// AddExampleRequest appends one good or bad content example to a scope.
type AddExampleRequest struct {
	Workspace string `json:"workspace" validate:"required"`
	Project   string `json:"project"`
	Kind      string `json:"kind" validate:"required,oneof=good bad"`
	Content   string `json:"content" validate:"required"`
	Notes     string `json:"notes"`
}

func (s *Server) handleAddExample(w http.ResponseWriter, r *http.Request) {
	var req AddExampleRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	scope := types.Scope{WorkspaceID: req.Workspace, ProjectID: req.Project}
	example := types.ExampleRecord{
		Kind:    types.ExampleKind(req.Kind),
		Content: req.Content,
		Notes:   req.Notes,
	}
	if err := s.store.AddExample(r.Context(), scope, example); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"status": "stored"})
}

func (s *Server) handleListExamples(w http.ResponseWriter, r *http.Request) {
	scope, err := s.scopeFromQuery(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	examples, err := s.store.ListExamples(r.Context(), scope)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, examples)
}

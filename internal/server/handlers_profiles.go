package server

import (
	"net/http"

	"github.com/mkuiper/voiceloop/internal/types"
)

// ---------------------------------------------------------------------
// Profile Handlers
// ---------------------------------------------------------------------

// SynthesizeRequest triggers a full profile synthesis for a scope.
type SynthesizeRequest struct {
	Workspace string `json:"workspace" validate:"required"`
	Project   string `json:"project"`
}

func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req SynthesizeRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	scope := types.Scope{WorkspaceID: req.Workspace, ProjectID: req.Project}
	profile, err := s.synth.Synthesize(r.Context(), scope)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, profile)
}

func (s *Server) handleLatestProfile(w http.ResponseWriter, r *http.Request) {
	scope, err := s.scopeFromQuery(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := s.store.LatestProfile(r.Context(), scope)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "no profile synthesized yet")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

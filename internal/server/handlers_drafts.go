package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mkuiper/voiceloop/internal/compose"
	"github.com/mkuiper/voiceloop/internal/quality"
	"github.com/mkuiper/voiceloop/internal/types"
)

// ---------------------------------------------------------------------
// Draft Handlers
// ---------------------------------------------------------------------

// CreateDraftRequest runs the full generation pipeline for one idea:
// compose against the latest profile, generate, quality-check, store.
type CreateDraftRequest struct {
	Workspace   string `json:"workspace" validate:"required"`
	Project     string `json:"project"`
	Thought     string `json:"thought" validate:"required"`
	ContentType string `json:"content_type" validate:"required,oneof=linkedin blog"`
	LengthMode  string `json:"length_mode" validate:"required,oneof=short medium long"`
}

// EvaluateRequest runs the quality gate over arbitrary text, using the
// scope's latest profile constraints.
type EvaluateRequest struct {
	Workspace   string `json:"workspace" validate:"required"`
	Project     string `json:"project"`
	Text        string `json:"text" validate:"required"`
	ContentType string `json:"content_type" validate:"required,oneof=linkedin blog"`
	LengthMode  string `json:"length_mode" validate:"required,oneof=short medium long"`
}

// DraftResponse pairs a stored draft with its quality result.
type DraftResponse struct {
	Draft   types.GeneratedDraft `json:"draft"`
	Quality types.QualityResult  `json:"quality"`
}

func (s *Server) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	var req CreateDraftRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	scope := types.Scope{WorkspaceID: req.Workspace, ProjectID: req.Project}
	profile, err := s.store.LatestProfile(r.Context(), scope)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "no profile synthesized yet")
		return
	}

	examples, err := s.store.ListExamples(r.Context(), scope)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	contentReq := types.ContentRequest{
		Thought:        req.Thought,
		ContentType:    types.ContentType(req.ContentType),
		LengthMode:     types.LengthMode(req.LengthMode),
		ProfileVersion: profile.Version,
	}
	composed, err := compose.Compose(contentReq, *profile, examples)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	text, err := s.generator.Generate(r.Context(), composed.Instructions, composed.Context)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	spec, err := compose.SpecFor(contentReq.ContentType, contentReq.LengthMode)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	result := quality.Evaluate(text, spec, profile.Constraints)

	draft := types.GeneratedDraft{
		ID:                 uuid.New(),
		Scope:              scope,
		Text:               text,
		ContentType:        contentReq.ContentType,
		LengthMode:         contentReq.LengthMode,
		ProfileVersionUsed: profile.Version,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.store.SaveDraft(r.Context(), draft); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, DraftResponse{Draft: draft, Quality: result})
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid draft ID")
		return
	}

	draft, err := s.store.GetDraft(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if draft == nil {
		s.errorResponse(w, http.StatusNotFound, "Draft not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, draft)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	scope := types.Scope{WorkspaceID: req.Workspace, ProjectID: req.Project}
	profile, err := s.store.LatestProfile(r.Context(), scope)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "no profile synthesized yet")
		return
	}

	spec, err := compose.SpecFor(types.ContentType(req.ContentType), types.LengthMode(req.LengthMode))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result := quality.Evaluate(req.Text, spec, profile.Constraints)
	s.jsonResponse(w, http.StatusOK, result)
}

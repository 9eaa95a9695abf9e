package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mkuiper/voiceloop/internal/feedback"
	"github.com/mkuiper/voiceloop/internal/types"
)

// ---------------------------------------------------------------------
// Feedback Handlers
// ---------------------------------------------------------------------

// AddFeedbackRequest records one human judgment on a draft. When Promote is
// set, clear ratings also become good/bad examples for the draft's scope.
type AddFeedbackRequest struct {
	Rating        int                  `json:"rating" validate:"required,min=1,max=5"`
	Notes         string               `json:"notes"`
	PostedMetrics *types.PostedMetrics `json:"posted_metrics"`
	Promote       bool                 `json:"promote"`
}

// FeedbackResponse carries the stored record plus the resynthesis signal
// derived from the draft's full feedback history.
type FeedbackResponse struct {
	Feedback           types.Feedback `json:"feedback"`
	ResynthesisAdvised bool           `json:"resynthesis_advised"`
}

func (s *Server) handleAddFeedback(w http.ResponseWriter, r *http.Request) {
	draftID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid draft ID")
		return
	}

	var req AddFeedbackRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	draft, err := s.store.GetDraft(r.Context(), draftID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if draft == nil {
		s.errorResponse(w, http.StatusNotFound, "Draft not found")
		return
	}

	saved, err := s.recorder.Record(r.Context(), types.Feedback{
		DraftID:       draftID,
		Rating:        req.Rating,
		Notes:         req.Notes,
		PostedMetrics: req.PostedMetrics,
	})
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Promote {
		if example, ok := feedback.AsExample(*draft, saved); ok {
			if err := s.store.AddExample(r.Context(), draft.Scope, example); err != nil {
				s.errorResponse(w, HTTPStatus(err), err.Error())
				return
			}
		}
	}

	history, err := s.recorder.List(r.Context(), draftID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, FeedbackResponse{
		Feedback:           saved,
		ResynthesisAdvised: feedback.AdviseResynthesis(history),
	})
}

func (s *Server) handleListFeedback(w http.ResponseWriter, r *http.Request) {
	draftID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid draft ID")
		return
	}

	history, err := s.recorder.List(r.Context(), draftID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, history)
}

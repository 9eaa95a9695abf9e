package server

import (
	"net/http"

	"github.com/mkuiper/voiceloop/internal/interview"
	"github.com/mkuiper/voiceloop/internal/types"
)

// ---------------------------------------------------------------------
// Foundation Interview Handlers
// ---------------------------------------------------------------------

// UpsertAnswerRequest stores or replaces one foundation answer.
type UpsertAnswerRequest struct {
	Workspace   string `json:"workspace" validate:"required"`
	Project     string `json:"project"`
	QuestionKey string `json:"question_key" validate:"required"`
	AnswerText  string `json:"answer_text" validate:"required"`
}

func (s *Server) handleListQuestions(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, interview.Bank())
}

func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	scope, err := s.scopeFromQuery(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	answers, err := s.store.ListAnswers(r.Context(), scope)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	question, more := s.engine.NextQuestion(answers)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"question": question,
		"complete": !more,
	})
}

func (s *Server) handleUpsertAnswer(w http.ResponseWriter, r *http.Request) {
	var req UpsertAnswerRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, ok := interview.Lookup(req.QuestionKey); !ok {
		err := &interview.UnknownQuestionKeyError{Key: req.QuestionKey}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	answer := types.FoundationAnswer{
		Scope:       types.Scope{WorkspaceID: req.Workspace, ProjectID: req.Project},
		QuestionKey: req.QuestionKey,
		AnswerText:  req.AnswerText,
	}
	if err := s.store.UpsertAnswer(r.Context(), answer); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"status": "stored"})
}

func (s *Server) handleListAnswers(w http.ResponseWriter, r *http.Request) {
	scope, err := s.scopeFromQuery(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	answers, err := s.store.ListAnswers(r.Context(), scope)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, answers)
}

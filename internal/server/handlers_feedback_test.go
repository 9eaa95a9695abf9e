package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkuiper/voiceloop/internal/types"
)

// createDraft runs the pipeline once and returns the stored draft.
func createDraft(t *testing.T, s *Server) types.GeneratedDraft {
	t.Helper()

	rec := doJSON(t, s.Handler(), http.MethodPost, "/drafts", CreateDraftRequest{
		Workspace:   "ws-1",
		Thought:     "an idea",
		ContentType: "linkedin",
		LengthMode:  "short",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp DraftResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Draft
}

func TestAddFeedback_RecordsAndLists(t *testing.T) {
	s, _ := newTestServer(switchingGenerator(strings.Repeat("word ", 420)))
	h := s.Handler()
	synthesizeProfile(t, s)
	draft := createDraft(t, s)

	rec := doJSON(t, h, http.MethodPost, fmt.Sprintf("/drafts/%s/feedback", draft.ID), AddFeedbackRequest{
		Rating: 4,
		Notes:  "good tone",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp FeedbackResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEqual(t, uuid.Nil, resp.Feedback.ID)
	assert.False(t, resp.ResynthesisAdvised)

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/drafts/%s/feedback", draft.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "good tone")
}

func TestAddFeedback_DraftNotFound(t *testing.T) {
	s, _ := newTestServer(staticGenerator(""))

	rec := doJSON(t, s.Handler(), http.MethodPost, "/drafts/"+uuid.NewString()+"/feedback", AddFeedbackRequest{
		Rating: 3,
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddFeedback_InvalidRating(t *testing.T) {
	s, _ := newTestServer(switchingGenerator(strings.Repeat("word ", 420)))
	synthesizeProfile(t, s)
	draft := createDraft(t, s)

	rec := doJSON(t, s.Handler(), http.MethodPost, fmt.Sprintf("/drafts/%s/feedback", draft.ID), AddFeedbackRequest{
		Rating: 9,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation error")
}

func TestAddFeedback_PromoteConvertsToExample(t *testing.T) {
	s, _ := newTestServer(switchingGenerator(strings.Repeat("word ", 420)))
	h := s.Handler()
	synthesizeProfile(t, s)
	draft := createDraft(t, s)

	rec := doJSON(t, h, http.MethodPost, fmt.Sprintf("/drafts/%s/feedback", draft.ID), AddFeedbackRequest{
		Rating:  1,
		Notes:   "too flat",
		Promote: true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/examples?workspace=ws-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var examples []types.ExampleRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &examples))
	require.Len(t, examples, 1)
	assert.Equal(t, types.ExampleBad, examples[0].Kind)
	assert.Equal(t, draft.Text, examples[0].Content)
}

func TestAddFeedback_ResynthesisAdvisedAfterRepeatedLows(t *testing.T) {
	s, _ := newTestServer(switchingGenerator(strings.Repeat("word ", 420)))
	h := s.Handler()
	synthesizeProfile(t, s)
	draft := createDraft(t, s)

	var resp FeedbackResponse
	for i := 0; i < 3; i++ {
		rec := doJSON(t, h, http.MethodPost, fmt.Sprintf("/drafts/%s/feedback", draft.ID), AddFeedbackRequest{
			Rating: 2,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}

	assert.True(t, resp.ResynthesisAdvised)
}

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(assert.AnError))
}

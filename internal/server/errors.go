// Package server provides the HTTP REST API for the voiceloop engine.
package server

import (
	"errors"
	"net/http"

	"github.com/mkuiper/voiceloop/internal/interview"
	"github.com/mkuiper/voiceloop/internal/llm"
	"github.com/mkuiper/voiceloop/internal/store"
	"github.com/mkuiper/voiceloop/internal/synthesis"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
// Generation failures and malformed model output surface as bad gateway:
// the request was fine, the upstream model was not.
func HTTPStatus(err error) int {
	var conflict *store.VersionConflictError
	var notFound *store.NotFoundError
	var unknownKey *interview.UnknownQuestionKeyError
	var unavailable *llm.GenerationUnavailableError
	var malformed *synthesis.MalformedProfileError

	switch {
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &unknownKey):
		return http.StatusBadRequest
	case errors.As(err, &unavailable), errors.As(err, &malformed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

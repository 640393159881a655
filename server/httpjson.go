package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"igpublisher/authflow"
	"igpublisher/graph"
	"igpublisher/publisher"
	"igpublisher/session"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps the error taxonomy to HTTP statuses. Handlers call
// this at the boundary only; the pipeline itself never sees a status
// code.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var apiErr *graph.APIError
	var procErr *graph.ProcessingError
	var valErr *publisher.ValidationError

	switch {
	case errors.As(err, &apiErr):
		s.metrics.IncrementGraphErrors()
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"detail": map[string]any{"url": apiErr.URL, "resp": apiErr.Response},
		})
	case errors.As(err, &procErr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"detail": map[string]any{
				"error":        "processing failed",
				"container_id": procErr.ContainerID,
				"status_code":  procErr.StatusCode,
				"status":       procErr.Status,
			},
		})
	case errors.Is(err, graph.ErrProcessingTimeout):
		writeJSON(w, http.StatusRequestTimeout, map[string]any{"detail": err.Error()})
	case errors.Is(err, session.ErrNoSession):
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": err.Error()})
	case errors.As(err, &valErr):
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": valErr.Error()})
	case errors.Is(err, authflow.ErrExchangeFailed),
		errors.Is(err, graph.ErrNoPages),
		errors.Is(err, graph.ErrNoPublishablePage),
		errors.Is(err, graph.ErrNoAccessToken),
		errors.Is(err, graph.ErrNoContainerID),
		errors.Is(err, graph.ErrNoMediaID):
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": err.Error()})
	}
}

// requireEnv fails the request when required settings are absent. Every
// route that depends on configuration calls this first.
func (s *Server) requireEnv(w http.ResponseWriter) bool {
	missing := s.config.Missing()
	if len(missing) == 0 {
		return true
	}
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"detail": "missing environment variables: " + strings.Join(missing, ", "),
	})
	return false
}

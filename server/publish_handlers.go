package server

import (
	"encoding/json"
	"net/http"

	"igpublisher/publisher"
)

// PublishHandler runs the container -> wait -> publish pipeline. With
// "wait": true (the default) the request blocks until the platform
// finishes transcoding or the wait bound is hit; client disconnects
// cancel the wait through the request context.
func (s *Server) PublishHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.requireEnv(w) {
			return
		}

		var req publisher.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid JSON body"})
			return
		}

		result, err := s.publisher.Run(r.Context(), req)
		if err != nil {
			s.writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"ok":           true,
			"media_type":   result.MediaType,
			"container_id": result.ContainerID,
			"media_id":     result.MediaID,
		})
	}
}

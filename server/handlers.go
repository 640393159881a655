package server

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler reports liveness plus whether a user token is held.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, _ := s.sessions.Snapshot()
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":        true,
			"has_token": rec.UserAccessToken != "",
		})
	}
}

const indexHTML = `<h2>%s</h2>
<ul>
  <li><a href="/login">/login</a> (authorize and store tokens)</li>
  <li><a href="/status">/status</a> (inspect tokens/ids)</li>
</ul>
<p>After logging in, POST JSON to /publish.</p>
`

// IndexHandler renders the landing page.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.requireEnv(w) {
			return
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		fmt.Fprintf(w, indexHTML, s.config.GetAppName())
	}
}

// StatusHandler summarizes the session without ever echoing token
// values: presence booleans plus the non-secret ids and config.
func (s *Server) StatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, _ := s.sessions.Snapshot()

		payload := map[string]any{
			"has_user_token":    rec.UserAccessToken != "",
			"has_page_token":    rec.PageAccessToken != "",
			"page_id":           rec.PageID,
			"ig_user_id":        rec.IGUserID,
			"token_obtained_at": nil,
			"scopes":            s.config.GetScopes(),
			"redirect_uri":      s.config.EffectiveRedirectURI(),
			"public_base_url":   s.config.GetPublicBaseURL(),
		}
		if !rec.ObtainedAt.IsZero() {
			payload["token_obtained_at"] = rec.ObtainedAt.Unix()
		}
		writeJSON(w, http.StatusOK, payload)
	}
}

func (s *Server) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}

package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"igpublisher/graph"
	"igpublisher/session"
)

// LoginHandler redirects the browser to the platform's consent dialog.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.requireEnv(w) {
			return
		}
		s.metrics.IncrementLogins()
		http.Redirect(w, r, s.flow.AuthCodeURL(), http.StatusTemporaryRedirect)
	}
}

const callbackHTML = `<h3>Authorized.</h3>
<p>Page ID: %s</p>
<p>IG User ID: %s</p>
<p><a href="/status">View status</a></p>
`

// OAuthCallbackHandler completes the flow: verifies the anti-forgery
// state, exchanges the code for a user token, resolves the publishable
// page, and replaces the whole session record in one step. Nothing is
// written before every check has passed.
func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.requireEnv(w) {
			return
		}

		errorParam := r.FormValue("error")
		errorDesc := r.FormValue("error_description")
		code := r.FormValue("code")
		state := r.FormValue("state")

		if errorParam != "" {
			// The platform reporting consent denial or misconfiguration,
			// surfaced verbatim.
			s.metrics.IncrementCallbackFailures()
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":       errorParam,
				"description": errorDesc,
			})
			return
		}

		if code == "" {
			s.metrics.IncrementCallbackFailures()
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "callback without 'code'"})
			return
		}

		if state != s.flow.State() {
			s.metrics.IncrementCallbackFailures()
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid state (possible CSRF)"})
			return
		}

		userToken, err := s.flow.Exchange(r.Context(), code)
		if err != nil {
			s.metrics.IncrementCallbackFailures()
			s.writeError(w, err)
			return
		}

		pages, err := s.graph.Accounts(r.Context(), userToken)
		if err != nil {
			s.metrics.IncrementCallbackFailures()
			s.writeError(w, err)
			return
		}

		page, err := graph.FirstPublishablePage(pages)
		if err != nil {
			s.metrics.IncrementCallbackFailures()
			s.writeError(w, err)
			return
		}

		rec := session.Record{
			UserAccessToken: userToken,
			PageAccessToken: page.AccessToken,
			PageID:          page.ID,
			IGUserID:        page.InstagramBusinessAccount.ID,
			ObtainedAt:      time.Now(),
		}
		s.sessions.Replace(rec)

		log.Info().
			Str("page_id", rec.PageID).
			Str("ig_user_id", rec.IGUserID).
			Msg("authorization complete")

		w.Header().Set("Content-Type", contentTypeHTML)
		fmt.Fprintf(w, callbackHTML, rec.PageID, rec.IGUserID)
	}
}

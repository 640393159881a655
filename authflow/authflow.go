// Package authflow drives the client side of the platform's OAuth2
// authorization-code flow: building the consent-dialog URL and trading
// the callback code for a user access token.
package authflow

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"igpublisher/graph"
	"igpublisher/internal/config"
)

// ErrExchangeFailed wraps transport or malformed-response failures
// from the token endpoint.
var ErrExchangeFailed = errors.New("code exchange failed")

const stateNonceBytes = 24

// Flow holds the anti-forgery state nonce for the process. The nonce
// is generated once at startup and compared for exact equality on
// every callback; the deployment is single-tenant, so one outstanding
// authorization at a time is the expected shape.
type Flow struct {
	cfg        config.Config
	state      string
	httpClient *http.Client
}

func New(cfg config.Config, httpClient *http.Client) (*Flow, error) {
	state, err := generateState()
	if err != nil {
		return nil, fmt.Errorf("authflow: generate state nonce: %w", err)
	}
	return &Flow{cfg: cfg, state: state, httpClient: httpClient}, nil
}

// State returns the anti-forgery token echoed through the redirect
// round-trip.
func (f *Flow) State() string {
	return f.state
}

// AuthCodeURL builds the authorization-dialog URL the browser is sent
// to, carrying the client id, the URL-encoded redirect URI and scopes,
// the state nonce, and response_type=code.
func (f *Flow) AuthCodeURL() string {
	return f.oauthConfig().AuthCodeURL(f.state)
}

// Exchange trades the callback code for a user access token. Upstream
// rejections keep their URL and body for diagnosis.
func (f *Flow) Exchange(ctx context.Context, code string) (string, error) {
	cfg := f.oauthConfig()
	if f.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, f.httpClient)
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return "", &graph.APIError{
				URL:        cfg.Endpoint.TokenURL,
				StatusCode: retrieveErr.Response.StatusCode,
				Response:   graph.ParseBody(retrieveErr.Body),
			}
		}
		return "", fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	if tok.AccessToken == "" {
		return "", graph.ErrNoAccessToken
	}
	return tok.AccessToken, nil
}

func (f *Flow) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     f.cfg.GetAppID(),
		ClientSecret: f.cfg.GetAppSecret(),
		RedirectURL:  f.cfg.EffectiveRedirectURI(),
		Scopes:       splitScopes(f.cfg.GetScopes()),
		Endpoint: oauth2.Endpoint{
			AuthURL:  f.cfg.GetAuthBaseURL() + "/dialog/oauth",
			TokenURL: f.cfg.GetGraphBaseURL() + "/oauth/access_token",
		},
	}
}

// splitScopes turns the comma-joined META_SCOPES string into the
// scope slice the oauth2 config expects.
func splitScopes(scopes string) []string {
	var out []string
	for _, s := range strings.Split(scopes, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func generateState() (string, error) {
	buf := make([]byte, stateNonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

package config

import "strings"

const (
	appIDVar      = "META_APP_ID"
	appSecretVar  = "META_APP_SECRET"
	redirectVar   = "META_REDIRECT_URI"
	scopesVar     = "META_SCOPES"
	publicBaseVar = "PUBLIC_BASE_URL"
	graphBaseVar  = "GRAPH_BASE_URL"
	authBaseVar   = "AUTH_BASE_URL"
)

// DefaultScopes is the minimum permission set for publishing to an
// Instagram business account through the Graph API.
const DefaultScopes = "pages_show_list,pages_read_engagement,instagram_basic,instagram_content_publish"

const (
	defaultGraphBaseURL = "https://graph.facebook.com/v24.0"
	defaultAuthBaseURL  = "https://www.facebook.com"
)

// CallbackPath is appended to PUBLIC_BASE_URL when META_REDIRECT_URI is
// not set explicitly.
const CallbackPath = "/oauth/callback"

type Meta struct{}

var _ MetaConfig = Meta{}

func (Meta) GetAppID() string {
	return strings.TrimSpace(GetEnv(appIDVar, ""))
}

func (Meta) GetAppSecret() string {
	return strings.TrimSpace(GetEnv(appSecretVar, ""))
}

func (Meta) GetRedirectURIOverride() string {
	return strings.TrimSpace(GetEnv(redirectVar, ""))
}

func (Meta) GetScopes() string {
	return strings.TrimSpace(GetEnv(scopesVar, DefaultScopes))
}

func (Meta) GetPublicBaseURL() string {
	return strings.TrimRight(strings.TrimSpace(GetEnv(publicBaseVar, "")), "/")
}

// GetGraphBaseURL returns the versioned Graph API base. Overridable so
// tests and sandboxed deployments can point at a stand-in server.
func (Meta) GetGraphBaseURL() string {
	return strings.TrimRight(GetEnv(graphBaseVar, defaultGraphBaseURL), "/")
}

// GetAuthBaseURL returns the base of the authorization dialog.
func (Meta) GetAuthBaseURL() string {
	return strings.TrimRight(GetEnv(authBaseVar, defaultAuthBaseURL), "/")
}

// EffectiveRedirectURI prefers the explicit override, then falls back
// to the public base URL plus the callback path.
func (m Meta) EffectiveRedirectURI() string {
	if uri := m.GetRedirectURIOverride(); uri != "" {
		return uri
	}
	if base := m.GetPublicBaseURL(); base != "" {
		return base + CallbackPath
	}
	return ""
}

// Missing returns the names of required settings that are absent. A
// non-empty result means no OAuth or publish work can proceed.
func (m Meta) Missing() []string {
	var missing []string
	if m.GetAppID() == "" {
		missing = append(missing, appIDVar)
	}
	if m.GetAppSecret() == "" {
		missing = append(missing, appSecretVar)
	}
	if m.EffectiveRedirectURI() == "" {
		missing = append(missing, redirectVar+" or "+publicBaseVar)
	}
	if m.GetPublicBaseURL() == "" {
		missing = append(missing, publicBaseVar)
	}
	return missing
}

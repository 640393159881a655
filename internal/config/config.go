package config

type Config interface {
	EnvConfig
	MetaConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

// MetaConfig covers everything the OAuth flow and the Graph API client
// need to know about the deployment.
type MetaConfig interface {
	GetAppID() string
	GetAppSecret() string
	GetRedirectURIOverride() string
	GetScopes() string
	GetPublicBaseURL() string
	GetGraphBaseURL() string
	GetAuthBaseURL() string
	EffectiveRedirectURI() string
	Missing() []string
}

type mainConfig struct {
	EnvVars
	Meta
}

func New() Config {
	return mainConfig{}
}

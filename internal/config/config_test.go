package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"igpublisher/internal/config"
)

func clearMetaEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{"META_APP_ID", "META_APP_SECRET", "META_REDIRECT_URI", "META_SCOPES", "PUBLIC_BASE_URL", "GRAPH_BASE_URL", "AUTH_BASE_URL"} {
		t.Setenv(v, "")
	}
}

func TestEffectiveRedirectURI(t *testing.T) {
	c := config.New()

	t.Run("explicit override wins", func(t *testing.T) {
		clearMetaEnv(t)
		t.Setenv("META_REDIRECT_URI", "https://custom.example.com/cb")
		t.Setenv("PUBLIC_BASE_URL", "https://app.example.com")
		require.Equal(t, "https://custom.example.com/cb", c.EffectiveRedirectURI())
	})

	t.Run("derived from public base", func(t *testing.T) {
		clearMetaEnv(t)
		t.Setenv("PUBLIC_BASE_URL", "https://app.example.com")
		require.Equal(t, "https://app.example.com/oauth/callback", c.EffectiveRedirectURI())
	})

	t.Run("trailing slash trimmed from public base", func(t *testing.T) {
		clearMetaEnv(t)
		t.Setenv("PUBLIC_BASE_URL", "https://app.example.com/")
		require.Equal(t, "https://app.example.com/oauth/callback", c.EffectiveRedirectURI())
	})

	t.Run("empty when nothing set", func(t *testing.T) {
		clearMetaEnv(t)
		require.Equal(t, "", c.EffectiveRedirectURI())
	})
}

func TestMissing(t *testing.T) {
	c := config.New()

	t.Run("all present", func(t *testing.T) {
		clearMetaEnv(t)
		t.Setenv("META_APP_ID", "app")
		t.Setenv("META_APP_SECRET", "secret")
		t.Setenv("PUBLIC_BASE_URL", "https://app.example.com")
		require.Empty(t, c.Missing())
	})

	t.Run("reports the specific missing names", func(t *testing.T) {
		clearMetaEnv(t)
		t.Setenv("META_APP_SECRET", "secret")
		missing := c.Missing()
		require.Contains(t, missing, "META_APP_ID")
		require.Contains(t, missing, "META_REDIRECT_URI or PUBLIC_BASE_URL")
		require.Contains(t, missing, "PUBLIC_BASE_URL")
		require.NotContains(t, missing, "META_APP_SECRET")
	})

	t.Run("redirect override alone still flags the public base", func(t *testing.T) {
		clearMetaEnv(t)
		t.Setenv("META_APP_ID", "app")
		t.Setenv("META_APP_SECRET", "secret")
		t.Setenv("META_REDIRECT_URI", "https://custom.example.com/cb")
		require.Equal(t, []string{"PUBLIC_BASE_URL"}, c.Missing())
	})
}

func TestScopes(t *testing.T) {
	c := config.New()

	t.Run("default covers publishing", func(t *testing.T) {
		clearMetaEnv(t)
		require.Equal(t, config.DefaultScopes, c.GetScopes())
	})

	t.Run("override", func(t *testing.T) {
		clearMetaEnv(t)
		t.Setenv("META_SCOPES", "instagram_basic")
		require.Equal(t, "instagram_basic", c.GetScopes())
	})
}

func TestGetPort(t *testing.T) {
	c := config.New()

	t.Run("default", func(t *testing.T) {
		t.Setenv("PORT", "")
		require.Equal(t, ":8080", c.GetPort())
	})

	t.Run("prefixes colon", func(t *testing.T) {
		t.Setenv("PORT", "9000")
		require.Equal(t, ":9000", c.GetPort())
	})
}

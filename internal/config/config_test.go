package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/uigen-server/internal/config"
	"github.com/stretchr/testify/require"
)

func TestEnvVars_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "")

	c := config.New()
	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, "DEV", c.GetEnv())
	require.False(t, c.IsProduction())
	require.Equal(t, "development-secret-key", c.GetJWTSecret())
	require.Equal(t, "auth-token", c.GetSessionCookieName())
	require.Equal(t, 7*24*time.Hour, c.GetSessionTTL())
	require.True(t, c.UseInMemoryStore())
}

func TestEnvVars_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_URL", "postgres://localhost/uigen")

	c := config.New()
	require.Equal(t, ":9090", c.GetPort())
	require.Equal(t, "s3cret", c.GetJWTSecret())
	require.False(t, c.UseInMemoryStore())

	t.Setenv("PORT", ":7070")
	require.Equal(t, ":7070", c.GetPort())
}

func TestEnvVars_IsProduction(t *testing.T) {
	for _, tc := range []struct {
		env  string
		want bool
	}{
		{"production", true},
		{"PROD", true},
		{"DEV", false},
		{"staging", false},
	} {
		t.Run(tc.env, func(t *testing.T) {
			t.Setenv("ENV", tc.env)
			require.Equal(t, tc.want, config.EnvVars{}.IsProduction())
		})
	}
}

func TestCors_AllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	origins := config.Cors{}.GetAllowedOrigins()
	require.True(t, origins.IsAllowedOrigin("https://a.example"))
	require.True(t, origins.IsAllowedOrigin("https://b.example"))
	require.False(t, origins.IsAllowedOrigin("https://c.example"))
}

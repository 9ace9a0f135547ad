package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("reads yaml values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
  environment: dev
cors:
  allowed_origins:
    - https://investsim.example.com
`), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)

		require.Equal(t, 9000, cfg.Server.Port)
		require.Equal(t, "dev", cfg.Server.Environment)
		require.Equal(t, []string{"https://investsim.example.com"}, cfg.Cors.AllowedOrigins)
	})

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		require.NoError(t, err)

		require.Equal(t, 8080, cfg.Server.Port)
		require.Equal(t, "prod", cfg.Server.Environment)
		require.NoError(t, cfg.Validate())
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o644))
		t.Setenv("INVESTSIM_PORT", "7777")

		cfg, err := Load(path)
		require.NoError(t, err)

		require.Equal(t, 7777, cfg.Server.Port)
	})

	t.Run("bad port override errors", func(t *testing.T) {
		t.Setenv("INVESTSIM_PORT", "not-a-port")

		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("server: [broken"), 0o644))

		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("rejects out-of-range port", func(t *testing.T) {
		cfg := &Config{}
		cfg.Server.Port = 70000
		require.Error(t, cfg.Validate())
	})
}

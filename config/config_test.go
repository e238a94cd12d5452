package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/postboard/posts"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.False(t, cfg.UI.GuardDuplicateSubmits)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "postboard.yaml", `
addr: ":9000"
backend: remote
api:
  url: https://posts.example.com/api
  key: k1
  timeout: 3s
ui:
  poll: 250ms
  guard_duplicate_submits: true
log:
  level: debug
  format: json
seed:
  - id: "1"
    title: Hello
    content: World
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, BackendRemote, cfg.Backend)
	assert.Equal(t, API{URL: "https://posts.example.com/api", Key: "k1", Timeout: 3 * time.Second, Serve: true}, cfg.API)
	assert.Equal(t, UI{Poll: 250 * time.Millisecond, GuardDuplicateSubmits: true}, cfg.UI)
	assert.Equal(t, Log{Level: "debug", Format: "json"}, cfg.Log)
	assert.Equal(t, []posts.Post{{ID: "1", Title: "Hello", Content: "World"}}, cfg.Seed)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "postboard.toml", `
addr = ":7000"

[api]
timeout = "2s"
serve = false

[ui]
guard_duplicate_submits = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, 2*time.Second, cfg.API.Timeout)
	assert.False(t, cfg.API.Serve)
	assert.True(t, cfg.UI.GuardDuplicateSubmits)
	assert.Equal(t, time.Second, cfg.UI.Poll)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "postboard.yml", "addr: \":9000\"\nui:\n  poll: 2s\n")
	t.Setenv("POSTBOARD_ADDR", ":9100")
	t.Setenv("POSTBOARD_UI_POLL", "500ms")
	t.Setenv("POSTBOARD_UI_GUARD_DUPLICATE_SUBMITS", "true")
	t.Setenv("POSTBOARD_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Addr)
	assert.Equal(t, 500*time.Millisecond, cfg.UI.Poll)
	assert.True(t, cfg.UI.GuardDuplicateSubmits)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestEnvInvalidValue(t *testing.T) {
	t.Setenv("POSTBOARD_API_TIMEOUT", "soon")
	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	t.Setenv("POSTBOARD_API_TIMEOUT", "1s")
	t.Setenv("POSTBOARD_API_SERVE", "perhaps")
	_, err = Load("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "postboard.json", "{}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(writeFile(t, "bad.yaml", "addr: [unterminated"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }},
		{"unknown backend", func(c *Config) { c.Backend = "sql" }},
		{"remote without url", func(c *Config) { c.Backend = BackendRemote }},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }},
		{"zero poll", func(c *Config) { c.UI.Poll = 0 }},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, Default().Validate())
}

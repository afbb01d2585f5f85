package utils

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, defaultAPIBaseURL, cfg.API.BaseURL)
	assert.Equal(t, "mn", cfg.Admin.Username)
	assert.Equal(t, "39", cfg.Admin.Password)
	assert.Equal(t, 12*time.Hour, cfg.Session.Duration)
	assert.Equal(t, "https://img.unbelong.xyz", cfg.Images.Resolver().CDNHost)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[server]
addr = ":9999"
allowed_origins = ["https://a.example"]

[api]
base_url = "http://file.example"

[admin]
username = "root"
password = "secret"

[session]
ttl = "30m"
db_path = "/tmp/unbelong-test.db"

[log]
level = "debug"
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Setenv("UNBELONG_API_URL", "http://env.example")
	t.Setenv("UNBELONG_ALLOWED_ORIGINS", "https://b.example, https://c.example")
	t.Setenv("UNBELONG_COOKIE_SECURE", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "http://env.example", cfg.API.BaseURL)
	assert.Equal(t, []string{"https://b.example", "https://c.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "root", cfg.Admin.Username)
	assert.Equal(t, "secret", cfg.Admin.Password)
	assert.Equal(t, 30*time.Minute, cfg.Session.Duration)
	assert.Equal(t, "/tmp/unbelong-test.db", cfg.Session.DBPath)
	assert.True(t, cfg.Session.CookieSecure)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
}

func TestLoadConfig_RejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"bad toml":  "[server\naddr=",
		"bad ttl":   "[session]\nttl = \"forever\"\n",
		"zero ttl":  "[session]\nttl = \"0s\"\n",
		"no secret": "[session]\nsecret = \"\"\n",
		"no user":   "[admin]\nusername = \" \"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".toml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestNewLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, LogConfig{Level: "warn", Format: "json"}).Info("hidden")
	assert.Empty(t, buf.String())

	NewLogger(&buf, LogConfig{Level: "info", Format: "json"}).Info("shown", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	req.NoError(os.WriteFile(path, []byte("APP_NAME: test-client\n"), 0o600))

	cfg, err := LoadConfig(path)
	req.NoError(err)
	req.Equal("test-client", cfg.AppName)
	req.Equal("http://localhost:5000", cfg.API.BaseURL)
	req.False(cfg.API.DirectoryAuth)
	req.Equal(10*time.Second, cfg.Session.CallTimeout)
	req.Equal(2, cfg.Session.MinQueryLength)
	req.Equal("Sorry, the chatbot could not reply.", cfg.Session.ResponderFallback)
	req.Equal(BackendAPI, cfg.Backend.Mode)
	req.Equal(ResponderAPI, cfg.Responder.Mode)
	req.Equal(CredentialStoreFile, cfg.Credentials.Store)
	req.False(cfg.Kafka.Enabled)
	req.Equal("8082", cfg.Bridge.Port)
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
API:
  BASE_URL: https://chat.example.com
  DIRECTORY_AUTH: true
SESSION:
  MIN_QUERY_LENGTH: 3
BACKEND:
  MODE: direct
`
	req.NoError(os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	req.NoError(err)
	req.Equal("https://chat.example.com", cfg.API.BaseURL)
	req.True(cfg.API.DirectoryAuth)
	req.Equal(3, cfg.Session.MinQueryLength)
	req.Equal(BackendDirect, cfg.Backend.Mode)
}

func TestParseLevel(t *testing.T) {
	req := require.New(t)
	req.Equal(slog.LevelDebug, ParseLevel("DEBUG"))
	req.Equal(slog.LevelWarn, ParseLevel("warning"))
	req.Equal(slog.LevelError, ParseLevel("error"))
	req.Equal(slog.LevelInfo, ParseLevel("verbose"))
}

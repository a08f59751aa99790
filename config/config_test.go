package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsAndEnvOverrides(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "key-from-env")
	t.Setenv("SESSION_SECRET", "secret-from-env")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.TMDB.APIKey != "key-from-env" {
		t.Fatalf("expected env api key, got %q", cfg.TMDB.APIKey)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("expected env port, got %d", cfg.Server.Port)
	}
	// Untouched fields keep their defaults.
	if cfg.TMDB.BaseURL != "https://api.themoviedb.org/3" {
		t.Fatalf("expected default base url, got %q", cfg.TMDB.BaseURL)
	}
	if cfg.TMDB.Language != "en-US" {
		t.Fatalf("expected default language, got %q", cfg.TMDB.Language)
	}
}

func TestLoadRequiresAPIKeyAndSecret(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error without api key")
	}

	t.Setenv("TMDB_API_KEY", "key")
	if _, err := Load(); err == nil {
		t.Fatal("expected validation error without session secret")
	}
}

func TestConfigFileLayering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := []byte("server:\n  port: 7001\ntmdb:\n  api_key: key-from-file\nsession:\n  secret: secret-from-file\n")
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	// Env still wins over the file.
	t.Setenv("PORT", "7002")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TMDB.APIKey != "key-from-file" {
		t.Fatalf("expected api key from file, got %q", cfg.TMDB.APIKey)
	}
	if cfg.Server.Port != 7002 {
		t.Fatalf("expected env port to win over file, got %d", cfg.Server.Port)
	}
}

func TestIsProduction(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Environment = "development"
	if cfg.IsProduction() {
		t.Fatal("development is not production")
	}
	cfg.Server.Environment = "production"
	if !cfg.IsProduction() {
		t.Fatal("expected production")
	}
}

func TestAddr(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 8080
	if got := cfg.Addr(); got != "127.0.0.1:8080" {
		t.Fatalf("unexpected addr %q", got)
	}
}

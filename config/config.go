package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in order. The
// first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelgrid/config.yaml",
}

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "CONFIG_PATH"

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	TMDB    TMDBConfig    `koanf:"tmdb"`
	Account AccountConfig `koanf:"account"`
	Streams StreamsConfig `koanf:"streams"`
	Session SessionConfig `koanf:"session"`
	Log     LogConfig     `koanf:"log"`
}

type ServerConfig struct {
	Host        string `koanf:"host"`
	Port        int    `koanf:"port"`
	Environment string `koanf:"environment"`
}

type TMDBConfig struct {
	BaseURL  string `koanf:"base_url"`
	APIKey   string `koanf:"api_key"`
	Language string `koanf:"language"`
}

type AccountConfig struct {
	BaseURL string `koanf:"base_url"`
}

type StreamsConfig struct {
	BaseURL string `koanf:"base_url"`
}

type SessionConfig struct {
	Secret string `koanf:"secret"`
}

type LogConfig struct {
	File string `koanf:"file"`
}

// defaultConfig holds the values used when neither the config file nor the
// environment says otherwise.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			Environment: "development",
		},
		TMDB: TMDBConfig{
			BaseURL:  "https://api.themoviedb.org/3",
			Language: "en-US",
		},
		Account: AccountConfig{
			BaseURL: "http://localhost:9000",
		},
		Streams: StreamsConfig{
			BaseURL: "http://localhost:9100",
		},
		Session: SessionConfig{
			Secret: "",
		},
	}
}

// envMappings translates environment variables to config paths. Only listed
// variables are read; the process environment is otherwise ignored.
var envMappings = map[string]string{
	"HOST":                "server.host",
	"PORT":                "server.port",
	"ENVIRONMENT":         "server.environment",
	"TMDB_BASE_URL":       "tmdb.base_url",
	"TMDB_API_KEY":        "tmdb.api_key",
	"TMDB_LANGUAGE":       "tmdb.language",
	"ACCOUNT_SERVICE_URL": "account.base_url",
	"STREAM_SOURCE_URL":   "streams.base_url",
	"SESSION_SECRET":      "session.secret",
	"LOG_FILE":            "log.file",
}

// Load builds the configuration in three layers: struct defaults, then an
// optional YAML file, then environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", mapEnvVar), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.TMDB.APIKey == "" {
		return fmt.Errorf("tmdb.api_key (TMDB_API_KEY) is required")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("session.secret (SESSION_SECRET) is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	return nil
}

// IsProduction reports whether the server runs in production mode; it
// controls the Secure flag on the session cookie.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// mapEnvVar translates one environment variable name to its config path, or
// "" to skip it.
func mapEnvVar(key string) string {
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}

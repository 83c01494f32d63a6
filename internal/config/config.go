package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config for the triage client and the dev mock server.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Log     LogConfig     `yaml:"log"`
	Mock    MockConfig    `yaml:"mockserver"`
}

type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type MockConfig struct {
	Port string `yaml:"port"`
	Seed int64  `yaml:"seed"`
}

func Default() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		Log:  LogConfig{Level: "info"},
		Mock: MockConfig{Port: ":8000", Seed: 1},
	}
}

// Load reads the yaml file at path (optional, "" skips it) over the
// defaults, then applies environment overrides. Env always wins.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.overrideFromEnv()
	return cfg, nil
}

func (c *Config) overrideFromEnv() {
	if v := os.Getenv("EBOX_API_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("EBOX_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Backend.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("EBOX_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("MOCKSERVER_PORT"); v != "" {
		c.Mock.Port = v
	}
}

// Timeout as a duration; zero or negative falls back to the default.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

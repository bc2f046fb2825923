// Package config loads service configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"heliowatch/pkg/platform"
)

type ServerConfig struct {
	Port           int      `yaml:"port"`
	ReadTimeout    Duration `yaml:"readTimeout"`
	WriteTimeout   Duration `yaml:"writeTimeout"`
	CORSOrigins    []string `yaml:"corsOrigins"`
	MaxRequestSize int64    `yaml:"maxRequestSize"`
}

type PredictorConfig struct {
	BaseURL      string   `yaml:"baseUrl"`
	Timeout      Duration `yaml:"timeout"`
	PollInterval Duration `yaml:"pollInterval"`
}

type SessionConfig struct {
	// RedisAddr switches the session store to redis when set; empty means
	// the in-memory store.
	RedisAddr string   `yaml:"redisAddr"`
	TTL       Duration `yaml:"ttl"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Predictor PredictorConfig `yaml:"predictor"`
	Session   SessionConfig   `yaml:"session"`

	// Language is the default advisory locale, "en" or "fr".
	Language string `yaml:"language"`

	// EmissionsFactor overrides the carbon factor in tons CO2 per kWh;
	// zero keeps the built-in default.
	EmissionsFactor float64 `yaml:"emissionsFactor"`
}

// Duration wraps time.Duration for YAML values like "30s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(b []byte) error {
	var raw string
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Or(fallback time.Duration) time.Duration {
	if d == 0 {
		return fallback
	}
	return time.Duration(d)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			CORSOrigins:    []string{"*"},
			MaxRequestSize: 10 * 1024 * 1024,
		},
		Predictor: PredictorConfig{
			BaseURL: "http://127.0.0.1:5000",
		},
		Language: "en",
	}
}

// Load reads the YAML file when path is non-empty, then applies
// environment overrides. A missing file is an error; an empty path is
// not.
func Load(path string) (*Config, error) {
	c := Default()

	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(buf, c); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	}

	c.Server.Port = platform.GetEnvInt("HELIOWATCH_PORT", c.Server.Port)
	c.Predictor.BaseURL = platform.GetEnv("HELIOWATCH_PREDICT_URL", c.Predictor.BaseURL)
	c.Session.RedisAddr = platform.GetEnv("HELIOWATCH_REDIS_ADDR", c.Session.RedisAddr)
	c.Language = platform.GetEnv("HELIOWATCH_LANG", c.Language)

	return c, nil
}

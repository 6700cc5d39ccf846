// Package config resolves the server configuration from defaults, an optional
// YAML file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// DefaultPath is read when AUTOKEY_CONFIG is not set
const DefaultPath = "autokey.yaml"

type Config struct {
	Port             string   `yaml:"port"`
	AllowOrigins     []string `yaml:"allow_origins"`
	MaxUploadBytes   int64    `yaml:"max_upload_bytes"`
	TracePreviewRows int      `yaml:"trace_preview_rows"`
	PreviewChars     int      `yaml:"preview_chars"`
}

func Default() Config {
	return Config{
		Port:             "8080",
		AllowOrigins:     []string{"http://localhost:3000"},
		MaxUploadBytes:   32 << 20, // 32MB
		TracePreviewRows: 100,
		PreviewChars:     500,
	}
}

// Load applies the YAML file at path (missing file is fine) and then the
// environment on top of the defaults. An empty path falls back to
// AUTOKEY_CONFIG and then DefaultPath.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = strings.TrimSpace(os.Getenv("AUTOKEY_CONFIG"))
	}
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port must be set")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.MaxUploadBytes)
	}
	if c.TracePreviewRows < 0 {
		return fmt.Errorf("trace_preview_rows cannot be negative, got %d", c.TracePreviewRows)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if val := strings.TrimSpace(os.Getenv("PORT")); val != "" {
		cfg.Port = val
	}
	if val := strings.TrimSpace(os.Getenv("AUTOKEY_ALLOW_ORIGINS")); val != "" {
		var origins []string
		for _, o := range strings.Split(val, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowOrigins = origins
	}
	if val := strings.TrimSpace(os.Getenv("AUTOKEY_MAX_UPLOAD_MB")); val != "" {
		mb, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("parse AUTOKEY_MAX_UPLOAD_MB: %w", err)
		}
		cfg.MaxUploadBytes = mb << 20
	}
	if val := strings.TrimSpace(os.Getenv("AUTOKEY_TRACE_ROWS")); val != "" {
		rows, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("parse AUTOKEY_TRACE_ROWS: %w", err)
		}
		cfg.TracePreviewRows = rows
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/simon/muxup/internal/otel"
)

// Config is the launcher's own configuration, read from
// ~/.config/muxup/config.yaml. The file is optional; every field has a
// usable default.
type Config struct {
	// ProjectDir holds the project definitions, one YAML file each.
	ProjectDir string `yaml:"project_dir"`
	// Otel enables telemetry export when an endpoint is set.
	Otel otel.Config `yaml:"otel"`
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "muxup"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "muxup"), nil
}

// Load reads the config file. A missing file yields the defaults.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	var cfg Config
	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
	default:
		return nil, err
	}

	if env := os.Getenv("MUXUP_PROJECT_DIR"); env != "" {
		cfg.ProjectDir = env
	}
	if cfg.ProjectDir == "" {
		cfg.ProjectDir = filepath.Join(dir, "projects")
	}
	cfg.ProjectDir = ExpandPath(cfg.ProjectDir)
	if cfg.Otel.Endpoint == "" {
		cfg.Otel.Endpoint = os.Getenv("MUXUP_OTEL_ENDPOINT")
	}
	return &cfg, nil
}

// ExpandPath resolves a leading ~ and environment variables.
func ExpandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return os.ExpandEnv(p)
}

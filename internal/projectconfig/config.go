// Package projectconfig provides the ProjectConfig struct and loader for
// .evaldash.yaml configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/afmlabs/evaldash/internal/auth"
)

// FileName is the configuration file looked up by Load.
const FileName = ".evaldash.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultServerPort  = 3000
	DefaultOpsAddr     = "localhost:9090"
	DefaultEnvironment = "development"
	DefaultLogFormat   = "auto"

	// EnvironmentProduction turns on Secure session cookies.
	EnvironmentProduction = "production"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvAuthEmail    = "AUTH_EMAIL"
	EnvAuthPassword = "AUTH_PASSWORD"
	EnvEnvironment  = "EVALDASH_ENV"
)

// ServerConfig holds dashboard server settings.
type ServerConfig struct {
	Port        int    `yaml:"port,omitempty"`
	OpsAddr     string `yaml:"ops_addr,omitempty"`
	NoBrowser   *bool  `yaml:"no_browser,omitempty"`
	Environment string `yaml:"environment,omitempty"`
}

// AuthConfig holds the single credential pair and gate strictness.
type AuthConfig struct {
	Email    string `yaml:"email,omitempty"`
	Password string `yaml:"password,omitempty"`
	Strict   *bool  `yaml:"strict,omitempty"`
}

// DataConfig controls the generator.
type DataConfig struct {
	// Anchors is a YAML anchor table overlaid on the built-in one. Relative
	// paths resolve against the directory of the config file.
	Anchors string `yaml:"anchors,omitempty"`
	// Seed fixes the random stream so every request sees the same data.
	Seed *uint64 `yaml:"seed,omitempty"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Format string `yaml:"format,omitempty"`
	Debug  *bool  `yaml:"debug,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .evaldash.yaml.
type ProjectConfig struct {
	Server  ServerConfig  `yaml:"server,omitempty"`
	Auth    AuthConfig    `yaml:"auth,omitempty"`
	Data    DataConfig    `yaml:"data,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`

	// Path is the file the config was read from, empty for pure defaults.
	Path string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Server: ServerConfig{
			Port:        DefaultServerPort,
			OpsAddr:     DefaultOpsAddr,
			NoBrowser:   boolPtr(false),
			Environment: DefaultEnvironment,
		},
		Auth: AuthConfig{
			Email:    auth.DefaultEmail,
			Password: auth.DefaultPassword,
			Strict:   boolPtr(false),
		},
		Logging: LoggingConfig{
			Format: DefaultLogFormat,
			Debug:  boolPtr(false),
		},
	}
}

// Load finds .evaldash.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	path, data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	mergeConfig(cfg, &fileCfg)
	cfg.Path = path
	return cfg, nil
}

// findConfigFile walks up from dir looking for .evaldash.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) (string, []byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for range 10 {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.OpsAddr != "" {
		dst.Server.OpsAddr = src.Server.OpsAddr
	}
	if src.Server.NoBrowser != nil {
		dst.Server.NoBrowser = src.Server.NoBrowser
	}
	if src.Server.Environment != "" {
		dst.Server.Environment = src.Server.Environment
	}

	// Auth
	if src.Auth.Email != "" {
		dst.Auth.Email = src.Auth.Email
	}
	if src.Auth.Password != "" {
		dst.Auth.Password = src.Auth.Password
	}
	if src.Auth.Strict != nil {
		dst.Auth.Strict = src.Auth.Strict
	}

	// Data
	if src.Data.Anchors != "" {
		dst.Data.Anchors = src.Data.Anchors
	}
	if src.Data.Seed != nil {
		dst.Data.Seed = src.Data.Seed
	}

	// Logging
	if src.Logging.Format != "" {
		dst.Logging.Format = src.Logging.Format
	}
	if src.Logging.Debug != nil {
		dst.Logging.Debug = src.Logging.Debug
	}
}

// ApplyEnv overlays AUTH_EMAIL, AUTH_PASSWORD and EVALDASH_ENV. Unset or
// empty variables leave the current value alone.
func (c *ProjectConfig) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(EnvAuthEmail); v != "" {
		c.Auth.Email = v
	}
	if v := getenv(EnvAuthPassword); v != "" {
		c.Auth.Password = v
	}
	if v := getenv(EnvEnvironment); v != "" {
		c.Server.Environment = v
	}
}

// Production reports whether the server runs in production mode.
func (c *ProjectConfig) Production() bool {
	return c.Server.Environment == EnvironmentProduction
}

// Credentials returns the configured login pair.
func (c *ProjectConfig) Credentials() auth.Credentials {
	return auth.Credentials{Email: c.Auth.Email, Password: c.Auth.Password}
}

// AnchorsPath resolves Data.Anchors against the config file directory.
// It returns "" when no anchor file is configured.
func (c *ProjectConfig) AnchorsPath() string {
	p := c.Data.Anchors
	if p == "" || filepath.IsAbs(p) || c.Path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.Path), p)
}

func boolPtr(b bool) *bool {
	return &b
}

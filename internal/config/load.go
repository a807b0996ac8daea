package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Load builds a Config from layered sources: static defaults, then the YAML
// file at path, then environment variables. Flag overrides are applied by
// the caller on top; Validate is a separate, explicit step so that every
// layer is in place before it runs.
//
// A missing file is an error when path was given explicitly. When path is
// empty, DefaultPath is tried and silently skipped if absent.
func Load(path string) (*Config, error) {
	cfg := New()

	explicit := path != ""
	if path == "" {
		path = DefaultPath
	}

	if err := loadFile(cfg, path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// loadFile merges the YAML file at path into cfg.
func loadFile(cfg *Config, path string) error {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if err := mapstructure.Decode(rawConfig, cfg); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}

	return nil
}

// applyEnv overlays environment variables onto cfg. The GitHub token is
// env-only and always read here.
func applyEnv(cfg *Config) {
	setFromEnv(&cfg.SubscriptionID, EnvSubscriptionID)
	setFromEnv(&cfg.TenantID, EnvTenantID)
	setFromEnv(&cfg.Location, EnvLocation)
	setFromEnv(&cfg.ResourceGroup, EnvResourceGroup)
	setFromEnv(&cfg.StorageAccount, EnvStorageAccount)
	setFromEnv(&cfg.Container, EnvContainer)
	setFromEnv(&cfg.IdentityName, EnvIdentityName)
	setFromEnv(&cfg.Role, EnvRole)
	setFromEnv(&cfg.OutputFile, EnvOutputFile)
	setFromEnv(&cfg.GitHub.Repository, EnvGitHubRepo)
	cfg.GitHub.Token = os.Getenv(EnvGitHubToken)
}

func setFromEnv(dst *string, envVar string) {
	if v := os.Getenv(envVar); v != "" {
		*dst = v
	}
}

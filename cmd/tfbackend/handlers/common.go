// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/tfbackend/tfbackend/internal/config"
	"github.com/tfbackend/tfbackend/internal/export"
	"github.com/tfbackend/tfbackend/internal/platform/azure"
	"github.com/tfbackend/tfbackend/internal/platform/github"
	"github.com/tfbackend/tfbackend/internal/provisioning"
	"github.com/tfbackend/tfbackend/internal/util/prerequisites"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newInfraClient creates a new infrastructure client.
	newInfraClient = func(cfg *config.Config) (azure.InfrastructureManager, error) {
		return azure.NewRealClient(cfg.SubscriptionID)
	}

	// newPublisher creates a new GitHub secret publisher.
	newPublisher = func(cfg config.GitHubConfig) (github.SecretPublisher, error) {
		return github.NewClient(cfg)
	}

	// newProvisioningContext creates a new provisioning context.
	newProvisioningContext = provisioning.NewContext

	// checkDefaultPrereqs runs prerequisite checks.
	checkDefaultPrereqs = prerequisites.CheckDefault

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.Load

	// writeCredentialsFile persists the credentials file.
	writeCredentialsFile = func(creds *export.Credentials, path string) error {
		return creds.WriteFile(path)
	}

	// isInteractive reports whether stdin is a terminal.
	isInteractive = func() bool {
		fd := os.Stdin.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
)

// loadConfig loads the layered configuration, fills derived values, and
// validates it. No control-plane client is constructed for a config that
// fails validation.
func loadConfig(configPath string) (*config.Config, error) {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'tfbackend init' to create one", err)
	}

	cfg.ApplyDerived()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

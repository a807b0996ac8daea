package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/tfbackend/tfbackend/internal/config"
	"github.com/tfbackend/tfbackend/internal/export"
	"github.com/tfbackend/tfbackend/internal/platform/github"
	"github.com/tfbackend/tfbackend/internal/provisioning"
	"github.com/tfbackend/tfbackend/internal/provisioning/access"
	"github.com/tfbackend/tfbackend/internal/provisioning/backend"
	"github.com/tfbackend/tfbackend/internal/provisioning/identity"
)

// ApplyOptions carries the apply command's flag values.
type ApplyOptions struct {
	// ConfigPath is the configuration file, empty for the default.
	ConfigPath string

	// OutputFile overrides the credentials file path from the config.
	OutputFile string

	// Publish pushes the credentials to GitHub Actions secrets after a
	// successful run.
	Publish bool

	// ForceRecreate deletes and recreates the identity instead of
	// adopting it and rotating its secret.
	ForceRecreate bool
}

// Apply provisions the Azure Terraform remote-state backend.
//
// This function orchestrates the complete bootstrap workflow:
//  1. Loads and validates the layered configuration
//  2. Runs prerequisite checks (az binary for the CLI credential chain)
//  3. Converges identity, storage backend, and role assignment phases
//  4. Writes the four backend credentials to the output file (mode 0600)
//  5. Optionally publishes the credentials as GitHub Actions secrets
//
// The phases are ordered so the storage work runs between creating the
// service principal and assigning its role, which gives directory
// propagation free wall-clock time before the first assignment attempt.
func Apply(ctx context.Context, opts ApplyOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.OutputFile != "" {
		cfg.OutputFile = opts.OutputFile
	}

	// Publishing failures should surface before any resource is touched.
	if opts.Publish {
		if err := cfg.RequireGitHub(); err != nil {
			return err
		}
	}

	if err := checkDefaultPrereqs().Error(); err != nil {
		return err
	}

	log.Printf("Applying backend configuration for subscription %s", cfg.SubscriptionID)

	infra, err := newInfraClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize Azure client: %w", err)
	}

	pCtx := newProvisioningContext(ctx, cfg, infra)
	pipeline := provisioning.NewPipeline(
		identity.NewProvisioner(opts.ForceRecreate),
		backend.NewProvisioner(),
		access.NewProvisioner(),
	)

	if err := pipeline.Run(pCtx); err != nil {
		return err
	}

	creds, err := pCtx.State.Credentials(cfg.SubscriptionID)
	if err != nil {
		return err
	}

	if err := writeCredentialsFile(creds, cfg.OutputFile); err != nil {
		return err
	}

	published := false
	if opts.Publish {
		if err := publishCredentials(ctx, cfg, creds); err != nil {
			return err
		}
		published = true
	}

	printApplySuccess(cfg, pCtx.State, creds, published)
	return nil
}

// publishCredentials verifies the token and repository, then pushes all
// four values. Any failure is fatal: workflows need the complete set.
func publishCredentials(ctx context.Context, cfg *config.Config, creds *export.Credentials) error {
	pub, err := newPublisher(cfg.GitHub)
	if err != nil {
		return err
	}

	login, err := pub.VerifyAuth(ctx)
	if err != nil {
		return fmt.Errorf("github authentication failed: %w", err)
	}
	if err := pub.CheckRepository(ctx); err != nil {
		return fmt.Errorf("github repository %s: %w", pub.Repository(), err)
	}

	log.Printf("Publishing secrets to %s as %s", pub.Repository(), login)
	return github.PublishCredentials(ctx, pub, creds)
}

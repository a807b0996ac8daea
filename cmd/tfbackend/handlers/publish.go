package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/tfbackend/tfbackend/internal/export"
)

// readCredentialsFile parses a credentials file (for testing injection).
var readCredentialsFile = export.ReadFile

// Publish reads the credentials file written by apply and uploads all
// four values as GitHub Actions repository secrets. Azure is never
// touched: publishing can be repeated without re-provisioning.
func Publish(ctx context.Context, configPath, inputPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.RequireGitHub(); err != nil {
		return err
	}

	if inputPath == "" {
		inputPath = cfg.OutputFile
	}
	creds, err := readCredentialsFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read credentials from %s: %w\nRun 'tfbackend apply' first", inputPath, err)
	}

	if err := publishCredentials(ctx, cfg, creds); err != nil {
		return err
	}

	log.Printf("Published %s, %s, %s, %s to %s",
		export.KeyClientID, export.KeyClientSecret, export.KeySubscriptionID, export.KeyTenantID,
		cfg.GitHub.Repository)
	return nil
}

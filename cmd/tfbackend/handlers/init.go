package handlers

import (
	"context"
	"fmt"

	"github.com/tfbackend/tfbackend/internal/config"
	"github.com/tfbackend/tfbackend/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = wizard.FileExists

	// runWizard runs the interactive wizard.
	runWizard = wizard.RunWizard

	// confirmOverwrite asks before replacing an existing file.
	confirmOverwrite = wizard.ConfirmOverwrite

	// writeConfig writes the config to a file.
	writeConfig = wizard.WriteConfig
)

// Init runs the configuration wizard and writes the result to a file.
// Without a terminal the wizard cannot run; the error points at the
// manual alternatives instead.
func Init(ctx context.Context, outputPath string, force bool) error {
	if !isInteractive() {
		return fmt.Errorf("init needs an interactive terminal; write %s by hand or set %s and friends instead",
			config.DefaultPath, config.EnvSubscriptionID)
	}

	if fileExists(outputPath) && !force {
		confirmed, err := confirmOverwrite(outputPath)
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !confirmed {
			return fmt.Errorf("init canceled: %s left untouched", outputPath)
		}
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := wizard.BuildConfig(result)

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("tfbackend - Terraform remote state on Azure")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("This wizard creates a backend configuration with sensible defaults.")
	fmt.Println("The GitHub token is never stored; set GITHUB_TOKEN when publishing.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Backend Summary")
	fmt.Println("---------------")
	fmt.Printf("  Subscription:   %s\n", cfg.SubscriptionID)
	fmt.Printf("  Location:       %s\n", cfg.Location)
	fmt.Printf("  Resource group: %s\n", cfg.ResourceGroup)
	storageAccount := cfg.StorageAccount
	if storageAccount == "" {
		storageAccount = "(derived from subscription)"
	}
	fmt.Printf("  Storage:        %s / %s\n", storageAccount, cfg.Container)
	fmt.Printf("  Identity:       %s (%s)\n", cfg.IdentityName, cfg.Role)
	if cfg.GitHub.Repository != "" {
		fmt.Printf("  Publishing:     %s\n", cfg.GitHub.Repository)
	}
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Sign in to Azure:")
	fmt.Println("     az login")
	fmt.Println()
	fmt.Printf("  2. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  3. Provision the backend:")
	fmt.Println("     tfbackend apply")
	fmt.Println()
}

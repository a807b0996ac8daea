package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/charmbracelet/huh"

	"github.com/tfbackend/tfbackend/internal/provisioning"
	"github.com/tfbackend/tfbackend/internal/provisioning/destroy"
)

// Provisioner interface for testing - matches provisioning.Phase.
type Provisioner interface {
	Provision(ctx *provisioning.Context) error
}

// Factory function variables for destroy - can be replaced in tests.
var (
	// newDestroyProvisioner creates a new destroy provisioner.
	newDestroyProvisioner = func() Provisioner {
		return destroy.NewProvisioner()
	}

	// confirmDestroy prompts for confirmation before deleting anything.
	confirmDestroy = func(resourceGroup string) (bool, error) {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete resource group %q and the backend identity?", resourceGroup)).
				Description("All Terraform state stored in the backend will be lost.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return false, err
		}
		return confirmed, nil
	}
)

// Destroy deletes the backend resources: role assignments, the
// application and service principal, and the resource group with
// everything in it. Resources already absent are skipped.
//
// The confirmation prompt runs before any client is constructed, so a
// declined or non-interactive run has no side effects.
func Destroy(ctx context.Context, configPath string, force bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if !force {
		if !isInteractive() {
			return fmt.Errorf("refusing to destroy without confirmation: no terminal available, pass --force")
		}
		confirmed, err := confirmDestroy(cfg.ResourceGroup)
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !confirmed {
			return fmt.Errorf("destroy canceled")
		}
	}

	if err := checkDefaultPrereqs().Error(); err != nil {
		return err
	}

	log.Printf("Destroying backend in subscription %s", cfg.SubscriptionID)

	infra, err := newInfraClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize Azure client: %w", err)
	}

	pCtx := newProvisioningContext(ctx, cfg, infra)
	destroyer := newDestroyProvisioner()

	if err := destroyer.Provision(pCtx); err != nil {
		return fmt.Errorf("destroy failed: %w", err)
	}

	log.Printf("Backend destroyed")
	return nil
}

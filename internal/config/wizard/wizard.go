package wizard

import (
	"context"
	"fmt"
)

// Result holds the collected wizard answers.
type Result struct {
	SubscriptionID string
	TenantID       string
	Location       string
	ResourceGroup  string
	StorageAccount string
	Container      string
	IdentityName   string
	Role           string

	PublishSecrets   bool
	GitHubRepository string
}

// RunWizard runs the interactive configuration wizard and returns the
// collected answers. The context cancels the wizard when the user
// interrupts it.
func RunWizard(ctx context.Context) (*Result, error) {
	result := &Result{}

	if err := runSubscriptionGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("subscription configuration: %w", err)
	}

	if err := runBackendGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("backend configuration: %w", err)
	}

	if err := runIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("identity configuration: %w", err)
	}

	if err := runPublishGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("publishing configuration: %w", err)
	}

	return result, nil
}

package config

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// Azure naming rules for the resources this tool creates.
// https://learn.microsoft.com/azure/azure-resource-manager/management/resource-name-rules
var (
	validStorageAccount = regexp.MustCompile(`^[a-z0-9]{3,24}$`)
	validContainer      = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{1,61})[a-z0-9]$`)
	validLocation       = regexp.MustCompile(`^[a-z0-9]+$`)
	validResourceGroup  = regexp.MustCompile(`^[-\w.()]{1,90}$`)
)

// Validate checks the configuration for common errors and returns a detailed
// error if validation fails. It performs no I/O; a config that fails here
// never reaches the control plane.
func (c *Config) Validate() error {
	if c.SubscriptionID == "" {
		return fmt.Errorf("subscription_id is required (set it in the config file or via %s)", EnvSubscriptionID)
	}
	if err := uuid.Validate(c.SubscriptionID); err != nil {
		return fmt.Errorf("subscription_id %q is not a valid UUID", c.SubscriptionID)
	}
	if c.TenantID != "" {
		if err := uuid.Validate(c.TenantID); err != nil {
			return fmt.Errorf("tenant_id %q is not a valid UUID", c.TenantID)
		}
	}

	if err := c.validateResources(); err != nil {
		return err
	}

	if c.GitHub.Repository != "" {
		if _, _, err := c.GitHub.OwnerRepo(); err != nil {
			return err
		}
	}

	return nil
}

// validateResources validates the Azure resource names.
func (c *Config) validateResources() error {
	if c.Location == "" {
		return fmt.Errorf("location is required")
	}
	if !validLocation.MatchString(c.Location) {
		return fmt.Errorf("invalid location %q: expected a region token such as westeurope", c.Location)
	}

	if c.ResourceGroup == "" {
		return fmt.Errorf("resource_group is required")
	}
	if !validResourceGroup.MatchString(c.ResourceGroup) {
		return fmt.Errorf("invalid resource_group %q", c.ResourceGroup)
	}

	if c.StorageAccount == "" {
		return fmt.Errorf("storage_account is required")
	}
	if !validStorageAccount.MatchString(c.StorageAccount) {
		return fmt.Errorf("invalid storage_account %q: must be 3-24 lowercase alphanumeric characters", c.StorageAccount)
	}

	if c.Container == "" {
		return fmt.Errorf("container is required")
	}
	if !validContainer.MatchString(c.Container) {
		return fmt.Errorf("invalid container %q: must be 3-63 lowercase alphanumeric or hyphen characters", c.Container)
	}

	if c.IdentityName == "" {
		return fmt.Errorf("identity_name is required")
	}

	if c.Role == "" {
		return fmt.Errorf("role is required")
	}

	if c.OutputFile == "" {
		return fmt.Errorf("output_file is required")
	}

	return nil
}

// RequireGitHub validates the parts only needed when publishing secrets.
func (c *Config) RequireGitHub() error {
	if c.GitHub.Repository == "" {
		return fmt.Errorf("github repository is required for publishing (set %s or github.repository)", EnvGitHubRepo)
	}
	if _, _, err := c.GitHub.OwnerRepo(); err != nil {
		return err
	}
	if c.GitHub.Token == "" {
		return fmt.Errorf("github token is required for publishing (set %s)", EnvGitHubToken)
	}
	return nil
}

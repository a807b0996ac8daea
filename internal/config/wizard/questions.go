package wizard

import (
	"context"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/tfbackend/tfbackend/internal/config"
)

var (
	validStorageAccountName = regexp.MustCompile(`^[a-z0-9]{3,24}$`)
	validContainerName      = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{1,61})[a-z0-9]$`)
)

func validateSubscriptionID(value string) error {
	if value == "" {
		return errSubscriptionRequired
	}
	if err := uuid.Validate(value); err != nil {
		return errSubscriptionInvalid
	}
	return nil
}

func validateTenantID(value string) error {
	if value == "" {
		return nil
	}
	if err := uuid.Validate(value); err != nil {
		return errTenantInvalid
	}
	return nil
}

func validateResourceGroup(value string) error {
	if value == "" {
		return errResourceGroupRequired
	}
	return nil
}

func validateStorageAccount(value string) error {
	if value == "" {
		return nil
	}
	if !validStorageAccountName.MatchString(value) {
		return errStorageAccountInvalid
	}
	return nil
}

func validateContainer(value string) error {
	if !validContainerName.MatchString(value) {
		return errContainerInvalid
	}
	return nil
}

func validateIdentityName(value string) error {
	if value == "" {
		return errIdentityRequired
	}
	return nil
}

func validateRepository(value string) error {
	owner, name, ok := strings.Cut(value, "/")
	if !ok || owner == "" || name == "" {
		return errRepositoryInvalid
	}
	return nil
}

func runSubscriptionGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Subscription ID").
				Description("Azure subscription that will hold the remote state resources").
				Placeholder("00000000-0000-0000-0000-000000000000").
				Value(&result.SubscriptionID).
				Validate(validateSubscriptionID),
			huh.NewInput().
				Title("Tenant ID (optional)").
				Description("Leave empty to discover the tenant from the subscription").
				Value(&result.TenantID).
				Validate(validateTenantID),
		).Title("Azure Subscription"),
	).RunWithContext(ctx)
}

func runBackendGroup(ctx context.Context, result *Result) error {
	result.Location = config.DefaultLocation
	result.ResourceGroup = config.DefaultResourceGroup
	result.Container = config.DefaultContainer

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Region").
				Description("Azure region for the resource group and storage account").
				Options(LocationsToOptions()...).
				Value(&result.Location),
			huh.NewInput().
				Title("Resource Group").
				Description("Created if it does not exist").
				Value(&result.ResourceGroup).
				Validate(validateResourceGroup),
			huh.NewInput().
				Title("Storage Account (optional)").
				Description("Leave empty to derive a globally unique name").
				Value(&result.StorageAccount).
				Validate(validateStorageAccount),
			huh.NewInput().
				Title("Blob Container").
				Description("Container that stores the Terraform state blobs").
				Value(&result.Container).
				Validate(validateContainer),
		).Title("State Backend"),
	).RunWithContext(ctx)
}

func runIdentityGroup(ctx context.Context, result *Result) error {
	result.IdentityName = config.DefaultIdentityName
	result.Role = config.DefaultRole

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Service Principal Name").
				Description("Display name of the bootstrap identity in Entra ID").
				Value(&result.IdentityName).
				Validate(validateIdentityName),
			huh.NewSelect[string]().
				Title("Role").
				Description("RBAC role assigned to the identity on the subscription").
				Options(Roles...).
				Value(&result.Role),
		).Title("Bootstrap Identity"),
	).RunWithContext(ctx)
}

func runPublishGroup(ctx context.Context, result *Result) error {
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Publish credentials to GitHub Actions?").
				Description("Stores the ARM_* values as repository secrets after apply").
				Value(&result.PublishSecrets),
		).Title("Secret Publishing"),
	).RunWithContext(ctx); err != nil {
		return err
	}

	if !result.PublishSecrets {
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Repository").
				Description("Target repository in owner/name form").
				Placeholder("myorg/infrastructure").
				Value(&result.GitHubRepository).
				Validate(validateRepository),
		).Title("Secret Publishing"),
	).RunWithContext(ctx)
}

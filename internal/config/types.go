package config

import (
	"fmt"
	"strings"

	"github.com/tfbackend/tfbackend/internal/util/naming"
)

// Config holds the application configuration.
type Config struct {
	// SubscriptionID is the Azure subscription everything is provisioned in.
	// Required; there is no safe default for a billing boundary.
	SubscriptionID string `mapstructure:"subscription_id" yaml:"subscription_id"`

	// TenantID is the Entra ID tenant. Optional: discovered from the
	// subscription when empty.
	TenantID string `mapstructure:"tenant_id" yaml:"tenant_id"`

	// Location is the Azure region for the resource group and storage
	// account, e.g. westeurope.
	Location string `mapstructure:"location" yaml:"location"`

	// ResourceGroup is the resource group holding the state storage.
	ResourceGroup string `mapstructure:"resource_group" yaml:"resource_group"`

	// StorageAccount is the storage account name. When empty a
	// deterministic name is derived from subscription and resource group.
	StorageAccount string `mapstructure:"storage_account" yaml:"storage_account"`

	// Container is the blob container that stores the Terraform state.
	Container string `mapstructure:"container" yaml:"container"`

	// IdentityName is the display name of the bootstrap application /
	// service principal.
	IdentityName string `mapstructure:"identity_name" yaml:"identity_name"`

	// Role is the RBAC role granted to the identity at subscription scope.
	Role string `mapstructure:"role" yaml:"role"`

	// OutputFile is where the four credential lines are written.
	OutputFile string `mapstructure:"output_file" yaml:"output_file"`

	// GitHub configures the optional secret publishing target.
	GitHub GitHubConfig `mapstructure:"github" yaml:"github"`
}

// GitHubConfig configures publishing credentials to GitHub Actions secrets.
type GitHubConfig struct {
	// Repository in owner/name form.
	Repository string `mapstructure:"repository" yaml:"repository"`

	// Token is the API token. Environment only (GITHUB_TOKEN); never
	// read from or written to the config file.
	Token string `mapstructure:"-" yaml:"-"`
}

// OwnerRepo splits Repository into its owner and name parts.
func (g GitHubConfig) OwnerRepo() (string, string, error) {
	owner, repo, ok := strings.Cut(g.Repository, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", fmt.Errorf("github repository must be owner/name, got %q", g.Repository)
	}
	return owner, repo, nil
}

// New returns a Config populated with static defaults.
func New() *Config {
	return &Config{
		Location:      DefaultLocation,
		ResourceGroup: DefaultResourceGroup,
		Container:     DefaultContainer,
		IdentityName:  DefaultIdentityName,
		Role:          DefaultRole,
		OutputFile:    DefaultOutputFile,
	}
}

// ApplyDerived fills values that depend on other fields, currently the
// derived storage account name. Call after all layers are applied and
// before Validate.
func (c *Config) ApplyDerived() {
	if c.StorageAccount == "" && c.SubscriptionID != "" {
		c.StorageAccount = naming.StorageAccount(c.SubscriptionID, c.ResourceGroup)
	}
}

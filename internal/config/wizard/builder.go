package wizard

import "github.com/tfbackend/tfbackend/internal/config"

// BuildConfig converts wizard answers into a Config. Derived values such
// as the storage account name are left for ApplyDerived so the generated
// file stays minimal.
func BuildConfig(result *Result) *config.Config {
	cfg := config.New()
	cfg.SubscriptionID = result.SubscriptionID
	cfg.TenantID = result.TenantID
	cfg.Location = result.Location
	cfg.ResourceGroup = result.ResourceGroup
	cfg.StorageAccount = result.StorageAccount
	cfg.Container = result.Container
	cfg.IdentityName = result.IdentityName
	cfg.Role = result.Role
	if result.PublishSecrets {
		cfg.GitHub.Repository = result.GitHubRepository
	}
	return cfg
}

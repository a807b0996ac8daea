package config

// DefaultPath is where Load looks for a config file when no path is given.
const DefaultPath = "tfbackend.yaml"

// Static defaults for the bootstrap resources.
const (
	DefaultLocation      = "westeurope"
	DefaultResourceGroup = "tfstate-rg"
	DefaultContainer     = "tfstate"
	DefaultIdentityName  = "tfstate-sp"
	DefaultRole          = "Contributor"
	DefaultOutputFile    = "tfbackend.env"
)

// Environment variable names for the config layers.
const (
	EnvSubscriptionID = "AZURE_SUBSCRIPTION_ID"
	EnvTenantID       = "AZURE_TENANT_ID"
	EnvLocation       = "TFBACKEND_LOCATION"
	EnvResourceGroup  = "TFBACKEND_RESOURCE_GROUP"
	EnvStorageAccount = "TFBACKEND_STORAGE_ACCOUNT"
	EnvContainer      = "TFBACKEND_CONTAINER"
	EnvIdentityName   = "TFBACKEND_IDENTITY"
	EnvRole           = "TFBACKEND_ROLE"
	EnvOutputFile     = "TFBACKEND_OUTPUT"
	EnvGitHubRepo     = "GITHUB_REPOSITORY"
	EnvGitHubToken    = "GITHUB_TOKEN"
)

package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errSubscriptionRequired  = errors.New("subscription id is required")
	errSubscriptionInvalid   = errors.New("subscription id must be a UUID")
	errTenantInvalid         = errors.New("tenant id must be a UUID or empty")
	errResourceGroupRequired = errors.New("resource group name is required")
	errStorageAccountInvalid = errors.New("storage account name must be 3-24 lowercase alphanumeric characters (or empty to derive one)")
	errContainerInvalid      = errors.New("container name must be 3-63 lowercase alphanumeric or hyphen characters")
	errIdentityRequired      = errors.New("identity name is required")
	errRepositoryInvalid     = errors.New("repository must be owner/name")
)

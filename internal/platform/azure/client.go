package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
)

// Identity describes the Entra ID application and service principal pair
// that acts as the bootstrap identity for Terraform.
type Identity struct {
	// ApplicationID is the directory object id of the application.
	ApplicationID string
	// ClientID is the application (client) id used for sign-in. Terraform
	// consumes it as ARM_CLIENT_ID.
	ClientID string
	// ServicePrincipalID is the directory object id of the service
	// principal. Role assignments bind to it.
	ServicePrincipalID string
	DisplayName        string
}

// ResourceGroupManager defines the interface for managing resource groups.
type ResourceGroupManager interface {
	// EnsureResourceGroup creates the resource group if missing. The bool
	// reports whether this call created it.
	EnsureResourceGroup(ctx context.Context, name, location string, tags map[string]*string) (*armresources.ResourceGroup, bool, error)
	// GetResourceGroup returns the resource group, or nil if it does not exist.
	GetResourceGroup(ctx context.Context, name string) (*armresources.ResourceGroup, error)
	DeleteResourceGroup(ctx context.Context, name string) error
}

// StorageManager defines the interface for managing storage accounts.
type StorageManager interface {
	// EnsureStorageAccount creates the storage account if missing. The bool
	// reports whether this call created it.
	EnsureStorageAccount(ctx context.Context, resourceGroup, name, location string, tags map[string]*string) (*armstorage.Account, bool, error)
	// GetStorageAccount returns the storage account, or nil if it does not exist.
	GetStorageAccount(ctx context.Context, resourceGroup, name string) (*armstorage.Account, error)
	// GetStorageAccountKey returns the primary access key of the account.
	GetStorageAccountKey(ctx context.Context, resourceGroup, name string) (string, error)
	DeleteStorageAccount(ctx context.Context, resourceGroup, name string) error
}

// ContainerManager defines the interface for managing blob containers.
// Containers live on the storage data plane and are addressed with the
// account key rather than ARM credentials.
type ContainerManager interface {
	// EnsureBlobContainer creates the container if missing. The bool
	// reports whether this call created it.
	EnsureBlobContainer(ctx context.Context, accountName, accountKey, containerName string) (bool, error)
	BlobContainerExists(ctx context.Context, accountName, accountKey, containerName string) (bool, error)
}

// IdentityManager defines the interface for managing the bootstrap
// identity in the directory.
type IdentityManager interface {
	// GetIdentity returns the identity with the given display name, or nil
	// if no application with that name exists. The ServicePrincipalID field
	// is empty when the application exists without a service principal.
	GetIdentity(ctx context.Context, displayName string) (*Identity, error)
	// EnsureIdentity creates the application and its service principal if
	// missing. The bool reports whether the application was created by this
	// call.
	EnsureIdentity(ctx context.Context, displayName string) (*Identity, bool, error)
	// ResetCredential issues a fresh client secret for the identity and
	// trims stale credentials that were issued under the same display name.
	// The secret is only readable in this response.
	ResetCredential(ctx context.Context, identity *Identity, displayName string) (string, error)
	// WaitForIdentity polls until the service principal is readable through
	// the directory API. Directory writes propagate asynchronously; a
	// principal that was just created can be invisible to reads for a while.
	WaitForIdentity(ctx context.Context, clientID string) error
	DeleteIdentity(ctx context.Context, displayName string) error
}

// AccessManager defines the interface for managing role assignments.
type AccessManager interface {
	// EnsureRoleAssignment grants the role to the principal at the given
	// scope. The bool reports whether a new assignment was written.
	EnsureRoleAssignment(ctx context.Context, scope, roleName, principalID string) (bool, error)
	// HasRoleAssignment reports whether the principal already holds the
	// role at the scope.
	HasRoleAssignment(ctx context.Context, scope, roleName, principalID string) (bool, error)
	// DeleteRoleAssignments removes every role assignment held by the
	// principal at the scope.
	DeleteRoleAssignments(ctx context.Context, scope, principalID string) error
}

// SubscriptionManager defines the interface for reading subscription
// metadata.
type SubscriptionManager interface {
	// GetSubscription returns the configured subscription. It doubles as
	// the login probe: an unauthenticated session fails here first.
	GetSubscription(ctx context.Context) (*armsubscriptions.Subscription, error)
}

// InfrastructureManager combines all backend infrastructure interfaces.
type InfrastructureManager interface {
	ResourceGroupManager
	StorageManager
	ContainerManager
	IdentityManager
	AccessManager
	SubscriptionManager
}

package fakes

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"

	"github.com/tfbackend/tfbackend/internal/platform/azure"
)

var _ azure.InfrastructureManager = (*FakeInfrastructure)(nil)

// FakeInfrastructure simulates the Azure control plane in memory. It
// implements azure.InfrastructureManager for tests. All state fields are
// exported so tests can seed and inspect them.
type FakeInfrastructure struct {
	mu sync.Mutex

	SubscriptionID string
	TenantID       string

	ResourceGroups  map[string]*armresources.ResourceGroup
	StorageAccounts map[string]*armstorage.Account
	AccountKeys     map[string]string
	Containers      map[string]bool
	Identities      map[string]*azure.Identity
	RoleAssignments map[string]bool

	// SecretCounter counts issued secrets per identity so each
	// ResetCredential returns a distinct value.
	SecretCounter map[string]int

	// Calls records the operations invoked, in order.
	Calls []string

	// Errors maps an operation name to an error that the operation returns
	// instead of doing its work.
	Errors map[string]error

	nextID int
}

// NewFakeInfrastructure creates an empty fake control plane.
func NewFakeInfrastructure(subscriptionID, tenantID string) *FakeInfrastructure {
	return &FakeInfrastructure{
		SubscriptionID:  subscriptionID,
		TenantID:        tenantID,
		ResourceGroups:  make(map[string]*armresources.ResourceGroup),
		StorageAccounts: make(map[string]*armstorage.Account),
		AccountKeys:     make(map[string]string),
		Containers:      make(map[string]bool),
		Identities:      make(map[string]*azure.Identity),
		RoleAssignments: make(map[string]bool),
		SecretCounter:   make(map[string]int),
		Errors:          make(map[string]error),
		nextID:          1,
	}
}

// FailWith makes the named operation return err.
func (f *FakeInfrastructure) FailWith(operation string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[operation] = err
}

func (f *FakeInfrastructure) record(operation string) error {
	f.Calls = append(f.Calls, operation)
	return f.Errors[operation]
}

func (f *FakeInfrastructure) EnsureResourceGroup(_ context.Context, name, location string, tags map[string]*string) (*armresources.ResourceGroup, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("EnsureResourceGroup"); err != nil {
		return nil, false, err
	}

	if group, ok := f.ResourceGroups[name]; ok {
		return group, false, nil
	}
	group := &armresources.ResourceGroup{
		ID:       to.Ptr(fmt.Sprintf("/subscriptions/%s/resourceGroups/%s", f.SubscriptionID, name)),
		Name:     to.Ptr(name),
		Location: to.Ptr(location),
		Tags:     tags,
	}
	f.ResourceGroups[name] = group
	return group, true, nil
}

func (f *FakeInfrastructure) GetResourceGroup(_ context.Context, name string) (*armresources.ResourceGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetResourceGroup"); err != nil {
		return nil, err
	}
	return f.ResourceGroups[name], nil
}

func (f *FakeInfrastructure) DeleteResourceGroup(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteResourceGroup"); err != nil {
		return err
	}

	delete(f.ResourceGroups, name)
	// Deleting a resource group takes its contents with it.
	for key := range f.StorageAccounts {
		if account := f.StorageAccounts[key]; account != nil && account.Name != nil {
			delete(f.AccountKeys, *account.Name)
		}
		delete(f.StorageAccounts, key)
	}
	for key := range f.Containers {
		delete(f.Containers, key)
	}
	return nil
}

func storageKey(resourceGroup, name string) string {
	return resourceGroup + "/" + name
}

func (f *FakeInfrastructure) EnsureStorageAccount(_ context.Context, resourceGroup, name, location string, tags map[string]*string) (*armstorage.Account, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("EnsureStorageAccount"); err != nil {
		return nil, false, err
	}

	key := storageKey(resourceGroup, name)
	if account, ok := f.StorageAccounts[key]; ok {
		return account, false, nil
	}
	account := &armstorage.Account{
		ID: to.Ptr(fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Storage/storageAccounts/%s",
			f.SubscriptionID, resourceGroup, name)),
		Name:     to.Ptr(name),
		Location: to.Ptr(location),
		Tags:     tags,
	}
	f.StorageAccounts[key] = account
	f.AccountKeys[name] = "key-" + name
	return account, true, nil
}

func (f *FakeInfrastructure) GetStorageAccount(_ context.Context, resourceGroup, name string) (*armstorage.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetStorageAccount"); err != nil {
		return nil, err
	}
	return f.StorageAccounts[storageKey(resourceGroup, name)], nil
}

func (f *FakeInfrastructure) GetStorageAccountKey(_ context.Context, resourceGroup, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetStorageAccountKey"); err != nil {
		return "", err
	}

	if _, ok := f.StorageAccounts[storageKey(resourceGroup, name)]; !ok {
		return "", fmt.Errorf("storage account %q not found", name)
	}
	return f.AccountKeys[name], nil
}

func (f *FakeInfrastructure) DeleteStorageAccount(_ context.Context, resourceGroup, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteStorageAccount"); err != nil {
		return err
	}
	delete(f.StorageAccounts, storageKey(resourceGroup, name))
	delete(f.AccountKeys, name)
	return nil
}

func containerKey(accountName, containerName string) string {
	return accountName + "/" + containerName
}

func (f *FakeInfrastructure) EnsureBlobContainer(_ context.Context, accountName, _ string, containerName string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("EnsureBlobContainer"); err != nil {
		return false, err
	}

	key := containerKey(accountName, containerName)
	if f.Containers[key] {
		return false, nil
	}
	f.Containers[key] = true
	return true, nil
}

func (f *FakeInfrastructure) BlobContainerExists(_ context.Context, accountName, _ string, containerName string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("BlobContainerExists"); err != nil {
		return false, err
	}
	return f.Containers[containerKey(accountName, containerName)], nil
}

func (f *FakeInfrastructure) GetIdentity(_ context.Context, displayName string) (*azure.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetIdentity"); err != nil {
		return nil, err
	}
	return f.Identities[displayName], nil
}

func (f *FakeInfrastructure) EnsureIdentity(_ context.Context, displayName string) (*azure.Identity, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("EnsureIdentity"); err != nil {
		return nil, false, err
	}

	if identity, ok := f.Identities[displayName]; ok {
		return identity, false, nil
	}
	id := f.nextID
	f.nextID++
	identity := &azure.Identity{
		ApplicationID:      fmt.Sprintf("app-object-%d", id),
		ClientID:           fmt.Sprintf("client-%d", id),
		ServicePrincipalID: fmt.Sprintf("sp-object-%d", id),
		DisplayName:        displayName,
	}
	f.Identities[displayName] = identity
	return identity, true, nil
}

func (f *FakeInfrastructure) ResetCredential(_ context.Context, identity *azure.Identity, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ResetCredential"); err != nil {
		return "", err
	}

	f.SecretCounter[identity.DisplayName]++
	return fmt.Sprintf("secret-%s-%d", identity.DisplayName, f.SecretCounter[identity.DisplayName]), nil
}

func (f *FakeInfrastructure) WaitForIdentity(_ context.Context, clientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("WaitForIdentity"); err != nil {
		return err
	}

	for _, identity := range f.Identities {
		if identity.ClientID == clientID {
			return nil
		}
	}
	return fmt.Errorf("service principal for app %s never became readable", clientID)
}

func (f *FakeInfrastructure) DeleteIdentity(_ context.Context, displayName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteIdentity"); err != nil {
		return err
	}

	if identity, ok := f.Identities[displayName]; ok {
		for key := range f.RoleAssignments {
			if strings.HasSuffix(key, "|"+identity.ServicePrincipalID) {
				delete(f.RoleAssignments, key)
			}
		}
	}
	delete(f.Identities, displayName)
	delete(f.SecretCounter, displayName)
	return nil
}

func assignmentKey(scope, roleName, principalID string) string {
	return scope + "|" + roleName + "|" + principalID
}

func (f *FakeInfrastructure) EnsureRoleAssignment(_ context.Context, scope, roleName, principalID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("EnsureRoleAssignment"); err != nil {
		return false, err
	}

	key := assignmentKey(scope, roleName, principalID)
	if f.RoleAssignments[key] {
		return false, nil
	}
	f.RoleAssignments[key] = true
	return true, nil
}

func (f *FakeInfrastructure) HasRoleAssignment(_ context.Context, scope, roleName, principalID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("HasRoleAssignment"); err != nil {
		return false, err
	}
	return f.RoleAssignments[assignmentKey(scope, roleName, principalID)], nil
}

func (f *FakeInfrastructure) DeleteRoleAssignments(_ context.Context, scope, principalID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteRoleAssignments"); err != nil {
		return err
	}

	for key := range f.RoleAssignments {
		if strings.HasPrefix(key, scope+"|") && strings.HasSuffix(key, "|"+principalID) {
			delete(f.RoleAssignments, key)
		}
	}
	return nil
}

func (f *FakeInfrastructure) GetSubscription(_ context.Context) (*armsubscriptions.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetSubscription"); err != nil {
		return nil, err
	}

	return &armsubscriptions.Subscription{
		ID:             to.Ptr("/subscriptions/" + f.SubscriptionID),
		SubscriptionID: to.Ptr(f.SubscriptionID),
		TenantID:       to.Ptr(f.TenantID),
		DisplayName:    to.Ptr("Fake Subscription"),
	}, nil
}

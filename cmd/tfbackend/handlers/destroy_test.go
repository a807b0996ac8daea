package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfbackend/tfbackend/internal/config"
	"github.com/tfbackend/tfbackend/internal/platform/azure"
	"github.com/tfbackend/tfbackend/internal/platform/azure/fakes"
	"github.com/tfbackend/tfbackend/internal/provisioning"
)

// seedBackend provisions a full backend into the fake so destroy has
// something to tear down.
func seedBackend(t *testing.T, cfg *config.Config, fake *fakes.FakeInfrastructure) {
	t.Helper()
	ctx := context.Background()
	identity, _, err := fake.EnsureIdentity(ctx, cfg.IdentityName)
	require.NoError(t, err)
	_, _, err = fake.EnsureResourceGroup(ctx, cfg.ResourceGroup, cfg.Location, nil)
	require.NoError(t, err)
	_, _, err = fake.EnsureStorageAccount(ctx, cfg.ResourceGroup, cfg.StorageAccount, cfg.Location, nil)
	require.NoError(t, err)
	_, err = fake.EnsureRoleAssignment(ctx, "/subscriptions/"+cfg.SubscriptionID, cfg.Role, identity.ServicePrincipalID)
	require.NoError(t, err)
}

func TestDestroy_Force(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := testConfig()
	fake := fakes.NewFakeInfrastructure(testSubscriptionID, testTenantID)
	seedBackend(t, cfg, fake)
	useConfig(cfg)
	useInfra(fake)
	passPrereqs()

	err := Destroy(context.Background(), "", true)
	require.NoError(t, err)

	assert.Empty(t, fake.Identities)
	assert.Empty(t, fake.ResourceGroups)
	assert.Empty(t, fake.StorageAccounts)
	assert.Empty(t, fake.RoleAssignments)
}

func TestDestroy_AlreadyAbsent(t *testing.T) {
	saveAndRestoreFactories(t)

	fake := fakes.NewFakeInfrastructure(testSubscriptionID, testTenantID)
	useConfig(testConfig())
	useInfra(fake)
	passPrereqs()

	// Nothing provisioned; destroy should still succeed.
	err := Destroy(context.Background(), "", true)
	require.NoError(t, err)
}

func TestDestroy_NonInteractiveWithoutForce(t *testing.T) {
	saveAndRestoreFactories(t)

	useConfig(testConfig())
	isInteractive = func() bool { return false }
	newInfraClient = func(_ *config.Config) (azure.InfrastructureManager, error) {
		t.Fatal("no client may be constructed before confirmation")
		return nil, nil
	}

	err := Destroy(context.Background(), "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")
}

func TestDestroy_Declined(t *testing.T) {
	saveAndRestoreFactories(t)

	useConfig(testConfig())
	isInteractive = func() bool { return true }
	confirmDestroy = func(_ string) (bool, error) { return false, nil }
	newInfraClient = func(_ *config.Config) (azure.InfrastructureManager, error) {
		t.Fatal("declined destroy must not touch the control plane")
		return nil, nil
	}

	err := Destroy(context.Background(), "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "canceled")
}

func TestDestroy_Confirmed(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := testConfig()
	fake := fakes.NewFakeInfrastructure(testSubscriptionID, testTenantID)
	seedBackend(t, cfg, fake)
	useConfig(cfg)
	useInfra(fake)
	passPrereqs()
	isInteractive = func() bool { return true }
	var askedFor string
	confirmDestroy = func(resourceGroup string) (bool, error) {
		askedFor = resourceGroup
		return true, nil
	}

	err := Destroy(context.Background(), "", false)
	require.NoError(t, err)
	assert.Equal(t, cfg.ResourceGroup, askedFor)
	assert.Empty(t, fake.ResourceGroups)
}

func TestDestroy_ProvisionerError(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := testConfig()
	fake := fakes.NewFakeInfrastructure(testSubscriptionID, testTenantID)
	useConfig(cfg)
	useInfra(fake)
	passPrereqs()
	newDestroyProvisioner = func() Provisioner {
		return provisionerFunc(func(_ *provisioning.Context) error {
			return errors.New("deletion refused")
		})
	}

	err := Destroy(context.Background(), "", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "destroy failed")
	assert.Contains(t, err.Error(), "deletion refused")
}

// provisionerFunc adapts a function to the Provisioner interface.
type provisionerFunc func(ctx *provisioning.Context) error

func (f provisionerFunc) Provision(ctx *provisioning.Context) error { return f(ctx) }

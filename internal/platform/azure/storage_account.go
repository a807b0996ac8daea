package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
)

// EnsureStorageAccount ensures that the storage account exists in the
// given resource group. New accounts are created as StorageV2 with
// locally redundant storage, HTTPS only, and public blob access disabled.
//
// Account names are globally unique across all of Azure. A name conflict
// on an account we cannot read back means the name belongs to someone
// else, which is surfaced as an error rather than recovered.
func (c *RealClient) EnsureStorageAccount(ctx context.Context, resourceGroup, name, location string, tags map[string]*string) (*armstorage.Account, bool, error) {
	return (&EnsureOperation[*armstorage.Account]{
		Name:         name,
		ResourceType: "storage account",
		Get: func(ctx context.Context) (*armstorage.Account, error) {
			resp, err := c.accounts.GetProperties(ctx, resourceGroup, name, nil)
			if err != nil {
				return nil, err
			}
			return &resp.Account, nil
		},
		Create: func(ctx context.Context) (*armstorage.Account, error) {
			ctx, cancel := context.WithTimeout(ctx, c.timeouts.StorageCreate)
			defer cancel()

			poller, err := c.accounts.BeginCreate(ctx, resourceGroup, name, armstorage.AccountCreateParameters{
				Location: to.Ptr(location),
				Kind:     to.Ptr(armstorage.KindStorageV2),
				SKU: &armstorage.SKU{
					Name: to.Ptr(armstorage.SKUNameStandardLRS),
				},
				Tags: tags,
				Properties: &armstorage.AccountPropertiesCreateParameters{
					AllowBlobPublicAccess:  to.Ptr(false),
					EnableHTTPSTrafficOnly: to.Ptr(true),
					MinimumTLSVersion:      to.Ptr(armstorage.MinimumTLSVersionTLS12),
				},
			}, nil)
			if err != nil {
				return nil, err
			}

			resp, err := poller.PollUntilDone(ctx, &runtime.PollUntilDoneOptions{Frequency: c.timeouts.PollFrequency})
			if err != nil {
				return nil, err
			}
			return &resp.Account, nil
		},
	}).Execute(ctx)
}

// GetStorageAccount returns the storage account, or nil if it does not
// exist.
func (c *RealClient) GetStorageAccount(ctx context.Context, resourceGroup, name string) (*armstorage.Account, error) {
	resp, err := c.accounts.GetProperties(ctx, resourceGroup, name, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get storage account %q: %w", name, err)
	}
	return &resp.Account, nil
}

// GetStorageAccountKey returns the primary access key of the storage
// account. The key authorizes data plane operations and becomes
// ARM_ACCESS_KEY for Terraform.
func (c *RealClient) GetStorageAccountKey(ctx context.Context, resourceGroup, name string) (string, error) {
	resp, err := c.accounts.ListKeys(ctx, resourceGroup, name, nil)
	if err != nil {
		return "", fmt.Errorf("failed to list keys for storage account %q: %w", name, err)
	}
	for _, key := range resp.Keys {
		if key.Value != nil && *key.Value != "" {
			return *key.Value, nil
		}
	}
	return "", fmt.Errorf("storage account %q returned no usable keys", name)
}

// DeleteStorageAccount deletes the storage account.
func (c *RealClient) DeleteStorageAccount(ctx context.Context, resourceGroup, name string) error {
	return (&DeleteOperation{
		Name:         name,
		ResourceType: "storage account",
		Delete: func(ctx context.Context) error {
			_, err := c.accounts.Delete(ctx, resourceGroup, name, nil)
			return err
		},
	}).Execute(ctx, c)
}

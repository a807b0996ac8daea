package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// blobClient builds a data plane client for the given account using shared
// key authentication.
func (c *RealClient) blobClient(accountName, accountKey string) (*azblob.Client, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("invalid key for storage account %q: %w", accountName, err)
	}

	serviceURL := fmt.Sprintf(c.blobEndpoint, accountName)
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client for %q: %w", accountName, err)
	}
	return client, nil
}

// EnsureBlobContainer ensures that the container exists in the storage
// account.
func (c *RealClient) EnsureBlobContainer(ctx context.Context, accountName, accountKey, containerName string) (bool, error) {
	client, err := c.blobClient(accountName, accountKey)
	if err != nil {
		return false, err
	}

	if _, err := client.CreateContainer(ctx, containerName, nil); err != nil {
		if IsContainerAlreadyExists(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create container %q: %w", containerName, err)
	}
	return true, nil
}

// BlobContainerExists reports whether the container exists in the storage
// account.
func (c *RealClient) BlobContainerExists(ctx context.Context, accountName, accountKey, containerName string) (bool, error) {
	client, err := c.blobClient(accountName, accountKey)
	if err != nil {
		return false, err
	}

	if _, err := client.ServiceClient().NewContainerClient(containerName).GetProperties(ctx, nil); err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get container %q: %w", containerName, err)
	}
	return true, nil
}

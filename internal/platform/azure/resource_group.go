package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
)

// EnsureResourceGroup ensures that the resource group exists in the given
// location.
func (c *RealClient) EnsureResourceGroup(ctx context.Context, name, location string, tags map[string]*string) (*armresources.ResourceGroup, bool, error) {
	return (&EnsureOperation[*armresources.ResourceGroup]{
		Name:         name,
		ResourceType: "resource group",
		Get: func(ctx context.Context) (*armresources.ResourceGroup, error) {
			resp, err := c.groups.Get(ctx, name, nil)
			if err != nil {
				return nil, err
			}
			return &resp.ResourceGroup, nil
		},
		Create: func(ctx context.Context) (*armresources.ResourceGroup, error) {
			resp, err := c.groups.CreateOrUpdate(ctx, name, armresources.ResourceGroup{
				Location: to.Ptr(location),
				Tags:     tags,
			}, nil)
			if err != nil {
				return nil, err
			}
			return &resp.ResourceGroup, nil
		},
	}).Execute(ctx)
}

// GetResourceGroup returns the resource group with the given name, or nil
// if it does not exist.
func (c *RealClient) GetResourceGroup(ctx context.Context, name string) (*armresources.ResourceGroup, error) {
	resp, err := c.groups.Get(ctx, name, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resource group %q: %w", name, err)
	}
	return &resp.ResourceGroup, nil
}

// DeleteResourceGroup deletes the resource group and everything in it.
// The call blocks until the deletion completes.
func (c *RealClient) DeleteResourceGroup(ctx context.Context, name string) error {
	return (&DeleteOperation{
		Name:         name,
		ResourceType: "resource group",
		Delete: func(ctx context.Context) error {
			poller, err := c.groups.BeginDelete(ctx, name, nil)
			if err != nil {
				return err
			}
			_, err = poller.PollUntilDone(ctx, &runtime.PollUntilDoneOptions{Frequency: c.timeouts.PollFrequency})
			return err
		},
	}).Execute(ctx, c)
}

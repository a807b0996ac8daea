package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
)

// GetSubscription returns the subscription the client operates on. Apart
// from tenant discovery this is the cheapest probe for a working login:
// an expired or missing az session fails here before any resource is
// touched.
func (c *RealClient) GetSubscription(ctx context.Context) (*armsubscriptions.Subscription, error) {
	resp, err := c.subscriptions.Get(ctx, c.subscriptionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription %s: %w", c.subscriptionID, err)
	}
	return &resp.Subscription, nil
}

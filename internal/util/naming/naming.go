package naming

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// storageAccountPrefix is the prefix for derived storage account names.
const storageAccountPrefix = "tfstate"

// StorageAccount derives a deterministic storage account name from the
// subscription and resource group. The result is storageAccountPrefix plus
// ten hex characters, well within the 3-24 lowercase alphanumeric limit.
func StorageAccount(subscriptionID, resourceGroup string) string {
	sum := sha256.Sum256([]byte(subscriptionID + "/" + resourceGroup))
	return storageAccountPrefix + hex.EncodeToString(sum[:])[:10]
}

// SubscriptionScope returns the ARM scope string for a subscription.
func SubscriptionScope(subscriptionID string) string {
	return fmt.Sprintf("/subscriptions/%s", subscriptionID)
}

// ResourceGroupScope returns the ARM scope string for a resource group.
func ResourceGroupScope(subscriptionID, resourceGroup string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s", subscriptionID, resourceGroup)
}

// PasswordDisplayName is the display name attached to rotated identity
// credentials, so they are recognizable in the portal.
func PasswordDisplayName(identity string) string {
	return fmt.Sprintf("%s-tfbackend", identity)
}

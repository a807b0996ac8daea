package azure

import (
	"context"
	"fmt"

	"github.com/tfbackend/tfbackend/internal/util/retry"
)

// EnsureOperation encapsulates get-or-create logic for any ARM resource.
// It provides consistent error handling and duplicate-create recovery
// across all resource types.
//
// Usage example:
//
//	func (c *RealClient) EnsureResourceGroup(ctx context.Context, name, location string) (*armresources.ResourceGroup, bool, error) {
//	    return (&EnsureOperation[*armresources.ResourceGroup]{
//	        Name:         name,
//	        ResourceType: "resource group",
//	        Get: func(ctx context.Context) (*armresources.ResourceGroup, error) {
//	            resp, err := c.groups.Get(ctx, name, nil)
//	            return &resp.ResourceGroup, err
//	        },
//	        Create: func(ctx context.Context) (*armresources.ResourceGroup, error) {
//	            resp, err := c.groups.CreateOrUpdate(ctx, name, parameters, nil)
//	            return &resp.ResourceGroup, err
//	        },
//	    }).Execute(ctx)
//	}
type EnsureOperation[T any] struct {
	Name         string
	ResourceType string

	// Get retrieves the resource. A not-found condition must surface as an
	// error satisfying IsNotFound.
	Get func(ctx context.Context) (T, error)

	// Create creates the resource.
	Create func(ctx context.Context) (T, error)
}

// Execute performs the ensure operation: return the existing resource, or
// create it. The returned bool reports whether this call created the
// resource.
//
// A conflict during create means another writer won the race. The
// operation recovers by re-reading: if the resource is now visible it is
// adopted, otherwise the conflict was about a name owned elsewhere and the
// original error is returned.
func (op *EnsureOperation[T]) Execute(ctx context.Context) (T, bool, error) {
	var zero T

	resource, err := op.Get(ctx)
	if err == nil {
		return resource, false, nil
	}
	if !IsNotFound(err) {
		return zero, false, fmt.Errorf("failed to get %s %q: %w", op.ResourceType, op.Name, err)
	}

	resource, err = op.Create(ctx)
	if err == nil {
		return resource, true, nil
	}
	if !IsConflict(err) {
		return zero, false, fmt.Errorf("failed to create %s %q: %w", op.ResourceType, op.Name, err)
	}

	resource, getErr := op.Get(ctx)
	if getErr != nil {
		return zero, false, fmt.Errorf("failed to create %s %q: %w", op.ResourceType, op.Name, err)
	}
	return resource, false, nil
}

// DeleteOperation encapsulates deletion logic for any ARM resource.
// It provides consistent retry, timeout, and error handling across all
// resource types. The operation is idempotent: deleting a resource that
// does not exist succeeds.
type DeleteOperation struct {
	Name         string
	ResourceType string

	// Delete removes the resource.
	Delete func(ctx context.Context) error
}

// Execute performs the delete operation with retry logic and timeout
// handling. Conflicts are retried with exponential backoff; they occur
// while another control plane operation still holds the resource.
func (op *DeleteOperation) Execute(ctx context.Context, client *RealClient) error {
	ctx, cancel := context.WithTimeout(ctx, client.timeouts.Delete)
	defer cancel()

	return retry.WithExponentialBackoff(ctx, func() error {
		err := op.Delete(ctx)
		if err == nil || IsNotFound(err) {
			return nil
		}
		if IsConflict(err) {
			return err // Retryable
		}
		return retry.Fatal(fmt.Errorf("failed to delete %s %q: %w", op.ResourceType, op.Name, err))
	},
		retry.WithMaxRetries(client.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(client.timeouts.RetryInitialDelay),
		retry.WithMaxDelay(client.timeouts.RetryMaxDelay))
}

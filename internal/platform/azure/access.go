package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v3"
	"github.com/google/uuid"

	"github.com/tfbackend/tfbackend/internal/util/retry"
)

// EnsureRoleAssignment grants the role to the principal at the given
// scope. Assignment names are fresh UUIDs; if an equivalent assignment
// already exists the write is reported as convergence. Writes that fail
// because the directory has not propagated the principal yet are retried
// with backoff.
func (c *RealClient) EnsureRoleAssignment(ctx context.Context, scope, roleName, principalID string) (bool, error) {
	roleDefinitionID, err := c.findRoleDefinition(ctx, scope, roleName)
	if err != nil {
		return false, err
	}

	created := false
	err = retry.WithExponentialBackoff(ctx, func() error {
		parameters := armauthorization.RoleAssignmentCreateParameters{
			Properties: &armauthorization.RoleAssignmentProperties{
				PrincipalID:      to.Ptr(principalID),
				PrincipalType:    to.Ptr(armauthorization.PrincipalTypeServicePrincipal),
				RoleDefinitionID: to.Ptr(roleDefinitionID),
			},
		}

		_, err := c.roleAssignments.Create(ctx, scope, uuid.NewString(), parameters, nil)
		if err == nil {
			created = true
			return nil
		}
		if IsRoleAssignmentExists(err) {
			return nil
		}
		if IsPrincipalNotFound(err) {
			return err // Directory propagation, retryable
		}
		return retry.Fatal(fmt.Errorf("failed to create role assignment for %q: %w", roleName, err))
	},
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay),
		retry.WithMaxDelay(c.timeouts.RetryMaxDelay))
	if err != nil {
		return false, err
	}
	return created, nil
}

// HasRoleAssignment reports whether the principal already holds the role
// at the scope.
func (c *RealClient) HasRoleAssignment(ctx context.Context, scope, roleName, principalID string) (bool, error) {
	roleDefinitionID, err := c.findRoleDefinition(ctx, scope, roleName)
	if err != nil {
		return false, err
	}

	filter := fmt.Sprintf("principalId eq '%s'", principalID)
	pager := c.roleAssignments.NewListForScopePager(scope, &armauthorization.RoleAssignmentsClientListForScopeOptions{
		Filter: &filter,
	})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to list role assignments: %w", err)
		}
		for _, assignment := range page.Value {
			if assignment.Properties == nil || assignment.Properties.RoleDefinitionID == nil {
				continue
			}
			if strings.EqualFold(*assignment.Properties.RoleDefinitionID, roleDefinitionID) {
				return true, nil
			}
		}
	}
	return false, nil
}

// DeleteRoleAssignments removes every role assignment held by the
// principal at the scope.
func (c *RealClient) DeleteRoleAssignments(ctx context.Context, scope, principalID string) error {
	filter := fmt.Sprintf("principalId eq '%s'", principalID)
	pager := c.roleAssignments.NewListForScopePager(scope, &armauthorization.RoleAssignmentsClientListForScopeOptions{
		Filter: &filter,
	})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to list role assignments: %w", err)
		}
		for _, assignment := range page.Value {
			if assignment.ID == nil {
				continue
			}
			if _, err := c.roleAssignments.DeleteByID(ctx, *assignment.ID, nil); err != nil && !IsNotFound(err) {
				return fmt.Errorf("failed to delete role assignment %s: %w", *assignment.ID, err)
			}
		}
	}
	return nil
}

// findRoleDefinition resolves a role name like "Contributor" to the full
// role definition id at the given scope.
func (c *RealClient) findRoleDefinition(ctx context.Context, scope, roleName string) (string, error) {
	filter := fmt.Sprintf("roleName eq '%s'", roleName)
	pager := c.roleDefinitions.NewListPager(scope, &armauthorization.RoleDefinitionsClientListOptions{
		Filter: &filter,
	})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to list role definitions: %w", err)
		}
		for _, definition := range page.Value {
			if definition.ID != nil {
				return *definition.ID, nil
			}
		}
	}
	return "", fmt.Errorf("role definition %q not found at scope %s", roleName, scope)
}

package destroy

import (
	"fmt"

	"github.com/tfbackend/tfbackend/internal/provisioning"
	"github.com/tfbackend/tfbackend/internal/util/naming"
)

const phaseName = "destroy"

// Provisioner handles backend destruction.
type Provisioner struct{}

// NewProvisioner creates a destroy provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phaseName
}

// Provision implements the provisioning.Phase interface by deleting all
// managed resources.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	ctx.Observer.Printf("Destroying backend resources in %s", ctx.Config.SubscriptionID)

	if err := p.removeIdentity(ctx); err != nil {
		return err
	}
	return p.removeResourceGroup(ctx)
}

func (p *Provisioner) removeIdentity(ctx *provisioning.Context) error {
	name := ctx.Config.IdentityName

	identity, err := ctx.Infra.GetIdentity(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to look up identity %q: %w", name, err)
	}
	if identity == nil {
		ctx.Observer.Printf("Identity %s already absent", name)
		return nil
	}

	if identity.ServicePrincipalID != "" {
		scope := naming.SubscriptionScope(ctx.Config.SubscriptionID)
		provisioning.LogResourceDeleting(ctx.Observer, phaseName, "role assignments", name)
		if err := ctx.Infra.DeleteRoleAssignments(ctx, scope, identity.ServicePrincipalID); err != nil {
			return fmt.Errorf("failed to remove role assignments of %q: %w", name, err)
		}
		provisioning.LogResourceDeleted(ctx.Observer, phaseName, "role assignments", name)
	}

	provisioning.LogResourceDeleting(ctx.Observer, phaseName, "application", name)
	if err := ctx.Infra.DeleteIdentity(ctx, name); err != nil {
		return fmt.Errorf("failed to delete identity %q: %w", name, err)
	}
	provisioning.LogResourceDeleted(ctx.Observer, phaseName, "application", name)
	return nil
}

// removeResourceGroup deletes the group and with it the storage account
// and container. Runs last; the delete is a long-running operation.
func (p *Provisioner) removeResourceGroup(ctx *provisioning.Context) error {
	name := ctx.Config.ResourceGroup

	provisioning.LogResourceDeleting(ctx.Observer, phaseName, "resource group", name)
	if err := ctx.Infra.DeleteResourceGroup(ctx, name); err != nil {
		return fmt.Errorf("failed to delete resource group %q: %w", name, err)
	}
	provisioning.LogResourceDeleted(ctx.Observer, phaseName, "resource group", name)
	return nil
}

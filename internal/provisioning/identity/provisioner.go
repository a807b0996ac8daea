package identity

import (
	"fmt"

	"github.com/tfbackend/tfbackend/internal/provisioning"
	"github.com/tfbackend/tfbackend/internal/util/naming"
)

const phaseName = "identity"

// Provisioner converges the bootstrap identity: application, service
// principal, and a freshly rotated client secret.
type Provisioner struct {
	forceRecreate bool
}

// NewProvisioner creates an identity provisioner. With forceRecreate the
// existing application is deleted and replaced instead of adopted.
func NewProvisioner(forceRecreate bool) *Provisioner {
	return &Provisioner{forceRecreate: forceRecreate}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phaseName
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if err := p.resolveTenant(ctx); err != nil {
		return err
	}

	if p.forceRecreate {
		if err := p.recreate(ctx); err != nil {
			return err
		}
	}

	if err := p.ensureIdentity(ctx); err != nil {
		return err
	}
	if err := p.rotateCredential(ctx); err != nil {
		return err
	}
	return p.waitForVisibility(ctx)
}

// resolveTenant fills State.TenantID, preferring the configured value and
// falling back to the subscription's tenant.
func (p *Provisioner) resolveTenant(ctx *provisioning.Context) error {
	if ctx.Config.TenantID != "" {
		ctx.State.TenantID = ctx.Config.TenantID
		return nil
	}

	subscription, err := ctx.Infra.GetSubscription(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve tenant from subscription: %w", err)
	}
	if subscription.TenantID == nil || *subscription.TenantID == "" {
		return fmt.Errorf("subscription %s carries no tenant id", ctx.Config.SubscriptionID)
	}

	ctx.State.TenantID = *subscription.TenantID
	ctx.Observer.Printf("Resolved tenant %s from subscription", ctx.State.TenantID)
	return nil
}

// recreate removes the existing application so a fresh one replaces it.
// Role assignments of the old service principal go first; they would
// otherwise linger as orphaned entries on the subscription.
func (p *Provisioner) recreate(ctx *provisioning.Context) error {
	name := ctx.Config.IdentityName

	existing, err := ctx.Infra.GetIdentity(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to look up identity %q: %w", name, err)
	}
	if existing == nil {
		return nil
	}

	provisioning.LogResourceDeleting(ctx.Observer, phaseName, "application", name)
	if existing.ServicePrincipalID != "" {
		scope := naming.SubscriptionScope(ctx.Config.SubscriptionID)
		if err := ctx.Infra.DeleteRoleAssignments(ctx, scope, existing.ServicePrincipalID); err != nil {
			return fmt.Errorf("failed to remove role assignments of %q: %w", name, err)
		}
	}
	if err := ctx.Infra.DeleteIdentity(ctx, name); err != nil {
		return fmt.Errorf("failed to delete identity %q: %w", name, err)
	}
	provisioning.LogResourceDeleted(ctx.Observer, phaseName, "application", name)
	return nil
}

func (p *Provisioner) ensureIdentity(ctx *provisioning.Context) error {
	name := ctx.Config.IdentityName

	identity, created, err := ctx.Infra.EnsureIdentity(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to ensure identity %q: %w", name, err)
	}

	ctx.State.Identity = identity
	ctx.State.IdentityCreated = created
	if created {
		provisioning.LogResourceCreated(ctx.Observer, phaseName, "application", name, identity.ClientID)
	} else {
		provisioning.LogResourceExists(ctx.Observer, phaseName, "application", name, identity.ClientID)
	}
	return nil
}

// rotateCredential issues a fresh client secret. Secrets are write-once
// visible, so an adopted identity is useless without this step. The value
// goes into state only, never into a log line.
func (p *Provisioner) rotateCredential(ctx *provisioning.Context) error {
	displayName := naming.PasswordDisplayName(ctx.Config.IdentityName)

	secret, err := ctx.Infra.ResetCredential(ctx, ctx.State.Identity, displayName)
	if err != nil {
		return fmt.Errorf("failed to rotate client secret for %q: %w", ctx.Config.IdentityName, err)
	}

	ctx.State.ClientSecret = secret
	ctx.Observer.Event(provisioning.Event{
		Type:     provisioning.EventResourceCreated,
		Phase:    phaseName,
		Resource: displayName,
		Message:  "client secret rotated",
		Fields:   map[string]string{"type": "client secret"},
	})
	return nil
}

// waitForVisibility blocks until the service principal is readable.
// Directory writes propagate asynchronously; role assignment against an
// invisible principal fails with PrincipalNotFound.
func (p *Provisioner) waitForVisibility(ctx *provisioning.Context) error {
	provisioning.LogResourceWaiting(ctx.Observer, phaseName, "service principal", ctx.Config.IdentityName)

	if err := ctx.Infra.WaitForIdentity(ctx, ctx.State.Identity.ClientID); err != nil {
		return fmt.Errorf("service principal for %q did not become readable: %w", ctx.Config.IdentityName, err)
	}
	return nil
}

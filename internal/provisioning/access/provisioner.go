package access

import (
	"errors"
	"fmt"

	"github.com/tfbackend/tfbackend/internal/provisioning"
	"github.com/tfbackend/tfbackend/internal/util/naming"
)

const phaseName = "access"

// Provisioner converges the role assignment of the bootstrap identity.
type Provisioner struct{}

// NewProvisioner creates an access provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phaseName
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if ctx.State.Identity == nil || ctx.State.Identity.ServicePrincipalID == "" {
		return errors.New("no service principal in state, identity phase has not run")
	}

	scope := naming.SubscriptionScope(ctx.Config.SubscriptionID)
	role := ctx.Config.Role
	principal := ctx.State.Identity.ServicePrincipalID

	created, err := ctx.Infra.EnsureRoleAssignment(ctx, scope, role, principal)
	if err != nil {
		return fmt.Errorf("failed to assign role %q at %s: %w", role, scope, err)
	}

	ctx.State.RoleAssignmentCreated = created
	eventType := provisioning.EventResourceExists
	message := fmt.Sprintf("role %s already assigned", role)
	if created {
		eventType = provisioning.EventResourceCreated
		message = fmt.Sprintf("role %s assigned", role)
	}
	ctx.Observer.Event(provisioning.Event{
		Type:     eventType,
		Phase:    phaseName,
		Resource: ctx.Config.IdentityName,
		Message:  message,
		Fields: map[string]string{
			"type":  "role assignment",
			"scope": scope,
		},
	})
	return nil
}

package backend

import (
	"fmt"

	"github.com/tfbackend/tfbackend/internal/provisioning"
	"github.com/tfbackend/tfbackend/internal/util/tags"
)

const phaseName = "backend"

// Provisioner converges the storage side of the backend.
type Provisioner struct{}

// NewProvisioner creates a backend provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phaseName
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	resourceTags := tags.NewBuilder().
		WithIdentity(ctx.Config.IdentityName).
		BuildPtr()

	if err := p.ensureResourceGroup(ctx, resourceTags); err != nil {
		return err
	}
	if err := p.ensureStorageAccount(ctx, resourceTags); err != nil {
		return err
	}
	if err := p.fetchAccessKey(ctx); err != nil {
		return err
	}
	return p.ensureContainer(ctx)
}

func (p *Provisioner) ensureResourceGroup(ctx *provisioning.Context, resourceTags map[string]*string) error {
	name := ctx.Config.ResourceGroup

	group, created, err := ctx.Infra.EnsureResourceGroup(ctx, name, ctx.Config.Location, resourceTags)
	if err != nil {
		return fmt.Errorf("failed to ensure resource group %q: %w", name, err)
	}

	if group.ID != nil {
		ctx.State.ResourceGroupID = *group.ID
	}
	ctx.State.ResourceGroupCreated = created
	if created {
		provisioning.LogResourceCreated(ctx.Observer, phaseName, "resource group", name, ctx.State.ResourceGroupID)
	} else {
		provisioning.LogResourceExists(ctx.Observer, phaseName, "resource group", name, ctx.State.ResourceGroupID)
	}
	return nil
}

func (p *Provisioner) ensureStorageAccount(ctx *provisioning.Context, resourceTags map[string]*string) error {
	name := ctx.Config.StorageAccount

	account, created, err := ctx.Infra.EnsureStorageAccount(ctx, ctx.Config.ResourceGroup, name, ctx.Config.Location, resourceTags)
	if err != nil {
		return fmt.Errorf("failed to ensure storage account %q: %w", name, err)
	}

	if account.ID != nil {
		ctx.State.StorageAccountID = *account.ID
	}
	ctx.State.StorageAccountCreated = created
	if created {
		provisioning.LogResourceCreated(ctx.Observer, phaseName, "storage account", name, ctx.State.StorageAccountID)
	} else {
		provisioning.LogResourceExists(ctx.Observer, phaseName, "storage account", name, ctx.State.StorageAccountID)
	}
	return nil
}

// fetchAccessKey reads the account key used for the data-plane container
// call. The key stays in state; it is not part of the exported credentials.
func (p *Provisioner) fetchAccessKey(ctx *provisioning.Context) error {
	key, err := ctx.Infra.GetStorageAccountKey(ctx, ctx.Config.ResourceGroup, ctx.Config.StorageAccount)
	if err != nil {
		return fmt.Errorf("failed to fetch access key of %q: %w", ctx.Config.StorageAccount, err)
	}
	ctx.State.AccessKey = key
	return nil
}

func (p *Provisioner) ensureContainer(ctx *provisioning.Context) error {
	name := ctx.Config.Container

	created, err := ctx.Infra.EnsureBlobContainer(ctx, ctx.Config.StorageAccount, ctx.State.AccessKey, name)
	if err != nil {
		return fmt.Errorf("failed to ensure blob container %q: %w", name, err)
	}

	ctx.State.ContainerCreated = created
	eventType := provisioning.EventResourceExists
	message := "blob container already exists"
	if created {
		eventType = provisioning.EventResourceCreated
		message = "blob container created"
	}
	ctx.Observer.Event(provisioning.Event{
		Type:     eventType,
		Phase:    phaseName,
		Resource: name,
		Message:  message,
		Fields: map[string]string{
			"type":    "blob container",
			"account": ctx.Config.StorageAccount,
		},
	})
	return nil
}

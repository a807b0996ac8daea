package provisioning

import (
	"context"
	"errors"

	"github.com/tfbackend/tfbackend/internal/config"
	"github.com/tfbackend/tfbackend/internal/export"
	"github.com/tfbackend/tfbackend/internal/platform/azure"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Identity results (populated by the identity phase)
	TenantID        string
	Identity        *azure.Identity
	ClientSecret    string
	IdentityCreated bool

	// Backend results (populated by the backend phase)
	ResourceGroupID       string
	ResourceGroupCreated  bool
	StorageAccountID      string
	StorageAccountCreated bool
	AccessKey             string
	ContainerCreated      bool

	// Access results (populated by the access phase)
	RoleAssignmentCreated bool
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// Credentials assembles the exporter input from the accumulated state.
// It fails when the identity phase has not run to completion, since a
// credentials file with an empty secret would be worse than no file.
func (s *State) Credentials(subscriptionID string) (*export.Credentials, error) {
	if s.Identity == nil {
		return nil, errors.New("no identity in state, identity phase has not run")
	}
	if s.ClientSecret == "" {
		return nil, errors.New("no client secret in state, credential rotation has not run")
	}
	if s.TenantID == "" {
		return nil, errors.New("no tenant id in state")
	}

	credentials := &export.Credentials{
		ClientID:       s.Identity.ClientID,
		ClientSecret:   s.ClientSecret,
		SubscriptionID: subscriptionID,
		TenantID:       s.TenantID,
	}
	if err := credentials.Validate(); err != nil {
		return nil, err
	}
	return credentials, nil
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Infra    azure.InfrastructureManager
	Observer Observer
	Timeouts *config.Timeouts
}

// NewContext creates a new provisioning context.
func NewContext(ctx context.Context, cfg *config.Config, infra azure.InfrastructureManager) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Infra:    infra,
		Observer: NewConsoleObserver(),
		Timeouts: config.LoadTimeouts(),
	}
}

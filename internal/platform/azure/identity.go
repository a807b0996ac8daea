package azure

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microsoftgraph/msgraph-sdk-go/applications"
	"github.com/microsoftgraph/msgraph-sdk-go/models"
	"github.com/microsoftgraph/msgraph-sdk-go/serviceprincipals"

	"github.com/tfbackend/tfbackend/internal/util/retry"
)

// credentialValidity is how long a freshly issued client secret stays
// valid. Re-running apply rotates the secret, so a long window only
// matters for backends that are never reconverged.
const credentialValidity = 365 * 24 * time.Hour

// GetIdentity returns the identity with the given display name, or nil if
// no application with that name exists.
func (c *RealClient) GetIdentity(ctx context.Context, displayName string) (*Identity, error) {
	app, err := c.findApplication(ctx, displayName)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, nil
	}

	identity := &Identity{
		ApplicationID: deref(app.GetId()),
		ClientID:      deref(app.GetAppId()),
		DisplayName:   displayName,
	}

	sp, err := c.getServicePrincipal(ctx, identity.ClientID)
	if err != nil {
		return nil, err
	}
	if sp != nil {
		identity.ServicePrincipalID = deref(sp.GetId())
	}
	return identity, nil
}

// EnsureIdentity ensures that an application with the given display name
// and its service principal exist in the directory.
func (c *RealClient) EnsureIdentity(ctx context.Context, displayName string) (*Identity, bool, error) {
	created := false

	app, err := c.findApplication(ctx, displayName)
	if err != nil {
		return nil, false, err
	}
	if app == nil {
		request := models.NewApplication()
		request.SetDisplayName(&displayName)

		app, err = c.graph.Applications().Post(ctx, request, nil)
		if err != nil {
			return nil, false, fmt.Errorf("failed to create application %q: %w", displayName, err)
		}
		created = true
	}

	identity := &Identity{
		ApplicationID: deref(app.GetId()),
		ClientID:      deref(app.GetAppId()),
		DisplayName:   displayName,
	}

	sp, err := c.ensureServicePrincipal(ctx, identity.ClientID)
	if err != nil {
		return nil, false, err
	}
	identity.ServicePrincipalID = deref(sp.GetId())

	return identity, created, nil
}

// ResetCredential issues a fresh client secret for the identity. The
// secret text is only readable in this response. Stale credentials that
// were issued under the same display name are removed best effort after
// the new one is live; leftovers expire on their own.
func (c *RealClient) ResetCredential(ctx context.Context, identity *Identity, displayName string) (string, error) {
	credential := models.NewPasswordCredential()
	credential.SetDisplayName(&displayName)
	expiry := time.Now().UTC().Add(credentialValidity)
	credential.SetEndDateTime(&expiry)

	body := serviceprincipals.NewItemAddPasswordPostRequestBody()
	body.SetPasswordCredential(credential)

	added, err := c.graph.ServicePrincipals().ByServicePrincipalId(identity.ServicePrincipalID).AddPassword().Post(ctx, body, nil)
	if err != nil {
		return "", fmt.Errorf("failed to add password for %q: %w", identity.DisplayName, err)
	}

	secret := added.GetSecretText()
	if secret == nil || *secret == "" {
		return "", fmt.Errorf("directory returned no secret text for %q", identity.DisplayName)
	}

	c.removeStaleCredentials(ctx, identity, displayName, added.GetKeyId())

	return *secret, nil
}

// WaitForIdentity polls until the service principal is readable through
// the directory API.
func (c *RealClient) WaitForIdentity(ctx context.Context, clientID string) error {
	return retry.WithExponentialBackoff(ctx, func() error {
		_, err := c.graph.ServicePrincipalsWithAppId(&clientID).Get(ctx, nil)
		if err == nil {
			return nil
		}
		if IsGraphNotFound(err) {
			return err // Not propagated yet, retryable
		}
		return retry.Fatal(fmt.Errorf("failed to read service principal for app %s: %w", clientID, err))
	},
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay),
		retry.WithMaxDelay(c.timeouts.RetryMaxDelay))
}

// DeleteIdentity deletes the application with the given display name. The
// service principal is removed with it. Deleting an identity that does
// not exist succeeds.
func (c *RealClient) DeleteIdentity(ctx context.Context, displayName string) error {
	app, err := c.findApplication(ctx, displayName)
	if err != nil {
		return err
	}
	if app == nil {
		return nil
	}

	if err := c.graph.Applications().ByApplicationId(deref(app.GetId())).Delete(ctx, nil); err != nil {
		if IsGraphNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete application %q: %w", displayName, err)
	}
	return nil
}

// findApplication returns the first application with the given display
// name, or nil if there is none.
func (c *RealClient) findApplication(ctx context.Context, displayName string) (models.Applicationable, error) {
	filter := fmt.Sprintf("displayName eq '%s'", strings.ReplaceAll(displayName, "'", "''"))

	resp, err := c.graph.Applications().Get(ctx, &applications.ApplicationsRequestBuilderGetRequestConfiguration{
		QueryParameters: &applications.ApplicationsRequestBuilderGetQueryParameters{
			Filter: &filter,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list applications named %q: %w", displayName, err)
	}

	apps := resp.GetValue()
	if len(apps) == 0 {
		return nil, nil
	}
	return apps[0], nil
}

// getServicePrincipal returns the service principal for the application
// id, or nil if it does not exist.
func (c *RealClient) getServicePrincipal(ctx context.Context, clientID string) (models.ServicePrincipalable, error) {
	sp, err := c.graph.ServicePrincipalsWithAppId(&clientID).Get(ctx, nil)
	if err != nil {
		if IsGraphNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get service principal for app %s: %w", clientID, err)
	}
	return sp, nil
}

// ensureServicePrincipal gets or creates the service principal for the
// application id.
func (c *RealClient) ensureServicePrincipal(ctx context.Context, clientID string) (models.ServicePrincipalable, error) {
	sp, err := c.getServicePrincipal(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if sp != nil {
		return sp, nil
	}

	request := models.NewServicePrincipal()
	request.SetAppId(&clientID)

	sp, err = c.graph.ServicePrincipals().Post(ctx, request, nil)
	if err == nil {
		return sp, nil
	}
	if !IsGraphDuplicate(err) {
		return nil, fmt.Errorf("failed to create service principal for app %s: %w", clientID, err)
	}

	// Another writer created it between our get and post.
	sp, err = c.getServicePrincipal(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, fmt.Errorf("service principal for app %s reported as duplicate but not readable", clientID)
	}
	return sp, nil
}

// removeStaleCredentials removes password credentials that share the
// display name but are not the one to keep. Failures are ignored, the
// fresh credential is already in place.
func (c *RealClient) removeStaleCredentials(ctx context.Context, identity *Identity, displayName string, keep *uuid.UUID) {
	sp, err := c.graph.ServicePrincipals().ByServicePrincipalId(identity.ServicePrincipalID).Get(ctx, nil)
	if err != nil {
		return
	}

	for _, credential := range sp.GetPasswordCredentials() {
		keyID := credential.GetKeyId()
		if keyID == nil || (keep != nil && *keyID == *keep) {
			continue
		}
		if name := credential.GetDisplayName(); name == nil || *name != displayName {
			continue
		}

		body := serviceprincipals.NewItemRemovePasswordPostRequestBody()
		body.SetKeyId(keyID)
		_ = c.graph.ServicePrincipals().ByServicePrincipalId(identity.ServicePrincipalID).RemovePassword().Post(ctx, body, nil)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

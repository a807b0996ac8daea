package azure

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v3"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"

	"github.com/tfbackend/tfbackend/internal/config"
)

// defaultBlobEndpoint is the service URL format for the blob data plane.
// Overridable for emulators such as Azurite.
const defaultBlobEndpoint = "https://%s.blob.core.windows.net/"

var graphScopes = []string{"https://graph.microsoft.com/.default"}

// RealClient implements InfrastructureManager using the Azure SDK.
type RealClient struct {
	subscriptionID string
	cred           azcore.TokenCredential
	timeouts       *config.Timeouts
	blobEndpoint   string

	groups          *armresources.ResourceGroupsClient
	accounts        *armstorage.AccountsClient
	subscriptions   *armsubscriptions.Client
	roleDefinitions *armauthorization.RoleDefinitionsClient
	roleAssignments *armauthorization.RoleAssignmentsClient
	graph           *msgraphsdk.GraphServiceClient
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithCredential sets the token credential used for all API clients.
func WithCredential(cred azcore.TokenCredential) ClientOption {
	return func(c *RealClient) {
		c.cred = cred
	}
}

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// WithGraphClient sets a custom Microsoft Graph client (useful for testing).
func WithGraphClient(client *msgraphsdk.GraphServiceClient) ClientOption {
	return func(c *RealClient) {
		c.graph = client
	}
}

// WithBlobEndpoint sets the blob service URL format. The format must
// contain a single %s verb for the account name.
func WithBlobEndpoint(format string) ClientOption {
	return func(c *RealClient) {
		c.blobEndpoint = format
	}
}

// NewRealClient creates a new RealClient for the given subscription with
// optional configuration.
func NewRealClient(subscriptionID string, opts ...ClientOption) (*RealClient, error) {
	c := &RealClient{
		subscriptionID: subscriptionID,
		timeouts:       config.LoadTimeouts(),
		blobEndpoint:   defaultBlobEndpoint,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.cred == nil {
		cred, err := defaultCredential()
		if err != nil {
			return nil, fmt.Errorf("failed to build azure credential: %w", err)
		}
		c.cred = cred
	}

	var err error
	if c.groups, err = armresources.NewResourceGroupsClient(subscriptionID, c.cred, nil); err != nil {
		return nil, fmt.Errorf("failed to create resource groups client: %w", err)
	}
	if c.accounts, err = armstorage.NewAccountsClient(subscriptionID, c.cred, nil); err != nil {
		return nil, fmt.Errorf("failed to create storage accounts client: %w", err)
	}
	if c.subscriptions, err = armsubscriptions.NewClient(c.cred, nil); err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}
	if c.roleDefinitions, err = armauthorization.NewRoleDefinitionsClient(c.cred, nil); err != nil {
		return nil, fmt.Errorf("failed to create role definitions client: %w", err)
	}
	if c.roleAssignments, err = armauthorization.NewRoleAssignmentsClient(subscriptionID, c.cred, nil); err != nil {
		return nil, fmt.Errorf("failed to create role assignments client: %w", err)
	}
	if c.graph == nil {
		if c.graph, err = msgraphsdk.NewGraphServiceClientWithCredentials(c.cred, graphScopes); err != nil {
			return nil, fmt.Errorf("failed to create graph client: %w", err)
		}
	}

	return c, nil
}

// defaultCredential builds the token credential chain. Service principal
// environment variables win when present, otherwise the az CLI session is
// used. Running `az login` is the documented prerequisite.
func defaultCredential() (azcore.TokenCredential, error) {
	var sources []azcore.TokenCredential

	if env, err := azidentity.NewEnvironmentCredential(nil); err == nil {
		sources = append(sources, env)
	}

	cli, err := azidentity.NewAzureCLICredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure cli credential: %w", err)
	}
	sources = append(sources, cli)

	return azidentity.NewChainedTokenCredential(sources, nil)
}

// SubscriptionID returns the subscription the client operates on.
func (c *RealClient) SubscriptionID() string {
	return c.subscriptionID
}

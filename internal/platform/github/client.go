package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v50/github"
	"golang.org/x/oauth2"

	"github.com/tfbackend/tfbackend/internal/config"
	"github.com/tfbackend/tfbackend/internal/export"
)

// SecretPublisher pushes Actions secrets to a single repository.
type SecretPublisher interface {
	// VerifyAuth resolves the authenticated user, proving the token works
	// before any secret is touched.
	VerifyAuth(ctx context.Context) (string, error)
	// CheckRepository confirms the target repository is visible to the token.
	CheckRepository(ctx context.Context) error
	// PublishSecret creates or updates one repository secret.
	PublishSecret(ctx context.Context, name, value string) error
	// Repository returns the owner/name target for log lines.
	Repository() string
}

// Client implements SecretPublisher against the GitHub API.
type Client struct {
	gh    *gh.Client
	owner string
	repo  string
}

var _ SecretPublisher = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithGitHubClient injects a preconfigured API client. Tests use this to
// point at a local server.
func WithGitHubClient(client *gh.Client) ClientOption {
	return func(c *Client) {
		c.gh = client
	}
}

// NewClient builds a publisher for cfg.Repository authenticated with
// cfg.Token.
func NewClient(cfg config.GitHubConfig, opts ...ClientOption) (*Client, error) {
	owner, repo, err := cfg.OwnerRepo()
	if err != nil {
		return nil, err
	}

	c := &Client{owner: owner, repo: repo}
	for _, opt := range opts {
		opt(c)
	}

	if c.gh == nil {
		if cfg.Token == "" {
			return nil, fmt.Errorf("github token is required for publishing (set %s)", config.EnvGitHubToken)
		}
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		c.gh = gh.NewClient(oauth2.NewClient(context.Background(), ts))
	}
	return c, nil
}

// Repository returns the owner/name this client publishes to.
func (c *Client) Repository() string {
	return c.owner + "/" + c.repo
}

// VerifyAuth checks the token by resolving the authenticated user.
func (c *Client) VerifyAuth(ctx context.Context) (string, error) {
	user, resp, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return "", parseResponse(resp, err)
	}
	return user.GetLogin(), nil
}

// CheckRepository confirms the repository exists and the token can see it.
func (c *Client) CheckRepository(ctx context.Context) error {
	_, resp, err := c.gh.Repositories.Get(ctx, c.owner, c.repo)
	return parseResponse(resp, err)
}

// PublishSecret creates or updates one repository Actions secret. The
// value is sealed to the repository public key before upload.
func (c *Client) PublishSecret(ctx context.Context, name, value string) error {
	key, resp, err := c.gh.Actions.GetRepoPublicKey(ctx, c.owner, c.repo)
	if err != nil {
		return parseResponse(resp, err)
	}

	secret, err := sealSecret(key, name, value)
	if err != nil {
		return err
	}

	resp, err = c.gh.Actions.CreateOrUpdateRepoSecret(ctx, c.owner, c.repo, secret)
	return parseResponse(resp, err)
}

// PublishCredentials pushes all four backend credentials to pub. Any
// failure aborts the run: workflows need the complete set, and a partial
// push with a fresh ARM_CLIENT_SECRET but stale peers is worse than none.
func PublishCredentials(ctx context.Context, pub SecretPublisher, creds *export.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	for _, pair := range creds.Pairs() {
		if err := pub.PublishSecret(ctx, pair[0], pair[1]); err != nil {
			return fmt.Errorf("failed to publish secret %s to %s: %w", pair[0], pub.Repository(), err)
		}
	}
	return nil
}

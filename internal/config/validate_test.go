package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := New()
	cfg.SubscriptionID = testSubscription
	cfg.TenantID = "11111111-1111-1111-1111-111111111111"
	cfg.ApplyDerived()
	return cfg
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{
			name:    "missing subscription",
			mutate:  func(c *Config) { c.SubscriptionID = "" },
			wantSub: "subscription_id is required",
		},
		{
			// The hint has to name a knob that actually exists: the config
			// key or AZURE_SUBSCRIPTION_ID, as there is no CLI flag for it.
			name:    "missing subscription hint names env var",
			mutate:  func(c *Config) { c.SubscriptionID = "" },
			wantSub: EnvSubscriptionID,
		},
		{
			name:    "malformed subscription",
			mutate:  func(c *Config) { c.SubscriptionID = "not-a-uuid" },
			wantSub: "not a valid UUID",
		},
		{
			name:    "malformed tenant",
			mutate:  func(c *Config) { c.TenantID = "nope" },
			wantSub: "not a valid UUID",
		},
		{
			name:    "missing location",
			mutate:  func(c *Config) { c.Location = "" },
			wantSub: "location is required",
		},
		{
			name:    "uppercase location",
			mutate:  func(c *Config) { c.Location = "WestEurope" },
			wantSub: "invalid location",
		},
		{
			name:    "missing resource group",
			mutate:  func(c *Config) { c.ResourceGroup = "" },
			wantSub: "resource_group is required",
		},
		{
			name:    "storage account too short",
			mutate:  func(c *Config) { c.StorageAccount = "ab" },
			wantSub: "invalid storage_account",
		},
		{
			name:    "storage account with dashes",
			mutate:  func(c *Config) { c.StorageAccount = "tf-state" },
			wantSub: "invalid storage_account",
		},
		{
			name:    "container with uppercase",
			mutate:  func(c *Config) { c.Container = "State" },
			wantSub: "invalid container",
		},
		{
			name:    "missing identity",
			mutate:  func(c *Config) { c.IdentityName = "" },
			wantSub: "identity_name is required",
		},
		{
			name:    "missing role",
			mutate:  func(c *Config) { c.Role = "" },
			wantSub: "role is required",
		},
		{
			name:    "missing output file",
			mutate:  func(c *Config) { c.OutputFile = "" },
			wantSub: "output_file is required",
		},
		{
			name:    "bad github repository",
			mutate:  func(c *Config) { c.GitHub.Repository = "justaname" },
			wantSub: "owner/name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestValidate_EmptyTenantAllowed(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.TenantID = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty tenant must be allowed (discovered later), got: %v", err)
	}
}

func TestRequireGitHub(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	if err := cfg.RequireGitHub(); err == nil {
		t.Fatal("expected error without repository")
	}

	cfg.GitHub.Repository = "acme/infra"
	if err := cfg.RequireGitHub(); err == nil {
		t.Fatal("expected error without token")
	}

	cfg.GitHub.Token = "ghp_secret"
	if err := cfg.RequireGitHub(); err != nil {
		t.Fatalf("expected publishing config to pass, got: %v", err)
	}
}

func TestOwnerRepo(t *testing.T) {
	t.Parallel()

	g := GitHubConfig{Repository: "acme/infra"}
	owner, repo, err := g.OwnerRepo()
	if err != nil {
		t.Fatalf("OwnerRepo: %v", err)
	}
	if owner != "acme" || repo != "infra" {
		t.Errorf("OwnerRepo = %q/%q, want acme/infra", owner, repo)
	}

	for _, bad := range []string{"", "acme", "/infra", "acme/"} {
		g := GitHubConfig{Repository: bad}
		if _, _, err := g.OwnerRepo(); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

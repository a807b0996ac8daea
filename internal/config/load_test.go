package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testSubscription = "22222222-2222-2222-2222-222222222222"

func clearConfigEnvVars(t *testing.T) {
	t.Helper()
	vars := []string{
		EnvSubscriptionID, EnvTenantID, EnvLocation, EnvResourceGroup,
		EnvStorageAccount, EnvContainer, EnvIdentityName, EnvRole,
		EnvOutputFile, EnvGitHubRepo, EnvGitHubToken,
	}
	for _, v := range vars {
		t.Setenv(v, "")
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tfbackend.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearConfigEnvVars(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for explicitly given missing file")
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load with no file: %v", err)
	}

	if cfg.Location != DefaultLocation {
		t.Errorf("Location = %q, want %q", cfg.Location, DefaultLocation)
	}
	if cfg.ResourceGroup != DefaultResourceGroup {
		t.Errorf("ResourceGroup = %q, want %q", cfg.ResourceGroup, DefaultResourceGroup)
	}
	if cfg.Container != DefaultContainer {
		t.Errorf("Container = %q, want %q", cfg.Container, DefaultContainer)
	}
	if cfg.IdentityName != DefaultIdentityName {
		t.Errorf("IdentityName = %q, want %q", cfg.IdentityName, DefaultIdentityName)
	}
	if cfg.Role != DefaultRole {
		t.Errorf("Role = %q, want %q", cfg.Role, DefaultRole)
	}
	if cfg.OutputFile != DefaultOutputFile {
		t.Errorf("OutputFile = %q, want %q", cfg.OutputFile, DefaultOutputFile)
	}
	if cfg.StorageAccount != "" {
		t.Errorf("StorageAccount should stay empty until derived, got %q", cfg.StorageAccount)
	}
}

func TestLoad_File(t *testing.T) {
	clearConfigEnvVars(t)

	path := writeConfigFile(t, `
subscription_id: `+testSubscription+`
location: northeurope
resource_group: infra-state
storage_account: infrastatesa
container: states
identity_name: infra-sp
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.SubscriptionID != testSubscription {
		t.Errorf("SubscriptionID = %q", cfg.SubscriptionID)
	}
	if cfg.Location != "northeurope" {
		t.Errorf("Location = %q, want northeurope", cfg.Location)
	}
	if cfg.ResourceGroup != "infra-state" {
		t.Errorf("ResourceGroup = %q, want infra-state", cfg.ResourceGroup)
	}
	if cfg.StorageAccount != "infrastatesa" {
		t.Errorf("StorageAccount = %q, want infrastatesa", cfg.StorageAccount)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Role != DefaultRole {
		t.Errorf("Role = %q, want default %q", cfg.Role, DefaultRole)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearConfigEnvVars(t)

	path := writeConfigFile(t, `
location: northeurope
resource_group: from-file
`)

	t.Setenv(EnvResourceGroup, "from-env")
	t.Setenv(EnvSubscriptionID, testSubscription)
	t.Setenv(EnvGitHubToken, "ghp_secret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ResourceGroup != "from-env" {
		t.Errorf("ResourceGroup = %q, env must override the file", cfg.ResourceGroup)
	}
	if cfg.Location != "northeurope" {
		t.Errorf("Location = %q, file value must survive when env is unset", cfg.Location)
	}
	if cfg.SubscriptionID != testSubscription {
		t.Errorf("SubscriptionID = %q, want env value", cfg.SubscriptionID)
	}
	if cfg.GitHub.Token != "ghp_secret" {
		t.Errorf("GitHub.Token not read from env")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	clearConfigEnvVars(t)

	path := writeConfigFile(t, "::\n  not yaml: [")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestApplyDerived(t *testing.T) {
	clearConfigEnvVars(t)

	cfg := New()
	cfg.SubscriptionID = testSubscription

	cfg.ApplyDerived()

	if cfg.StorageAccount == "" {
		t.Fatal("expected derived storage account name")
	}
	first := cfg.StorageAccount

	// Deriving again converges on the same name.
	cfg.StorageAccount = ""
	cfg.ApplyDerived()
	if cfg.StorageAccount != first {
		t.Errorf("derived name not deterministic: %q vs %q", first, cfg.StorageAccount)
	}

	// An explicit name is never overwritten.
	cfg.StorageAccount = "explicitname"
	cfg.ApplyDerived()
	if cfg.StorageAccount != "explicitname" {
		t.Errorf("explicit name overwritten: %q", cfg.StorageAccount)
	}
}

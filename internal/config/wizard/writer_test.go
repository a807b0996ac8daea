package wizard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tfbackend/tfbackend/internal/config"
)

func TestWriteConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tfbackend.yaml")

	cfg := config.New()
	cfg.SubscriptionID = "11111111-1111-1111-1111-111111111111"
	cfg.ResourceGroup = "infra-state-rg"

	if err := WriteConfig(cfg, path); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "# tfbackend configuration") {
		t.Error("generated file should start with the header comment")
	}
	if !strings.Contains(content, "subscription_id: 11111111-1111-1111-1111-111111111111") {
		t.Error("subscription id missing from generated file")
	}
	if !strings.Contains(content, "resource_group: infra-state-rg") {
		t.Error("resource group missing from generated file")
	}
	if strings.Contains(content, "token") {
		t.Error("generated file must never contain a token field")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("file mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestWriteConfig_Roundtrip(t *testing.T) {
	for _, v := range []string{
		config.EnvSubscriptionID, config.EnvTenantID, config.EnvLocation,
		config.EnvResourceGroup, config.EnvStorageAccount, config.EnvContainer,
		config.EnvIdentityName, config.EnvRole, config.EnvOutputFile,
		config.EnvGitHubRepo,
	} {
		t.Setenv(v, "")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "tfbackend.yaml")

	cfg := config.New()
	cfg.SubscriptionID = "11111111-1111-1111-1111-111111111111"
	cfg.Location = "eastus2"
	cfg.GitHub.Repository = "myorg/infra"

	if err := WriteConfig(cfg, path); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.SubscriptionID != cfg.SubscriptionID {
		t.Errorf("SubscriptionID = %q, want %q", loaded.SubscriptionID, cfg.SubscriptionID)
	}
	if loaded.Location != "eastus2" {
		t.Errorf("Location = %q, want eastus2", loaded.Location)
	}
	if loaded.GitHub.Repository != "myorg/infra" {
		t.Errorf("GitHub.Repository = %q, want myorg/infra", loaded.GitHub.Repository)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tfbackend.yaml")

	if FileExists(path) {
		t.Error("FileExists should be false for missing file")
	}

	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !FileExists(path) {
		t.Error("FileExists should be true for existing file")
	}
}

func TestConfirmOverwrite(t *testing.T) {
	original := confirmOverwrite
	defer func() { confirmOverwrite = original }()

	confirmOverwrite = func(path string) (bool, error) {
		return true, nil
	}

	ok, err := ConfirmOverwrite("whatever.yaml")
	if err != nil {
		t.Fatalf("ConfirmOverwrite failed: %v", err)
	}
	if !ok {
		t.Error("expected confirmation true")
	}
}

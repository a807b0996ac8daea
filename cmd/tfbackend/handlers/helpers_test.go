package handlers

import (
	"context"
	"testing"

	"github.com/tfbackend/tfbackend/internal/config"
	"github.com/tfbackend/tfbackend/internal/platform/azure"
	"github.com/tfbackend/tfbackend/internal/provisioning"
	"github.com/tfbackend/tfbackend/internal/util/prerequisites"
)

const (
	testSubscriptionID = "11111111-2222-3333-4444-555555555555"
	testTenantID       = "99999999-8888-7777-6666-555555555555"
)

// testConfig returns a valid configuration the way loadConfig would
// produce it.
func testConfig() *config.Config {
	cfg := config.New()
	cfg.SubscriptionID = testSubscriptionID
	cfg.TenantID = testTenantID
	cfg.ApplyDerived()
	return cfg
}

// saveAndRestoreFactories saves the current factory functions and
// registers a cleanup to restore them.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origNewInfraClient := newInfraClient
	origNewPublisher := newPublisher
	origNewProvisioningContext := newProvisioningContext
	origCheckDefaultPrereqs := checkDefaultPrereqs
	origLoadConfigFile := loadConfigFile
	origWriteCredentialsFile := writeCredentialsFile
	origIsInteractive := isInteractive
	origNewDestroyProvisioner := newDestroyProvisioner
	origConfirmDestroy := confirmDestroy
	origReadCredentialsFile := readCredentialsFile
	origFileExists := fileExists
	origRunWizard := runWizard
	origConfirmOverwrite := confirmOverwrite
	origWriteConfig := writeConfig

	t.Cleanup(func() {
		newInfraClient = origNewInfraClient
		newPublisher = origNewPublisher
		newProvisioningContext = origNewProvisioningContext
		checkDefaultPrereqs = origCheckDefaultPrereqs
		loadConfigFile = origLoadConfigFile
		writeCredentialsFile = origWriteCredentialsFile
		isInteractive = origIsInteractive
		newDestroyProvisioner = origNewDestroyProvisioner
		confirmDestroy = origConfirmDestroy
		readCredentialsFile = origReadCredentialsFile
		fileExists = origFileExists
		runWizard = origRunWizard
		confirmOverwrite = origConfirmOverwrite
		writeConfig = origWriteConfig
	})
}

// useConfig makes loadConfigFile return cfg regardless of path.
func useConfig(cfg *config.Config) {
	loadConfigFile = func(_ string) (*config.Config, error) {
		copied := *cfg
		return &copied, nil
	}
}

// useInfra makes newInfraClient return infra and wires fast timeouts
// into the provisioning context.
func useInfra(infra azure.InfrastructureManager) {
	newInfraClient = func(_ *config.Config) (azure.InfrastructureManager, error) {
		return infra, nil
	}
	newProvisioningContext = func(ctx context.Context, cfg *config.Config, im azure.InfrastructureManager) *provisioning.Context {
		pCtx := provisioning.NewContext(ctx, cfg, im)
		pCtx.Timeouts = config.TestTimeouts()
		return pCtx
	}
}

// passPrereqs makes the prerequisite check succeed without probing PATH.
func passPrereqs() {
	checkDefaultPrereqs = func() *prerequisites.CheckResults {
		return &prerequisites.CheckResults{}
	}
}

// mockPublisher implements github.SecretPublisher for handler tests.
type mockPublisher struct {
	published  map[string]string
	authErr    error
	repoErr    error
	publishErr error
}

func newMockPublisher() *mockPublisher {
	return &mockPublisher{published: make(map[string]string)}
}

func (m *mockPublisher) VerifyAuth(_ context.Context) (string, error) {
	if m.authErr != nil {
		return "", m.authErr
	}
	return "octocat", nil
}

func (m *mockPublisher) CheckRepository(_ context.Context) error {
	return m.repoErr
}

func (m *mockPublisher) PublishSecret(_ context.Context, name, value string) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published[name] = value
	return nil
}

func (m *mockPublisher) Repository() string {
	return "octo/terraform-infra"
}

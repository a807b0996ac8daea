package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfbackend/tfbackend/internal/config"
	"github.com/tfbackend/tfbackend/internal/platform/azure/fakes"
	"github.com/tfbackend/tfbackend/internal/platform/github"
	"github.com/tfbackend/tfbackend/internal/util/prerequisites"
)

func TestDoctor_HealthyProvisionedBackend(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := testConfig()
	fake := fakes.NewFakeInfrastructure(testSubscriptionID, testTenantID)
	seedBackend(t, cfg, fake)
	useConfig(cfg)
	useInfra(fake)
	passPrereqs()

	require.NoError(t, Doctor(context.Background(), "", false))
	require.NoError(t, Doctor(context.Background(), "", true))
}

func TestDoctor_UnprovisionedBackendPasses(t *testing.T) {
	saveAndRestoreFactories(t)

	// Nothing provisioned yet: resource probes report absence but doctor
	// still exits clean, since it must be useful before the first apply.
	fake := fakes.NewFakeInfrastructure(testSubscriptionID, testTenantID)
	useConfig(testConfig())
	useInfra(fake)
	passPrereqs()

	require.NoError(t, Doctor(context.Background(), "", false))
}

func TestDoctor_MissingTool(t *testing.T) {
	saveAndRestoreFactories(t)

	useConfig(testConfig())
	checkDefaultPrereqs = func() *prerequisites.CheckResults {
		return prerequisites.Check([]prerequisites.Tool{{
			Name:       "definitely-not-a-real-binary-7f3a",
			Required:   true,
			InstallURL: "https://example.com",
		}})
	}

	err := Doctor(context.Background(), "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "doctor found problems")
	assert.Contains(t, err.Error(), "definitely-not-a-real-binary-7f3a")
}

func TestDoctor_LoginFailure(t *testing.T) {
	saveAndRestoreFactories(t)

	fake := fakes.NewFakeInfrastructure(testSubscriptionID, testTenantID)
	fake.FailWith("GetSubscription", errors.New("AADSTS700082: token expired"))
	useConfig(testConfig())
	useInfra(fake)
	passPrereqs()

	err := Doctor(context.Background(), "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "doctor found problems")
	assert.Contains(t, err.Error(), "azure login")
}

func TestDoctor_GitHubTokenInvalid(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := testConfig()
	cfg.GitHub.Repository = "octo/terraform-infra"
	cfg.GitHub.Token = "ghp_expired"
	fake := fakes.NewFakeInfrastructure(testSubscriptionID, testTenantID)
	useConfig(cfg)
	useInfra(fake)
	passPrereqs()
	pub := newMockPublisher()
	pub.authErr = errors.New("bad credentials")
	newPublisher = func(_ config.GitHubConfig) (github.SecretPublisher, error) {
		return pub, nil
	}

	err := Doctor(context.Background(), "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "github token")
}

func TestDoctor_GitHubHealthy(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := testConfig()
	cfg.GitHub.Repository = "octo/terraform-infra"
	cfg.GitHub.Token = "ghp_test"
	fake := fakes.NewFakeInfrastructure(testSubscriptionID, testTenantID)
	seedBackend(t, cfg, fake)
	useConfig(cfg)
	useInfra(fake)
	passPrereqs()
	newPublisher = func(_ config.GitHubConfig) (github.SecretPublisher, error) {
		return newMockPublisher(), nil
	}

	require.NoError(t, Doctor(context.Background(), "", false))
}

func TestDoctorReport_Failed(t *testing.T) {
	report := &DoctorReport{
		Prerequisites: []DoctorCheck{{Name: "az", OK: false, Required: true}},
		Resources:     []DoctorCheck{{Name: "resource group", OK: false}},
	}
	assert.Equal(t, []string{"az"}, report.failed())

	report.Prerequisites[0].OK = true
	assert.Empty(t, report.failed())
}

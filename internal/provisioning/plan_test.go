package provisioning

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfbackend/tfbackend/internal/config"
)

func planConfig() *config.Config {
	cfg := config.New()
	cfg.SubscriptionID = testSubscription
	cfg.ApplyDerived()
	return cfg
}

func TestBuildPlan_Order(t *testing.T) {
	t.Parallel()
	plan := BuildPlan(planConfig())

	types := make([]string, 0, len(plan.Items))
	for _, item := range plan.Items {
		types = append(types, item.Type)
	}
	assert.Equal(t, []string{
		"application",
		"service principal",
		"client secret",
		"resource group",
		"storage account",
		"blob container",
		"role assignment",
		"credentials file",
	}, types)
	assert.Equal(t, testSubscription, plan.SubscriptionID)
}

func TestBuildPlan_DerivedStorageAccount(t *testing.T) {
	t.Parallel()
	cfg := planConfig()
	plan := BuildPlan(cfg)

	var storageName string
	for _, item := range plan.Items {
		if item.Type == "storage account" {
			storageName = item.Name
		}
	}
	assert.Equal(t, cfg.StorageAccount, storageName)
	assert.NotEmpty(t, storageName)
}

func TestBuildPlan_WithPublishing(t *testing.T) {
	t.Parallel()
	cfg := planConfig()
	cfg.GitHub.Repository = "octo/terraform-live"

	plan := BuildPlan(cfg)

	var secrets []Item
	for _, item := range plan.Items {
		if item.Type == "actions secret" {
			secrets = append(secrets, item)
		}
	}
	require.Len(t, secrets, 4)
	for _, secret := range secrets {
		assert.Equal(t, ActionPublish, secret.Action)
		assert.Equal(t, "octo/terraform-live", secret.Detail)
	}
}

func TestBuildPlan_WithoutPublishing(t *testing.T) {
	t.Parallel()
	plan := BuildPlan(planConfig())

	for _, item := range plan.Items {
		assert.NotEqual(t, "actions secret", item.Type)
	}
}

func TestPlan_Render(t *testing.T) {
	t.Parallel()
	cfg := planConfig()
	out := BuildPlan(cfg).Render()

	assert.Contains(t, out, cfg.ResourceGroup)
	assert.Contains(t, out, cfg.StorageAccount)
	assert.Contains(t, out, cfg.Container)
	assert.Contains(t, out, string(ActionRotate))
	assert.Contains(t, out, testSubscription)
}

func TestPlan_JSON(t *testing.T) {
	t.Parallel()
	raw, err := BuildPlan(planConfig()).JSON()
	require.NoError(t, err)

	var decoded Plan
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, testSubscription, decoded.SubscriptionID)
	assert.Len(t, decoded.Items, 8)
}

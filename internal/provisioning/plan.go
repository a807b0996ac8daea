package provisioning

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tfbackend/tfbackend/internal/config"
	"github.com/tfbackend/tfbackend/internal/export"
	"github.com/tfbackend/tfbackend/internal/util/naming"
)

// Action describes what an apply run would do with a plan item.
type Action string

const (
	// ActionEnsure creates the resource when missing and adopts it when
	// present.
	ActionEnsure Action = "create if missing"
	// ActionRotate always issues a fresh value.
	ActionRotate Action = "rotate"
	// ActionWrite writes a local artifact.
	ActionWrite Action = "write"
	// ActionPublish pushes a value to the configured repository.
	ActionPublish Action = "publish"
)

// Item is one resource in the plan.
type Item struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Action Action `json:"action"`
	Detail string `json:"detail,omitempty"`
}

// Plan is the ordered resource list an apply run would converge, derived
// purely from resolved configuration. Building or rendering it performs no
// network calls.
type Plan struct {
	SubscriptionID string `json:"subscription_id"`
	Items          []Item `json:"resources"`
}

// BuildPlan derives the plan from cfg. The order matches the apply order.
func BuildPlan(cfg *config.Config) *Plan {
	items := []Item{
		{Type: "application", Name: cfg.IdentityName, Action: ActionEnsure},
		{Type: "service principal", Name: cfg.IdentityName, Action: ActionEnsure},
		{Type: "client secret", Name: naming.PasswordDisplayName(cfg.IdentityName), Action: ActionRotate, Detail: "fresh secret on every apply"},
		{Type: "resource group", Name: cfg.ResourceGroup, Action: ActionEnsure, Detail: cfg.Location},
		{Type: "storage account", Name: cfg.StorageAccount, Action: ActionEnsure, Detail: cfg.Location},
		{Type: "blob container", Name: cfg.Container, Action: ActionEnsure},
		{Type: "role assignment", Name: cfg.Role, Action: ActionEnsure, Detail: naming.SubscriptionScope(cfg.SubscriptionID)},
		{Type: "credentials file", Name: cfg.OutputFile, Action: ActionWrite},
	}

	if cfg.GitHub.Repository != "" {
		for _, key := range []string{
			export.KeyClientID,
			export.KeyClientSecret,
			export.KeySubscriptionID,
			export.KeyTenantID,
		} {
			items = append(items, Item{
				Type:   "actions secret",
				Name:   key,
				Action: ActionPublish,
				Detail: cfg.GitHub.Repository,
			})
		}
	}

	return &Plan{SubscriptionID: cfg.SubscriptionID, Items: items}
}

// Render returns the human-readable plan listing.
func (p *Plan) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan for subscription %s:\n", p.SubscriptionID)
	for _, item := range p.Items {
		fmt.Fprintf(&b, "  %-18s %-44s %s", item.Type, item.Name, item.Action)
		if item.Detail != "" {
			fmt.Fprintf(&b, " (%s)", item.Detail)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// JSON returns the machine-readable plan.
func (p *Plan) JSON() (string, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal plan: %w", err)
	}
	return string(data) + "\n", nil
}

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tfbackend/tfbackend/internal/config"
	"github.com/tfbackend/tfbackend/internal/platform/azure"
	"github.com/tfbackend/tfbackend/internal/util/naming"
)

// DoctorCheck is one diagnostic probe result.
type DoctorCheck struct {
	Name string `json:"name"`
	// OK reports whether the probe passed. For resource probes OK means
	// the resource exists; absence is informational, not a failure.
	OK bool `json:"ok"`
	// Required marks checks that fail the doctor run when not OK.
	Required bool   `json:"required"`
	Detail   string `json:"detail,omitempty"`
}

// DoctorReport groups the probe results.
type DoctorReport struct {
	SubscriptionID string        `json:"subscription_id"`
	Prerequisites  []DoctorCheck `json:"prerequisites"`
	Session        []DoctorCheck `json:"session"`
	Resources      []DoctorCheck `json:"resources"`
	Publishing     []DoctorCheck `json:"publishing,omitempty"`
}

// failed returns the names of required checks that did not pass.
func (r *DoctorReport) failed() []string {
	var names []string
	for _, group := range [][]DoctorCheck{r.Prerequisites, r.Session, r.Resources, r.Publishing} {
		for _, check := range group {
			if check.Required && !check.OK {
				names = append(names, check.Name)
			}
		}
	}
	return names
}

// Doctor runs environment and backend diagnostics.
//
// Local prerequisites come first; the control-plane probes only run when
// the Azure session works. Missing resources are reported but do not
// fail the run, since doctor is expected to be useful before the first
// apply. A failed required check returns an error so the process exits 1.
func Doctor(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	report := &DoctorReport{SubscriptionID: cfg.SubscriptionID}
	report.Prerequisites = checkTools()

	if prereqsOK(report.Prerequisites) {
		probeAzure(ctx, cfg, report)
	}

	if cfg.GitHub.Repository != "" {
		report.Publishing = probeGitHub(ctx, cfg)
	}

	if jsonOutput {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Println(string(data))
	} else {
		printDoctorReport(report)
	}

	if failed := report.failed(); len(failed) > 0 {
		return fmt.Errorf("doctor found problems: %s", strings.Join(failed, ", "))
	}
	return nil
}

// checkTools probes the local toolchain.
func checkTools() []DoctorCheck {
	var checks []DoctorCheck
	for _, result := range checkDefaultPrereqs().Results {
		check := DoctorCheck{
			Name:     result.Tool.Name,
			OK:       result.Found,
			Required: result.Tool.Required,
			Detail:   result.Version,
		}
		if !result.Found {
			check.Detail = "not found in PATH; see " + result.Tool.InstallURL
		}
		checks = append(checks, check)
	}
	return checks
}

func prereqsOK(checks []DoctorCheck) bool {
	for _, check := range checks {
		if check.Required && !check.OK {
			return false
		}
	}
	return true
}

// probeAzure verifies the session and probes each planned resource.
func probeAzure(ctx context.Context, cfg *config.Config, report *DoctorReport) {
	infra, err := newInfraClient(cfg)
	if err != nil {
		report.Session = append(report.Session, DoctorCheck{
			Name: "azure client", Required: true, Detail: err.Error(),
		})
		return
	}

	sub, err := infra.GetSubscription(ctx)
	if err != nil {
		report.Session = append(report.Session, DoctorCheck{
			Name: "azure login", Required: true,
			Detail: fmt.Sprintf("subscription not reachable (run 'az login'): %v", err),
		})
		return
	}
	detail := cfg.SubscriptionID
	if sub.DisplayName != nil {
		detail = *sub.DisplayName
	}
	report.Session = append(report.Session, DoctorCheck{
		Name: "azure login", OK: true, Required: true, Detail: detail,
	})

	report.Resources = probeResources(ctx, cfg, infra)
}

// probeResources checks each planned resource for existence.
func probeResources(ctx context.Context, cfg *config.Config, infra azure.InfrastructureManager) []DoctorCheck {
	var checks []DoctorCheck

	identity, err := infra.GetIdentity(ctx, cfg.IdentityName)
	checks = append(checks, existenceCheck("identity "+cfg.IdentityName, identity != nil, err))

	group, err := infra.GetResourceGroup(ctx, cfg.ResourceGroup)
	checks = append(checks, existenceCheck("resource group "+cfg.ResourceGroup, group != nil, err))

	account, err := infra.GetStorageAccount(ctx, cfg.ResourceGroup, cfg.StorageAccount)
	checks = append(checks, existenceCheck("storage account "+cfg.StorageAccount, account != nil, err))

	if account != nil {
		key, err := infra.GetStorageAccountKey(ctx, cfg.ResourceGroup, cfg.StorageAccount)
		if err == nil {
			exists, err := infra.BlobContainerExists(ctx, cfg.StorageAccount, key, cfg.Container)
			checks = append(checks, existenceCheck("container "+cfg.Container, exists, err))
		} else {
			checks = append(checks, existenceCheck("container "+cfg.Container, false, err))
		}
	}

	if identity != nil && identity.ServicePrincipalID != "" {
		scope := naming.SubscriptionScope(cfg.SubscriptionID)
		assigned, err := infra.HasRoleAssignment(ctx, scope, cfg.Role, identity.ServicePrincipalID)
		checks = append(checks, existenceCheck("role assignment "+cfg.Role, assigned, err))
	}

	return checks
}

func existenceCheck(name string, exists bool, err error) DoctorCheck {
	check := DoctorCheck{Name: name, OK: exists}
	if err != nil {
		check.Detail = err.Error()
	} else if !exists {
		check.Detail = "not provisioned yet"
	}
	return check
}

// probeGitHub verifies the publishing configuration.
func probeGitHub(ctx context.Context, cfg *config.Config) []DoctorCheck {
	if err := cfg.RequireGitHub(); err != nil {
		return []DoctorCheck{{Name: "github token", Required: true, Detail: err.Error()}}
	}

	pub, err := newPublisher(cfg.GitHub)
	if err != nil {
		return []DoctorCheck{{Name: "github token", Required: true, Detail: err.Error()}}
	}

	var checks []DoctorCheck
	login, err := pub.VerifyAuth(ctx)
	if err != nil {
		return append(checks, DoctorCheck{Name: "github token", Required: true, Detail: err.Error()})
	}
	checks = append(checks, DoctorCheck{Name: "github token", OK: true, Required: true, Detail: "authenticated as " + login})

	check := DoctorCheck{Name: "repository " + pub.Repository(), Required: true}
	if err := pub.CheckRepository(ctx); err != nil {
		check.Detail = err.Error()
	} else {
		check.OK = true
	}
	return append(checks, check)
}

// printDoctorReport renders the report for a terminal.
func printDoctorReport(report *DoctorReport) {
	fmt.Println()
	fmt.Println(titleStyle.Render("tfbackend doctor"))
	fmt.Println(dimStyle.Render("  subscription " + report.SubscriptionID))

	printCheckSection("Prerequisites", report.Prerequisites)
	printCheckSection("Azure session", report.Session)
	printCheckSection("Resources", report.Resources)
	printCheckSection("Publishing", report.Publishing)
	fmt.Println()
}

func printCheckSection(title string, checks []DoctorCheck) {
	if len(checks) == 0 {
		return
	}
	fmt.Println()
	fmt.Println(sectionStyle.Render("  " + title))
	fmt.Println("  " + strings.Repeat("─", 35))
	for _, check := range checks {
		mark := okStyle.Render(checkMark)
		if !check.OK {
			mark = crossMark
			if !check.Required {
				mark = dimStyle.Render("[--]")
			}
		}
		line := fmt.Sprintf("  %s %s", mark, check.Name)
		if check.Detail != "" {
			line += " " + dimStyle.Render("("+check.Detail+")")
		}
		fmt.Println(line)
	}
}

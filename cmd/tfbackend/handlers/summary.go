package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tfbackend/tfbackend/internal/config"
	"github.com/tfbackend/tfbackend/internal/export"
	"github.com/tfbackend/tfbackend/internal/provisioning"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")

	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	okStyle      = lipgloss.NewStyle().Foreground(colorGreen)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	checkMark = "[OK]"
	crossMark = "[!!]"
)

// printApplySuccess outputs the converged backend summary and next steps.
// The client secret only appears in masked form; the real value lives in
// the credentials file.
func printApplySuccess(cfg *config.Config, state *provisioning.State, creds *export.Credentials, published bool) {
	masked := creds.Masked()

	fmt.Println()
	fmt.Println(titleStyle.Render("Backend ready"))
	fmt.Println()

	fmt.Println(sectionStyle.Render("  Resources"))
	fmt.Println("  " + strings.Repeat("─", 35))
	printResourceRow("Resource group", cfg.ResourceGroup, state.ResourceGroupCreated)
	printResourceRow("Storage account", cfg.StorageAccount, state.StorageAccountCreated)
	printResourceRow("Container", cfg.Container, state.ContainerCreated)
	printResourceRow("Identity", cfg.IdentityName, state.IdentityCreated)
	printResourceRow("Role assignment", cfg.Role, state.RoleAssignmentCreated)
	fmt.Println()

	fmt.Println(sectionStyle.Render("  Credentials"))
	fmt.Println("  " + strings.Repeat("─", 35))
	for _, pair := range masked.Pairs() {
		fmt.Printf("  %-23s %s\n", pair[0], pair[1])
	}
	fmt.Printf("\n  Written to %s\n", cfg.OutputFile)
	if published {
		fmt.Printf("  Published to %s as Actions secrets\n", cfg.GitHub.Repository)
	}
	fmt.Println()

	fmt.Println(sectionStyle.Render("  Terraform backend block"))
	fmt.Println()
	fmt.Print(indent(export.BackendBlock(cfg.ResourceGroup, cfg.StorageAccount, cfg.Container), "  "))
	fmt.Println()

	fmt.Println(dimStyle.Render("  Load the credentials into your shell with:"))
	fmt.Println(dimStyle.Render("    eval \"$(tfbackend export)\""))
	fmt.Println()
}

func printResourceRow(label, name string, created bool) {
	status := "exists"
	if created {
		status = "created"
	}
	fmt.Printf("  %s %-17s %s %s\n", okStyle.Render(checkMark), label, name, dimStyle.Render("("+status+")"))
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

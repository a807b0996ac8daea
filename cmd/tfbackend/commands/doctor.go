package commands

import (
	"github.com/spf13/cobra"

	"github.com/tfbackend/tfbackend/cmd/tfbackend/handlers"
)

// Doctor returns the command for diagnosing the backend setup.
//
// Doctor checks local prerequisites (the az binary), the Azure session
// (subscription reachable), and probes each planned resource for
// existence. When publishing is configured it also verifies the GitHub
// token and repository.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: tfbackend.yaml)
//	--json: Machine-readable output
func Doctor() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites and backend resource status",
		Long: `Check prerequisites and the current state of the backend.

Doctor runs the checks apply depends on, then probes the control plane
for each planned resource:

  - az binary available in PATH
  - Azure login and subscription access
  - identity, resource group, storage account, container, role assignment
  - GitHub token and repository (when publishing is configured)

The exit code is 0 when every required check passes and 1 otherwise,
so doctor can gate CI pipelines.

Examples:
  tfbackend doctor
  tfbackend doctor --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: tfbackend.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")

	return cmd
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/tfbackend/tfbackend/cmd/tfbackend/handlers"
)

// Plan returns the command for printing the derived resource plan.
//
// The plan is computed purely from resolved configuration: no Azure or
// GitHub call is made. It shows the final resource names an apply run
// would converge, including the derived storage account name.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: tfbackend.yaml)
//	--json: Machine-readable output
func Plan() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the resources an apply run would converge",
		Long: `Show the resources an apply run would converge.

The plan lists every resource in apply order with its final name and the
action taken: existing resources are adopted, missing ones created, and
the client secret is rotated on every run.

No network calls are made; the plan is derived from configuration alone.

Examples:
  # Plan using tfbackend.yaml in the current directory
  tfbackend plan

  # Plan from a specific config file, as JSON
  tfbackend plan -c production.yaml --json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Plan(configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: tfbackend.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the plan as JSON")

	return cmd
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/tfbackend/tfbackend/cmd/tfbackend/handlers"
)

// Export returns the command for printing credentials as shell exports.
//
// Export reads the credentials file written by apply and prints it in
// a consumable form. The default format is eval-able shell export
// lines; --format json emits a JSON object instead.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: tfbackend.yaml)
//	--input, -i: Credentials file to read (default: from config)
//	--format: Output format, env or json (default: env)
func Export() *cobra.Command {
	var (
		configPath string
		inputPath  string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print backend credentials for the current shell",
		Long: `Print backend credentials in a shell- or machine-consumable form.

The env format prints export lines for the four ARM_* variables, ready
for eval:

  eval "$(tfbackend export)"
  terraform init

The json format prints the same four values as a JSON object.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Export(configPath, inputPath, format)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: tfbackend.yaml)")
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Credentials file to read (default: from config)")
	cmd.Flags().StringVar(&format, "format", "env", "Output format: env or json")

	return cmd
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/tfbackend/tfbackend/cmd/tfbackend/handlers"
	"github.com/tfbackend/tfbackend/internal/config"
)

// Init returns the command for interactively creating a configuration file.
//
// This command guides users through creating a tfbackend configuration YAML
// file using an interactive wizard with text inputs, selects, and confirms.
//
// Flags:
//
//	--output, -o: Path to output file (default "tfbackend.yaml")
//	--force, -f: Overwrite an existing file without asking
func Init() *cobra.Command {
	var (
		outputPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a backend configuration",
		Long: `Interactively create a backend configuration file.

This command guides you through configuring the Terraform backend
step by step. It will ask about:

  - The Azure subscription (and optionally tenant)
  - The resource group, storage account, and container names
  - The automation identity (service principal) and its role
  - Optional publishing of credentials as GitHub Actions secrets

Values left at their defaults are written out explicitly so the file
documents the full configuration. The storage account name may be left
empty to get a deterministic name derived from the subscription.

The wizard requires an interactive terminal. In CI, write the YAML file
directly or rely on environment variables instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, force)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultPath, "Output file path")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file without asking")

	return cmd
}

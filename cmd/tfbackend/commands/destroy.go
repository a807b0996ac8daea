package commands

import (
	"github.com/spf13/cobra"

	"github.com/tfbackend/tfbackend/cmd/tfbackend/handlers"
)

// Destroy returns the destroy command.
//
// The destroy command removes all backend resources from Azure.
// It deletes resources in dependency order: role assignments, the
// application and service principal, then the resource group (which
// takes the storage account and container with it).
func Destroy() *cobra.Command {
	var (
		configPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Destroy the Terraform backend and its identity",
		Long: `Destroy removes all backend resources from Azure.

This command deletes all resources associated with the backend:
  - Role assignments held by the automation identity
  - The application and service principal
  - The resource group, including the storage account and container

Resources already absent are skipped, so destroy can be re-run after a
partial failure. A confirmation prompt is shown unless --force is given;
non-interactive runs must pass --force.

Example:
  tfbackend destroy -c tfbackend.yaml --force

WARNING: This operation is irreversible. All Terraform state stored in
the backend will be lost.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath, force)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: tfbackend.yaml)")
	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}

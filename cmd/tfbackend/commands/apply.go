package commands

import (
	"github.com/spf13/cobra"

	"github.com/tfbackend/tfbackend/cmd/tfbackend/handlers"
)

// Apply returns the command for provisioning the Terraform backend.
//
// This command handles the complete bootstrap workflow: loading
// configuration, ensuring the automation identity, creating the storage
// backend, assigning the role, and writing the credentials file.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: tfbackend.yaml)
//	--output, -o: Override the credentials file path
//	--publish: Also publish the credentials as GitHub Actions secrets
//	--force-recreate: Delete and recreate the identity instead of rotating its secret
//
// Environment variables:
//
//	AZURE_SUBSCRIPTION_ID: Azure subscription (required unless configured)
//	GITHUB_TOKEN: GitHub API token (required with --publish)
func Apply() *cobra.Command {
	var opts handlers.ApplyOptions

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create or update the Terraform backend",
		Long: `Create or update the Azure Terraform remote-state backend.

This command provisions the service principal, resource group, storage
account, blob container, and role assignment, then writes the four
backend credentials to a local file. Existing resources are adopted,
so re-running apply is safe: the only side effect of a re-run against
a converged backend is a fresh client secret.

If no config file is specified, it looks for tfbackend.yaml in the
current directory. Use 'tfbackend init' to create a configuration file.

Examples:
  # Provision using tfbackend.yaml in the current directory
  tfbackend apply

  # Provision and push the credentials to GitHub Actions secrets
  tfbackend apply --publish

  # Replace a compromised identity entirely
  tfbackend apply --force-recreate`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: tfbackend.yaml)")
	cmd.Flags().StringVarP(&opts.OutputFile, "output", "o", "", "Credentials file path (default: from config)")
	cmd.Flags().BoolVar(&opts.Publish, "publish", false, "Publish credentials as GitHub Actions secrets")
	cmd.Flags().BoolVar(&opts.ForceRecreate, "force-recreate", false, "Delete and recreate the identity instead of rotating its secret")

	return cmd
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/tfbackend/tfbackend/cmd/tfbackend/handlers"
)

// Publish returns the command for pushing credentials to GitHub.
//
// Publish reads a previously written credentials file and uploads all
// four values as GitHub Actions repository secrets. It is the re-run
// path for 'apply --publish': publishing can be repeated without
// touching Azure.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: tfbackend.yaml)
//	--input, -i: Credentials file to read (default: from config)
//
// Environment variables:
//
//	GITHUB_TOKEN: GitHub API token (required)
//	GITHUB_REPOSITORY: Target repository in owner/name form
func Publish() *cobra.Command {
	var (
		configPath string
		inputPath  string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish backend credentials as GitHub Actions secrets",
		Long: `Publish backend credentials as GitHub Actions repository secrets.

The credentials file written by apply is read back and each of the four
values is uploaded under its ARM_* name. The token and repository are
verified before any secret is written; a failure on any field aborts
the run, since workflows need the complete set.

Examples:
  # Publish the default credentials file
  tfbackend publish

  # Publish a specific file
  tfbackend publish -i production.env`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Publish(cmd.Context(), configPath, inputPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: tfbackend.yaml)")
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Credentials file to read (default: from config)")

	return cmd
}

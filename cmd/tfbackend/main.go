// Package main is the entry point for the tfbackend CLI.
//
// tfbackend is a command-line tool for bootstrapping an Azure Terraform
// remote-state backend: a storage account with a blob container for the
// state, a service principal for automation access, and optionally the
// service principal's credentials published as GitHub Actions secrets.
//
// Commands: init, plan, apply, destroy, doctor, publish, export.
//
// For detailed usage information, run:
//
//	tfbackend --help
package main

import (
	"fmt"
	"os"

	"github.com/tfbackend/tfbackend/cmd/tfbackend/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

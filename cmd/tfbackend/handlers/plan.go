package handlers

import (
	"fmt"

	"github.com/tfbackend/tfbackend/internal/provisioning"
)

// Plan resolves the configuration and prints the derived resource plan.
// It is pure: no Azure or GitHub client is constructed.
func Plan(configPath string, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	plan := provisioning.BuildPlan(cfg)

	if jsonOutput {
		out, err := plan.JSON()
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	}

	fmt.Print(plan.Render())
	return nil
}

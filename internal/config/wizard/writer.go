package wizard

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tfbackend/tfbackend/internal/config"
)

// confirmOverwrite asks before replacing an existing file. Variable for
// test injection.
var confirmOverwrite = func(path string) (bool, error) {
	fmt.Printf("File %s already exists. Overwrite? [y/N]: ", path)
	var answer string
	_, _ = fmt.Scanln(&answer)
	return answer == "y" || answer == "Y", nil
}

// FileExists reports whether a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ConfirmOverwrite asks the user for confirmation before overwriting an
// existing configuration file.
func ConfirmOverwrite(path string) (bool, error) {
	return confirmOverwrite(path)
}

// WriteConfig marshals the configuration to YAML and writes it to the
// given path with a generated header.
func WriteConfig(cfg *config.Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	content := generateHeader() + string(data)

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func generateHeader() string {
	return `# tfbackend configuration
#
# Provision the backend with:
#   tfbackend apply --config <this file>
#
# The GitHub token for secret publishing is never stored here;
# set GITHUB_TOKEN in the environment instead.

`
}

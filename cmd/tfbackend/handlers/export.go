package handlers

import (
	"fmt"
)

// Export reads the credentials file and prints it in the requested
// format. The env format is eval-able shell export lines; json is a
// plain object. Both carry the real secret, which is the point of the
// command; summaries elsewhere stay masked.
func Export(configPath, inputPath, format string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if inputPath == "" {
		inputPath = cfg.OutputFile
	}
	creds, err := readCredentialsFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read credentials from %s: %w\nRun 'tfbackend apply' first", inputPath, err)
	}

	switch format {
	case "env":
		fmt.Print(creds.ExportLines())
	case "json":
		out, err := creds.JSON()
		if err != nil {
			return err
		}
		fmt.Print(out)
	default:
		return fmt.Errorf("unknown format %q: expected env or json", format)
	}
	return nil
}

package export

import (
	"fmt"
	"os"
	"strings"
)

// writeFile writes the rendered credentials. Variable for test injection.
var writeFile = os.WriteFile

// WriteFile writes the credentials file in a single 0600 write.
func (c *Credentials) WriteFile(path string) error {
	if err := writeFile(path, []byte(c.EnvFileContent()), 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file %s: %w", path, err)
	}
	return nil
}

// ReadFile parses a previously written credentials file. Files that do not
// contain exactly the four expected keys are rejected.
func ReadFile(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file %s: %w", path, err)
	}

	credentials, err := parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("invalid credentials file %s: %w", path, err)
	}
	return credentials, nil
}

func parse(content string) (*Credentials, error) {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(lines) != 4 {
		return nil, fmt.Errorf("expected exactly 4 lines, found %d", len(lines))
	}

	credentials := &Credentials{}
	seen := make(map[string]bool, 4)
	for i, line := range lines {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d is not KEY=VALUE", i+1)
		}
		if seen[key] {
			return nil, fmt.Errorf("duplicate key %s on line %d", key, i+1)
		}
		if value == "" {
			return nil, fmt.Errorf("empty value for %s on line %d", key, i+1)
		}
		seen[key] = true

		switch key {
		case KeyClientID:
			credentials.ClientID = value
		case KeyClientSecret:
			credentials.ClientSecret = value
		case KeySubscriptionID:
			credentials.SubscriptionID = value
		case KeyTenantID:
			credentials.TenantID = value
		default:
			return nil, fmt.Errorf("unexpected key %q on line %d", key, i+1)
		}
	}

	return credentials, nil
}

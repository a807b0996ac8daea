package export

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Environment variable names consumed by the Terraform azurerm provider
// and backend.
const (
	KeyClientID       = "ARM_CLIENT_ID"
	KeyClientSecret   = "ARM_CLIENT_SECRET"
	KeySubscriptionID = "ARM_SUBSCRIPTION_ID"
	KeyTenantID       = "ARM_TENANT_ID"
)

// maskedSecret replaces the client secret in any terminal summary.
const maskedSecret = "********"

// Credentials are the values Terraform needs to authenticate against the
// backend as the bootstrap identity.
type Credentials struct {
	ClientID       string
	ClientSecret   string
	SubscriptionID string
	TenantID       string
}

// Pairs returns the credentials as name/value pairs in file order.
func (c *Credentials) Pairs() [4][2]string {
	return [4][2]string{
		{KeyClientID, c.ClientID},
		{KeyClientSecret, c.ClientSecret},
		{KeySubscriptionID, c.SubscriptionID},
		{KeyTenantID, c.TenantID},
	}
}

// EnvFileContent renders the credentials as exactly four KEY=VALUE lines
// with a trailing newline.
func (c *Credentials) EnvFileContent() string {
	var b strings.Builder
	for _, pair := range c.Pairs() {
		b.WriteString(pair[0])
		b.WriteByte('=')
		b.WriteString(pair[1])
		b.WriteByte('\n')
	}
	return b.String()
}

// ExportLines renders the credentials as eval-able shell export lines.
// Values are single-quoted so secrets with shell metacharacters survive.
func (c *Credentials) ExportLines() string {
	var b strings.Builder
	for _, pair := range c.Pairs() {
		b.WriteString("export ")
		b.WriteString(pair[0])
		b.WriteByte('=')
		b.WriteString(shellQuote(pair[1]))
		b.WriteByte('\n')
	}
	return b.String()
}

// JSON renders the credentials as a JSON object keyed by the ARM_*
// variable names.
func (c *Credentials) JSON() (string, error) {
	payload := struct {
		ClientID       string `json:"ARM_CLIENT_ID"`
		ClientSecret   string `json:"ARM_CLIENT_SECRET"`
		SubscriptionID string `json:"ARM_SUBSCRIPTION_ID"`
		TenantID       string `json:"ARM_TENANT_ID"`
	}{c.ClientID, c.ClientSecret, c.SubscriptionID, c.TenantID}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal credentials: %w", err)
	}
	return string(data) + "\n", nil
}

// Masked returns a copy safe for terminal summaries. Only the client
// secret is sensitive; the ids are plain resource identifiers.
func (c *Credentials) Masked() Credentials {
	masked := *c
	if masked.ClientSecret != "" {
		masked.ClientSecret = maskedSecret
	}
	return masked
}

// Validate checks that every field is populated.
func (c *Credentials) Validate() error {
	for _, pair := range c.Pairs() {
		if pair[1] == "" {
			return fmt.Errorf("credentials are missing %s", pair[0])
		}
	}
	return nil
}

// shellQuote wraps s in single quotes, escaping embedded single quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

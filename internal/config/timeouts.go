package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	StorageCreate     time.Duration // Timeout for storage account creation
	Delete            time.Duration // Timeout for all delete operations
	PollFrequency     time.Duration // Polling frequency for long-running ARM operations
	RetryMaxAttempts  int           // Maximum number of retry attempts
	RetryInitialDelay time.Duration // Initial delay between retries
	RetryMaxDelay     time.Duration // Ceiling for backoff delays
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - TFBACKEND_TIMEOUT_STORAGE_CREATE (default: 5m)
//   - TFBACKEND_TIMEOUT_DELETE (default: 10m)
//   - TFBACKEND_POLL_FREQUENCY (default: 5s)
//   - TFBACKEND_RETRY_MAX_ATTEMPTS (default: 6)
//   - TFBACKEND_RETRY_INITIAL_DELAY (default: 2s)
//   - TFBACKEND_RETRY_MAX_DELAY (default: 30s)
//
// The retry values bound the wait for Azure AD propagation: with the
// defaults the role assignment is attempted for roughly two minutes before
// giving up, replacing the fixed 30 second sleep the workflow used to need.
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		StorageCreate:     parseDuration("TFBACKEND_TIMEOUT_STORAGE_CREATE", 5*time.Minute),
		Delete:            parseDuration("TFBACKEND_TIMEOUT_DELETE", 10*time.Minute),
		PollFrequency:     parseDuration("TFBACKEND_POLL_FREQUENCY", 5*time.Second),
		RetryMaxAttempts:  parseInt("TFBACKEND_RETRY_MAX_ATTEMPTS", 6),
		RetryInitialDelay: parseDuration("TFBACKEND_RETRY_INITIAL_DELAY", 2*time.Second),
		RetryMaxDelay:     parseDuration("TFBACKEND_RETRY_MAX_DELAY", 30*time.Second),
	}
}

// TestTimeouts returns short timeouts suitable for tests. Retries back off
// within milliseconds so failure paths stay fast.
func TestTimeouts() *Timeouts {
	return &Timeouts{
		StorageCreate:     5 * time.Second,
		Delete:            5 * time.Second,
		PollFrequency:     10 * time.Millisecond,
		RetryMaxAttempts:  3,
		RetryInitialDelay: 1 * time.Millisecond,
		RetryMaxDelay:     5 * time.Millisecond,
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}

// Package config defines the configuration model for the backend bootstrap.
//
// The [Config] struct is the canonical representation of the desired
// end-state: which resource group, storage account, and container to
// converge on, which identity to create or rotate, and where credentials
// go afterwards. It is populated from layered sources (defaults, optional
// YAML file, environment, command-line flags) and validated exactly once
// before any control-plane call is made.
package config

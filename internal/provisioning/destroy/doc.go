// Package destroy tears down everything the tool manages.
//
// Deletion runs in reverse dependency order: role assignments first (they
// reference the service principal), then the application, then the
// resource group, which takes the storage account and container with it.
// Every step treats an already-absent resource as success, so destroy is
// as re-runnable as apply.
package destroy

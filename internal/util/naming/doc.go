// Package naming provides consistent naming functions for Azure resources.
//
// Storage account names are globally scoped in Azure and restricted to 3-24
// lowercase alphanumeric characters, so the default name is derived
// deterministically from the subscription and resource group. Re-running the
// bootstrap with the same configuration always converges on the same account.
package naming

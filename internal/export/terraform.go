package export

import "fmt"

// StateKey is the default blob name Terraform stores its state under.
const StateKey = "terraform.tfstate"

// BackendBlock renders a ready-to-paste Terraform backend configuration
// for the provisioned resources. It contains names only, no secrets; the
// access credentials come from the ARM_* environment.
func BackendBlock(resourceGroup, storageAccount, container string) string {
	return fmt.Sprintf(`terraform {
  backend "azurerm" {
    resource_group_name  = %q
    storage_account_name = %q
    container_name       = %q
    key                  = %q
  }
}
`, resourceGroup, storageAccount, container, StateKey)
}

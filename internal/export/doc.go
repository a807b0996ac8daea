// Package export renders harvested backend credentials for consumption by
// Terraform and CI systems.
//
// Credentials hold the four ARM_* values the azurerm provider and backend
// read from the environment. They can be rendered as a KEY=VALUE file,
// as eval-able shell export lines, or as JSON. The client secret is
// write-once-visible upstream, so the file written here is the only place
// it can be recovered from later.
package export

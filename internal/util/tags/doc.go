// Package tags provides consistent tagging for Azure resources.
//
// Every resource the bootstrap creates carries a managed-by tag plus a
// purpose tag, so provisioned resources are identifiable in the portal and
// safe to clean up as a group.
package tags

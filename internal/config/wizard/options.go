package wizard

import "github.com/charmbracelet/huh"

// LocationOption represents an Azure region.
type LocationOption struct {
	Value       string
	Label       string
	Description string
}

// Locations contains commonly used Azure regions. The config file accepts
// any region; the wizard just offers the popular ones.
var Locations = []LocationOption{
	{Value: "westeurope", Label: "westeurope", Description: "Netherlands"},
	{Value: "northeurope", Label: "northeurope", Description: "Ireland"},
	{Value: "germanywestcentral", Label: "germanywestcentral", Description: "Frankfurt, Germany"},
	{Value: "uksouth", Label: "uksouth", Description: "London, UK"},
	{Value: "eastus", Label: "eastus", Description: "Virginia, USA"},
	{Value: "eastus2", Label: "eastus2", Description: "Virginia, USA"},
	{Value: "westus2", Label: "westus2", Description: "Washington, USA"},
	{Value: "southeastasia", Label: "southeastasia", Description: "Singapore"},
	{Value: "australiaeast", Label: "australiaeast", Description: "New South Wales, Australia"},
}

// Roles contains the RBAC roles the wizard offers for the bootstrap
// identity. Contributor matches what Terraform needs for general use;
// the narrower blob role is enough when the identity only manages state.
var Roles = []huh.Option[string]{
	huh.NewOption("Contributor (manage all resources)", "Contributor"),
	huh.NewOption("Storage Blob Data Contributor (state access only)", "Storage Blob Data Contributor"),
	huh.NewOption("Owner (manage resources and access)", "Owner"),
}

// LocationsToOptions converts the region list to huh select options.
func LocationsToOptions() []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(Locations))
	for _, loc := range Locations {
		options = append(options, huh.NewOption(loc.Label+" - "+loc.Description, loc.Value))
	}
	return options
}

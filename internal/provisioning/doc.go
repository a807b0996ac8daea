// Package provisioning provides shared types, interfaces, and orchestration
// for converging the Terraform backend infrastructure.
//
// # Subpackages
//
//   - identity/ — Entra ID application, service principal, secret rotation
//   - backend/ — Resource group, storage account, blob container
//   - access/ — Role assignment binding the identity to the subscription
//   - destroy/ — Teardown of everything the tool manages
//
// # Core Types
//
// Context carries configuration, state, the infrastructure client, and the
// observer. Phase defines one provisioning step with Name() and Provision()
// methods. State accumulates results across phases (identity, secret,
// storage access key) and assembles the exported credentials at the end.
package provisioning

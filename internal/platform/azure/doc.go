// Package azure wraps the Azure control plane APIs used to provision a
// Terraform remote state backend.
//
// The package exposes small per-concern interfaces (resource groups,
// storage, blob containers, directory identities, role assignments) that
// are implemented by RealClient against the Azure SDK. Consumers depend
// on the interfaces so tests can substitute fakes.
//
// All Ensure* methods are idempotent: they converge on the desired state
// and report whether the resource was created by this call. A concurrent
// creation of the same resource is detected and treated as convergence,
// not as a failure.
package azure

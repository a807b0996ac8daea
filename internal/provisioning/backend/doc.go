// Package backend converges the state storage: resource group, storage
// account, access key, and blob container.
//
// It runs between the identity and access phases, which buys the freshly
// created service principal extra propagation time before the first role
// assignment attempt.
package backend

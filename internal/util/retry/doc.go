// Package retry provides exponential backoff retry logic for transient failures.
//
// [WithExponentialBackoff] retries an operation with configurable max attempts,
// initial delay, and maximum delay. It is used to wait out Azure AD propagation
// delays (a freshly created service principal is not immediately visible to the
// authorization API) and other transiently failing control-plane calls.
package retry

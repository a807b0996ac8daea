// Package access grants the bootstrap identity its RBAC role at
// subscription scope.
//
// Role assignment is the step most exposed to directory propagation
// delay: a principal created moments ago may not be visible to ARM yet,
// so the underlying client retries PrincipalNotFound with backoff.
package access

// Package identity converges the bootstrap identity in Entra ID.
//
// The phase resolves the tenant, ensures the application and its service
// principal exist, rotates the client secret (the directory never returns
// an existing secret, so every run issues a fresh one), and waits until
// the principal is readable before later phases bind roles to it.
package identity

// Package github publishes backend credentials as GitHub Actions
// repository secrets.
//
// Secret values are sealed client side to the repository public key, as
// the Actions secrets API requires, so plaintext never leaves the
// process. The SecretPublisher interface is what the rest of the code
// consumes; Client is the real implementation on top of the GitHub API.
package github

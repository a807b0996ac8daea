package github

import (
	"errors"
	"net/http"

	gh "github.com/google/go-github/v50/github"
)

var (
	// ErrUnauthorized means GitHub rejected the token. The token needs the
	// repo scope (classic) or secrets write permission (fine-grained).
	ErrUnauthorized = errors.New("github rejected the token, check GITHUB_TOKEN and its scopes")

	// ErrRepositoryNotFound covers both a misspelled owner/name and a
	// token that cannot see the repository.
	ErrRepositoryNotFound = errors.New("github repository not found, check the owner/name spelling and token access")
)

// parseResponse maps API failures onto the package sentinels so callers
// can give actionable guidance instead of raw HTTP status lines.
func parseResponse(resp *gh.Response, err error) error {
	if err == nil {
		return nil
	}
	if resp == nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrRepositoryNotFound
	default:
		return err
	}
}

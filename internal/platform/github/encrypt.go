package github

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	gh "github.com/google/go-github/v50/github"
	"golang.org/x/crypto/nacl/box"
)

// sealSecret encrypts value the way the Actions secrets API expects: an
// anonymous NaCl sealed box against the repository public key, base64
// encoded.
func sealSecret(key *gh.PublicKey, name, value string) (*gh.EncryptedSecret, error) {
	raw, err := base64.StdEncoding.DecodeString(key.GetKey())
	if err != nil {
		return nil, fmt.Errorf("failed to decode repository public key: %w", err)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("repository public key is %d bytes, want 32", len(raw))
	}
	var recipient [32]byte
	copy(recipient[:], raw)

	sealed, err := box.SealAnonymous(nil, []byte(value), &recipient, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to seal secret value: %w", err)
	}

	return &gh.EncryptedSecret{
		Name:           name,
		KeyID:          key.GetKeyID(),
		EncryptedValue: base64.StdEncoding.EncodeToString(sealed),
	}, nil
}

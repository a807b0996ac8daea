package github

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"sync"
	"testing"

	gh "github.com/google/go-github/v50/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/nacl/box"

	"github.com/tfbackend/tfbackend/internal/config"
	"github.com/tfbackend/tfbackend/internal/export"
)

const testRepository = "octo/terraform-live"

// newTestPublisher builds a Client talking to a local test server. Tests
// register handlers on the returned mux.
func newTestPublisher(t *testing.T) (*http.ServeMux, *Client) {
	t.Helper()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	api := gh.NewClient(nil)
	base, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	api.BaseURL = base
	api.UploadURL = base

	client, err := NewClient(
		config.GitHubConfig{Repository: testRepository, Token: "test-token"},
		WithGitHubClient(api),
	)
	require.NoError(t, err)
	return mux, client
}

// secretStore records what the secrets endpoints received.
type secretStore struct {
	mu      sync.Mutex
	keyGets int
	sealed  map[string]sealedSecret
	failing string
}

type sealedSecret struct {
	KeyID          string `json:"key_id"`
	EncryptedValue string `json:"encrypted_value"`
}

func (s *secretStore) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.sealed))
	for name := range s.sealed {
		names = append(names, name)
	}
	return names
}

func (s *secretStore) get(name string) (sealedSecret, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sealed, ok := s.sealed[name]
	return sealed, ok
}

// serveSecretsAPI wires the public key and secret upsert endpoints for
// testRepository onto mux, sealing to a fresh keypair. It returns the
// private key so tests can open what the client sealed.
func serveSecretsAPI(t *testing.T, mux *http.ServeMux, store *secretStore) (*[32]byte, *[32]byte) {
	t.Helper()

	publicKey, privateKey, err := box.GenerateKey(rand.Reader)
	require.NoError(t, err)
	encodedKey := base64.StdEncoding.EncodeToString(publicKey[:])

	mux.HandleFunc("/repos/octo/terraform-live/actions/secrets/public-key", func(w http.ResponseWriter, r *http.Request) {
		store.mu.Lock()
		store.keyGets++
		store.mu.Unlock()
		fmt.Fprintf(w, `{"key_id":"test-key-id","key":%q}`, encodedKey)
	})

	mux.HandleFunc("/repos/octo/terraform-live/actions/secrets/", func(w http.ResponseWriter, r *http.Request) {
		name := path.Base(r.URL.Path)
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var sealed sealedSecret
		if err := json.NewDecoder(r.Body).Decode(&sealed); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		store.mu.Lock()
		defer store.mu.Unlock()
		if name == store.failing {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if store.sealed == nil {
			store.sealed = make(map[string]sealedSecret)
		}
		store.sealed[name] = sealed
		w.WriteHeader(http.StatusCreated)
	})

	return publicKey, privateKey
}

func TestNewClient_RequiresToken(t *testing.T) {
	t.Parallel()

	_, err := NewClient(config.GitHubConfig{Repository: testRepository})
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.EnvGitHubToken)
}

func TestNewClient_RejectsBadRepository(t *testing.T) {
	t.Parallel()

	_, err := NewClient(config.GitHubConfig{Repository: "no-slash", Token: "tok"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner/name")
}

func TestClient_Repository(t *testing.T) {
	t.Parallel()

	_, client := newTestPublisher(t)
	assert.Equal(t, testRepository, client.Repository())
}

func TestVerifyAuth(t *testing.T) {
	t.Parallel()

	mux, client := newTestPublisher(t)
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"login":"octocat"}`)
	})

	login, err := client.VerifyAuth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "octocat", login)
}

func TestVerifyAuth_BadToken(t *testing.T) {
	t.Parallel()

	mux, client := newTestPublisher(t)
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Bad credentials"}`)
	})

	_, err := client.VerifyAuth(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestCheckRepository(t *testing.T) {
	t.Parallel()

	mux, client := newTestPublisher(t)
	mux.HandleFunc("/repos/octo/terraform-live", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"full_name":"octo/terraform-live"}`)
	})

	require.NoError(t, client.CheckRepository(context.Background()))
}

func TestCheckRepository_NotFound(t *testing.T) {
	t.Parallel()

	mux, client := newTestPublisher(t)
	mux.HandleFunc("/repos/octo/terraform-live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})

	err := client.CheckRepository(context.Background())
	require.ErrorIs(t, err, ErrRepositoryNotFound)
}

func TestPublishSecret_SealsToRepositoryKey(t *testing.T) {
	t.Parallel()

	mux, client := newTestPublisher(t)
	store := &secretStore{}
	publicKey, privateKey := serveSecretsAPI(t, mux, store)

	const value = "super-secret-value"
	require.NoError(t, client.PublishSecret(context.Background(), "ARM_CLIENT_SECRET", value))

	sealed, ok := store.get("ARM_CLIENT_SECRET")
	require.True(t, ok, "secret was never uploaded")
	assert.Equal(t, "test-key-id", sealed.KeyID)

	ciphertext, err := base64.StdEncoding.DecodeString(sealed.EncryptedValue)
	require.NoError(t, err)
	assert.NotContains(t, string(ciphertext), value)

	plaintext, ok := box.OpenAnonymous(nil, ciphertext, publicKey, privateKey)
	require.True(t, ok, "sealed box does not open with the repository key")
	assert.Equal(t, value, string(plaintext))
}

func TestPublishSecret_KeyFetchFails(t *testing.T) {
	t.Parallel()

	// No handlers registered, so the public key lookup 404s.
	_, client := newTestPublisher(t)

	err := client.PublishSecret(context.Background(), "ARM_CLIENT_ID", "id")
	require.ErrorIs(t, err, ErrRepositoryNotFound)
}

func TestPublishSecret_BadPublicKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		wantErr string
	}{
		{
			name:    "not base64",
			key:     "!!not-base64!!",
			wantErr: "public key",
		},
		{
			name:    "wrong size",
			key:     base64.StdEncoding.EncodeToString([]byte("short")),
			wantErr: "want 32",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mux, client := newTestPublisher(t)
			mux.HandleFunc("/repos/octo/terraform-live/actions/secrets/public-key", func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintf(w, `{"key_id":"1","key":%q}`, tc.key)
			})

			err := client.PublishSecret(context.Background(), "ARM_CLIENT_ID", "id")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestPublishCredentials(t *testing.T) {
	t.Parallel()

	mux, client := newTestPublisher(t)
	store := &secretStore{}
	serveSecretsAPI(t, mux, store)

	creds := &export.Credentials{
		ClientID:       "client-id",
		ClientSecret:   "client-secret",
		SubscriptionID: "sub-id",
		TenantID:       "tenant-id",
	}
	require.NoError(t, PublishCredentials(context.Background(), client, creds))

	assert.ElementsMatch(t, []string{
		export.KeyClientID,
		export.KeyClientSecret,
		export.KeySubscriptionID,
		export.KeyTenantID,
	}, store.names())
}

func TestPublishCredentials_AbortsOnFailure(t *testing.T) {
	t.Parallel()

	mux, client := newTestPublisher(t)
	store := &secretStore{failing: export.KeyClientSecret}
	serveSecretsAPI(t, mux, store)

	creds := &export.Credentials{
		ClientID:       "client-id",
		ClientSecret:   "client-secret",
		SubscriptionID: "sub-id",
		TenantID:       "tenant-id",
	}
	err := PublishCredentials(context.Background(), client, creds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), export.KeyClientSecret)
	assert.Contains(t, err.Error(), testRepository)

	// The first secret landed, nothing after the failure was attempted.
	assert.ElementsMatch(t, []string{export.KeyClientID}, store.names())
}

func TestPublishCredentials_RejectsIncomplete(t *testing.T) {
	t.Parallel()

	mux, client := newTestPublisher(t)
	store := &secretStore{}
	serveSecretsAPI(t, mux, store)

	creds := &export.Credentials{ClientID: "client-id"}
	err := PublishCredentials(context.Background(), client, creds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), export.KeyClientSecret)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Zero(t, store.keyGets, "no API call should happen for incomplete credentials")
	assert.Empty(t, store.sealed)
}

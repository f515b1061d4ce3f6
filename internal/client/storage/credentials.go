package storage

import (
	"context"
)

//go:generate moq -out credentials_mock.go . CredentialStore

// Fixed key names for the credential pair
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
)

// CredentialStore defines a key-value capability for persisting credentials on the client.
// Values are opaque strings; the store never parses or validates them.
type CredentialStore interface {
	// Get returns the value stored under key.
	// Returns ErrCredentialNotFound if nothing is stored
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error
	Delete(ctx context.Context, key string) error
}

package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/vocab/internal/client/storage"
	"github.com/iudanet/vocab/internal/client/storage/memory"
	"github.com/iudanet/vocab/internal/crypto"
)

func TestNewSealedStore(t *testing.T) {
	_, err := NewSealedStore(memory.New(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store secret cannot be empty")

	store, err := NewSealedStore(memory.New(), "device-secret")
	require.NoError(t, err)
	assert.NotNil(t, store)
}

func TestSealedStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()
	store, err := NewSealedStore(inner, "device-secret")
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, storage.KeyAccessToken, "A1"))

	value, err := store.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "A1", value)

	// Во внутреннем хранилище лежит шифротекст и соль
	raw := inner.Snapshot()
	assert.NotEqual(t, "A1", raw[storage.KeyAccessToken])
	assert.NotEmpty(t, raw[KeyStoreSalt])
}

func TestSealedStore_NotFound(t *testing.T) {
	store, err := NewSealedStore(memory.New(), "device-secret")
	require.NoError(t, err)

	_, err = store.Get(context.Background(), storage.KeyRefreshToken)
	assert.ErrorIs(t, err, storage.ErrCredentialNotFound)
}

func TestSealedStore_ReopenWithSameSecret(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()

	first, err := NewSealedStore(inner, "device-secret")
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, storage.KeyRefreshToken, "R1"))

	// Новый экземпляр берет соль из хранилища и выводит тот же ключ
	second, err := NewSealedStore(inner, "device-secret")
	require.NoError(t, err)
	value, err := second.Get(ctx, storage.KeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "R1", value)
}

func TestSealedStore_WrongSecret(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()

	first, err := NewSealedStore(inner, "device-secret")
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, storage.KeyRefreshToken, "R1"))

	other, err := NewSealedStore(inner, "other-secret")
	require.NoError(t, err)
	_, err = other.Get(ctx, storage.KeyRefreshToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, crypto.ErrOpenFailed)
}

func TestSealedStore_Delete(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()
	store, err := NewSealedStore(inner, "device-secret")
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, storage.KeyAccessToken, "A1"))
	require.NoError(t, store.Delete(ctx, storage.KeyAccessToken))

	_, err = store.Get(ctx, storage.KeyAccessToken)
	assert.ErrorIs(t, err, storage.ErrCredentialNotFound)
	// Соль остается
	assert.Contains(t, inner.Snapshot(), KeyStoreSalt)
}

func TestSealedStore_SaltErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("salt read failure", func(t *testing.T) {
		inner := &storage.CredentialStoreMock{
			GetFunc: func(ctx context.Context, key string) (string, error) {
				return "", errors.New("io error")
			},
		}
		store, err := NewSealedStore(inner, "device-secret")
		require.NoError(t, err)

		err = store.Set(ctx, storage.KeyAccessToken, "A1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read store salt")
	})

	t.Run("corrupted salt", func(t *testing.T) {
		inner := memory.New()
		require.NoError(t, inner.Set(ctx, KeyStoreSalt, "%%%"))
		store, err := NewSealedStore(inner, "device-secret")
		require.NoError(t, err)

		err = store.Set(ctx, storage.KeyAccessToken, "A1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode store salt")
	})
}

package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/vocab/internal/client/storage"
)

func TestStorage_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Get(ctx, storage.KeyAccessToken)
	assert.ErrorIs(t, err, storage.ErrCredentialNotFound)

	require.NoError(t, s.Set(ctx, storage.KeyAccessToken, "A1"))

	got, err := s.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "A1", got)

	require.NoError(t, s.Delete(ctx, storage.KeyAccessToken))
	require.NoError(t, s.Delete(ctx, storage.KeyAccessToken))

	_, err = s.Get(ctx, storage.KeyAccessToken)
	assert.ErrorIs(t, err, storage.ErrCredentialNotFound)
}

func TestStorage_Snapshot(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Set(ctx, storage.KeyAccessToken, "A1"))
	require.NoError(t, s.Set(ctx, storage.KeyRefreshToken, "R1"))

	snap := s.Snapshot()
	assert.Equal(t, map[string]string{"accessToken": "A1", "refreshToken": "R1"}, snap)

	// Снимок не связан с хранилищем
	snap["accessToken"] = "changed"
	got, err := s.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "A1", got)
}

func TestStorage_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Set(ctx, storage.KeyAccessToken, "A")
			_, _ = s.Get(ctx, storage.KeyAccessToken)
		}()
	}
	wg.Wait()

	got, err := s.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "A", got)
}

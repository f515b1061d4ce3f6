package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/vocab/internal/crypto"
	"github.com/iudanet/vocab/internal/models"
	"github.com/iudanet/vocab/internal/server/storage/sqlite"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSeedUser(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	user, err := SeedUser(ctx, store, quietLogger(), "demo", "demo-pass")
	require.NoError(t, err)
	assert.Equal(t, "demo", user.Login)
	assert.NoError(t, crypto.CheckPassword(user.PasswordHash, "demo-pass"))

	// Повторный запуск не пересоздает пользователя и не дублирует слова
	again, err := SeedUser(ctx, store, quietLogger(), "demo", "other-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.NoError(t, crypto.CheckPassword(again.PasswordHash, "demo-pass"))

	words, err := store.GetUserWords(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, words, 8)
}

func TestSeedUser_Invalid(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = SeedUser(ctx, store, quietLogger(), "x", "demo-pass")
	assert.Error(t, err)

	_, err = SeedUser(ctx, store, quietLogger(), "demo", "")
	assert.Error(t, err)
}

// countingTokens считает вызовы DeleteExpiredTokens
type countingTokens struct {
	calls chan struct{}
	err   error
}

func (c *countingTokens) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	return nil
}

func (c *countingTokens) LookupRefreshToken(ctx context.Context, token string, now time.Time) (*models.RefreshToken, error) {
	return nil, errors.New("not implemented")
}

func (c *countingTokens) DeleteExpiredTokens(ctx context.Context) (int, error) {
	select {
	case c.calls <- struct{}{}:
	default:
	}
	return 1, c.err
}

func TestRunTokenCleanup(t *testing.T) {
	tokens := &countingTokens{calls: make(chan struct{}, 1), err: errors.New("busy")}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		RunTokenCleanup(ctx, tokens, 10*time.Millisecond, quietLogger())
		close(done)
	}()

	select {
	case <-tokens.calls:
	case <-time.After(time.Second):
		t.Fatal("cleanup was not called")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not stop after cancel")
	}
}

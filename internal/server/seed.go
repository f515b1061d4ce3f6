package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/vocab/internal/crypto"
	"github.com/iudanet/vocab/internal/models"
	"github.com/iudanet/vocab/internal/server/storage"
	"github.com/iudanet/vocab/internal/validation"
)

// SeedUser создает пользователя, если его еще нет, и выдает ему словарь из миграций.
// Пароль существующего пользователя не меняется
func SeedUser(ctx context.Context, store Store, logger *slog.Logger, login, password string) (*models.User, error) {
	if err := validation.ValidateUserID(login); err != nil {
		return nil, fmt.Errorf("invalid demo user: %w", err)
	}

	user, err := store.GetUserByLogin(ctx, login)
	switch {
	case err == nil:
		logger.InfoContext(ctx, "demo user already exists", slog.String("login", login))
	case errors.Is(err, storage.ErrUserNotFound):
		user, err = createUser(ctx, store, login, password)
		if err != nil {
			return nil, err
		}
		logger.InfoContext(ctx, "demo user created", slog.String("login", login), slog.String("user_id", user.ID))
	default:
		return nil, fmt.Errorf("failed to look up demo user: %w", err)
	}

	added, err := store.AssignSeedWords(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if added > 0 {
		logger.InfoContext(ctx, "seed words assigned", slog.String("user_id", user.ID), slog.Int("count", added))
	}

	return user, nil
}

func createUser(ctx context.Context, store storage.UserStorage, login, password string) (*models.User, error) {
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid demo password: %w", err)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Login:        login,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create demo user: %w", err)
	}
	return user, nil
}

// RunTokenCleanup периодически удаляет истекшие refresh токены, пока жив ctx
func RunTokenCleanup(ctx context.Context, tokens storage.TokenStorage, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := tokens.DeleteExpiredTokens(ctx)
			if err != nil {
				logger.WarnContext(ctx, "failed to delete expired tokens", slog.Any("error", err))
				continue
			}
			if deleted > 0 {
				logger.InfoContext(ctx, "expired refresh tokens removed", slog.Int("count", deleted))
			}
		}
	}
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/vocab/internal/models"
	"github.com/iudanet/vocab/internal/server/storage"
)

// SaveRefreshToken сохраняет refresh token пользователя.
// Время пишем в UTC: истечение сравнивается строками в SQL
func (s *Storage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO refresh_tokens (token, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)`,
		token.Token, token.UserID, token.ExpiresAt.UTC(), token.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

// LookupRefreshToken ищет токен для reissue. Истечение считает сама база
func (s *Storage) LookupRefreshToken(ctx context.Context, token string, now time.Time) (*models.RefreshToken, error) {
	var (
		rt      models.RefreshToken
		expired bool
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT token, user_id, expires_at, created_at, expires_at <= ?
		FROM refresh_tokens
		WHERE token = ?`,
		now.UTC(), token,
	).Scan(&rt.Token, &rt.UserID, &rt.ExpiresAt, &rt.CreatedAt, &expired)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, storage.ErrTokenNotFound
	case err != nil:
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	case expired:
		return nil, storage.ErrTokenExpired
	}

	return &rt, nil
}

// DeleteExpiredTokens удаляет токены, срок которых вышел
func (s *Storage) DeleteExpiredTokens(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at <= ?`, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}

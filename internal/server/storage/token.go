package storage

import (
	"context"
	"time"

	"github.com/iudanet/vocab/internal/models"
)

// TokenStorage хранит выданные refresh token
type TokenStorage interface {
	// SaveRefreshToken сохраняет refresh token, выданный при логине
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error

	// LookupRefreshToken находит refresh token, действующий на момент now.
	// Неизвестный дает ErrTokenNotFound, истекший ErrTokenExpired
	LookupRefreshToken(ctx context.Context, token string, now time.Time) (*models.RefreshToken, error)

	// DeleteExpiredTokens удаляет истекшие токены и возвращает их число
	DeleteExpiredTokens(ctx context.Context) (int, error)
}

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/vocab/internal/server/handlers"
	"github.com/iudanet/vocab/internal/server/jwt"
)

// AuthMiddleware создает middleware для проверки JWT токена.
// Любой отказ отвечает 401, по нему клиент делает reissue
func AuthMiddleware(logger *slog.Logger, tokens *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// Извлекаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WarnContext(ctx, "Missing Authorization header")
				writeError(w, "missing token", http.StatusUnauthorized)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				logger.WarnContext(ctx, "Invalid Authorization header format")
				writeError(w, "invalid token format", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.ValidateAccessToken(parts[1])
			if err != nil {
				logger.WarnContext(ctx, "Invalid access token", slog.Any("error", err))
				writeError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			// Добавляем данные из токена в контекст
			ctx = context.WithValue(ctx, handlers.UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, handlers.LoginKey, claims.Login)

			logger.DebugContext(ctx, "User authenticated", slog.String("user_id", claims.UserID))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package handlers

import "context"

// contextKey тип для ключей контекста
type contextKey string

const (
	// UserIDKey ключ для хранения user ID в контексте
	UserIDKey contextKey = "user_id"
	// LoginKey ключ для хранения логина в контексте
	LoginKey contextKey = "login"
)

// UserIDFromContext достает ID пользователя, положенный AuthMiddleware
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

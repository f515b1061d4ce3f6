package models

import "time"

// User представляет пользователя в системе
type User struct {
	CreatedAt    time.Time  `json:"created_at"`    // время создания
	LastLogin    *time.Time `json:"last_login"`    // время последнего входа
	ID           string     `json:"id"`            // UUID пользователя
	Login        string     `json:"login"`         // идентификатор для входа (userId)
	PasswordHash string     `json:"password_hash"` // bcrypt хеш пароля
}

// RefreshToken представляет refresh token пользователя.
// Токен не ротируется: reissue выдает только новый access token
type RefreshToken struct {
	ExpiresAt time.Time `json:"expires_at"` // время истечения
	CreatedAt time.Time `json:"created_at"` // время создания
	Token     string    `json:"token"`      // значение токена
	UserID    string    `json:"user_id"`    // ID пользователя
}

// Expired сообщает, истек ли токен к моменту now
func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

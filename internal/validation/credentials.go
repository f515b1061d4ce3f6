package validation

import (
	"errors"
	"fmt"
	"regexp"
)

// UserIDPattern допустимый формат идентификатора пользователя.
// Латинские буквы, цифры и символы _ . @ - (идентификатором может быть email)
var UserIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.@-]+$`)

const (
	// MinUserIDLen минимальная длина идентификатора
	MinUserIDLen = 3
	// MaxUserIDLen максимальная длина идентификатора
	MaxUserIDLen = 64
	// MaxPasswordLen bcrypt учитывает только первые 72 байта
	MaxPasswordLen = 72
)

var (
	// ErrEmptyUserID идентификатор не введен
	ErrEmptyUserID = errors.New("user id cannot be empty")
	// ErrEmptyPassword пароль не введен
	ErrEmptyPassword = errors.New("password cannot be empty")
)

// ValidateUserID проверяет идентификатор пользователя
func ValidateUserID(userID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}

	if len(userID) < MinUserIDLen {
		return fmt.Errorf("user id must be at least %d characters long", MinUserIDLen)
	}

	if len(userID) > MaxUserIDLen {
		return fmt.Errorf("user id must not exceed %d characters", MaxUserIDLen)
	}

	if !UserIDPattern.MatchString(userID) {
		return fmt.Errorf("user id can only contain letters (a-z, A-Z), numbers (0-9) and _ . @ -")
	}

	return nil
}

// RequireCredentials проверяет только, что оба поля введены.
// Остальные правила решает сервер
func RequireCredentials(userID, password string) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	if password == "" {
		return ErrEmptyPassword
	}
	return nil
}

// ValidatePassword проверяет, что пароль введен и помещается в bcrypt
func ValidatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}

	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must not exceed %d bytes", MaxPasswordLen)
	}

	return nil
}

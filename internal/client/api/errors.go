package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrSessionExpired сигнализирует, что сессию восстановить не удалось и нужен повторный логин.
	// Любая *ReissueError совпадает с ним через errors.Is
	ErrSessionExpired = errors.New("session expired")

	// ErrNoRefreshToken refresh token отсутствует в хранилище
	ErrNoRefreshToken = errors.New("no refresh token available")

	// ErrReissueUnavailable транспорт создан без Reissuer
	ErrReissueUnavailable = errors.New("token reissue is not configured")

	// ErrCredentialStore чтение токена из хранилища не удалось, запрос прерван
	ErrCredentialStore = errors.New("credential store failure")
)

// NetworkError запрос не получил ответа (DNS, соединение, таймаут, отмена контекста)
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError сервер ответил статусом вне 2xx
type ServerError struct {
	Message    string
	Body       []byte
	StatusCode int
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, string(e.Body))
}

// Unauthorized сообщает, что сервер ответил 401
func (e *ServerError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// ReissueError перевыпуск access token не удался: refresh token отсутствует,
// запрос reissue упал или ответ некорректен. Токены к этому моменту уже удалены
type ReissueError struct {
	Err error
}

func (e *ReissueError) Error() string {
	return fmt.Sprintf("token reissue failed: %v", e.Err)
}

func (e *ReissueError) Unwrap() error {
	return e.Err
}

// Is позволяет проверять errors.Is(err, ErrSessionExpired)
func (e *ReissueError) Is(target error) bool {
	return target == ErrSessionExpired
}

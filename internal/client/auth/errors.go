package auth

import "errors"

var (
	// ErrInvalidCredentials сервер отверг идентификатор или пароль (409)
	ErrInvalidCredentials = errors.New("invalid user id or password")

	// ErrAuthenticationFailed сервер не смог аутентифицировать пользователя (401)
	ErrAuthenticationFailed = errors.New("authentication failed")
)

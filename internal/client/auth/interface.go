package auth

import (
	"context"
)

//go:generate moq -out service_mock.go . Service

// Service управляет сессией пользователя на этом устройстве.
// Токены хранятся в CredentialStore, дальше их использует AuthTransport
type Service interface {
	// Login выполняет аутентификацию и сохраняет пару токенов
	Login(ctx context.Context, userID, password string) (*LoginResult, error)

	// Logout удаляет сохраненные токены
	Logout(ctx context.Context) error

	// Status сообщает, какие токены сохранены
	Status(ctx context.Context) (*Status, error)
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/iudanet/vocab/internal/client/api"
	"github.com/iudanet/vocab/internal/client/storage"
	"github.com/iudanet/vocab/internal/validation"
	pkgapi "github.com/iudanet/vocab/pkg/api"
)

// LoginAPI выполняет запрос логина мимо AuthTransport
type LoginAPI interface {
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenPair, error)
}

// LoginResult содержит результат авторизации
type LoginResult struct {
	UserID string
}

// Status состояние локальной сессии
type Status struct {
	HasAccessToken  bool
	HasRefreshToken bool
}

// LoggedIn сессию можно использовать: без refresh token восстановить ее не получится
func (s *Status) LoggedIn() bool {
	return s.HasRefreshToken
}

type service struct {
	api    LoginAPI
	store  storage.CredentialStore
	logger *slog.Logger
}

// Compile-time check that service implements Service
var _ Service = (*service)(nil)

// NewService создает новый сервис авторизации
func NewService(loginAPI LoginAPI, store storage.CredentialStore, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		api:    loginAPI,
		store:  store,
		logger: logger,
	}
}

// Login проверяет, что поля заполнены, запрашивает токены и сохраняет их
func (s *service) Login(ctx context.Context, userID, password string) (*LoginResult, error) {
	// Формат идентификатора и пароля проверяет сервер
	if err := validation.RequireCredentials(userID, password); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}

	tokens, err := s.api.Login(ctx, pkgapi.LoginRequest{
		UserID:     userID,
		Password:   password,
		RememberMe: true,
	})
	if err != nil {
		return nil, mapLoginError(err)
	}

	if err := s.store.Set(ctx, storage.KeyAccessToken, tokens.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to save access token: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyRefreshToken, tokens.RefreshToken); err != nil {
		// Половина пары бесполезна
		_ = s.store.Delete(ctx, storage.KeyAccessToken)
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	s.logger.InfoContext(ctx, "logged in", slog.String("user_id", userID))
	return &LoginResult{UserID: userID}, nil
}

// mapLoginError переводит ответы сервера в ошибки экрана входа
func mapLoginError(err error) error {
	var serverErr *api.ServerError
	if !errors.As(err, &serverErr) {
		return fmt.Errorf("login failed: %w", err)
	}

	switch serverErr.StatusCode {
	case http.StatusConflict:
		if serverErr.Message != "" {
			return fmt.Errorf("%w: %s", ErrInvalidCredentials, serverErr.Message)
		}
		return ErrInvalidCredentials
	case http.StatusUnauthorized:
		return ErrAuthenticationFailed
	default:
		return fmt.Errorf("login failed: %w", err)
	}
}

// Logout удаляет оба токена, даже если удаление одного из них не удалось
func (s *service) Logout(ctx context.Context) error {
	var errs []error
	for _, key := range []string{storage.KeyAccessToken, storage.KeyRefreshToken} {
		if err := s.store.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("failed to delete %s: %w", key, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "logged out")
	return nil
}

// Status проверяет наличие токенов в хранилище
func (s *service) Status(ctx context.Context) (*Status, error) {
	hasAccess, err := s.has(ctx, storage.KeyAccessToken)
	if err != nil {
		return nil, err
	}
	hasRefresh, err := s.has(ctx, storage.KeyRefreshToken)
	if err != nil {
		return nil, err
	}
	return &Status{HasAccessToken: hasAccess, HasRefreshToken: hasRefresh}, nil
}

func (s *service) has(ctx context.Context, key string) (bool, error) {
	value, err := s.store.Get(ctx, key)
	if errors.Is(err, storage.ErrCredentialNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value != "", nil
}

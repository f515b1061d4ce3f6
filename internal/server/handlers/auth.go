package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/vocab/internal/crypto"
	"github.com/iudanet/vocab/internal/models"
	"github.com/iudanet/vocab/internal/server/jwt"
	"github.com/iudanet/vocab/internal/server/storage"
	"github.com/iudanet/vocab/internal/validation"
	"github.com/iudanet/vocab/pkg/api"
)

// msgInvalidCredentials одно сообщение для неизвестного логина и неверного пароля
const msgInvalidCredentials = "invalid id or password"

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger       *slog.Logger
	userStorage  storage.UserStorage
	tokenStorage storage.TokenStorage
	tokens       *jwt.Service
	now          func() time.Time
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, tokenStorage storage.TokenStorage, tokens *jwt.Service) *AuthHandler {
	return &AuthHandler{
		logger:       logger,
		userStorage:  userStorage,
		tokenStorage: tokenStorage,
		tokens:       tokens,
		now:          time.Now,
	}
}

// Login обрабатывает POST /api/login
// Проверяет пароль и выдает пару токенов
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateUserID(req.UserID); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByLogin(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("login", req.UserID))
			sendError(h.logger, w, msgInvalidCredentials, http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := crypto.CheckPassword(user.PasswordHash, req.Password); err != nil {
		h.logger.WarnContext(ctx, "login failed: wrong password", slog.String("login", req.UserID))
		sendError(h.logger, w, msgInvalidCredentials, http.StatusConflict)
		return
	}

	accessToken, err := h.tokens.GenerateAccessToken(user.ID, user.Login)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	refreshToken, expiresAt, err := h.tokens.GenerateRefreshToken()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate refresh token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	now := h.now()
	token := &models.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}
	if err := h.tokenStorage.SaveRefreshToken(ctx, token); err != nil {
		h.logger.ErrorContext(ctx, "failed to save refresh token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.userStorage.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Не критичная ошибка, логируем но не прерываем
		h.logger.WarnContext(ctx, "failed to update last login", slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("login", user.Login),
		slog.String("user_id", user.ID),
		slog.Bool("remember_me", req.RememberMe))

	sendData(h.logger, w, api.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Reissue обрабатывает POST /api/reissue
// Выдает новый access token по refresh token. Refresh token не меняется
func (h *AuthHandler) Reissue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ReissueRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode reissue request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.RefreshToken == "" {
		sendError(h.logger, w, "refresh token is required", http.StatusUnauthorized)
		return
	}

	storedToken, err := h.tokenStorage.LookupRefreshToken(ctx, req.RefreshToken, h.now())
	switch {
	case errors.Is(err, storage.ErrTokenNotFound):
		h.logger.WarnContext(ctx, "refresh token not found")
		sendError(h.logger, w, "invalid refresh token", http.StatusUnauthorized)
		return
	case errors.Is(err, storage.ErrTokenExpired):
		h.logger.WarnContext(ctx, "refresh token expired")
		sendError(h.logger, w, "refresh token expired", http.StatusUnauthorized)
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to look up refresh token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, storedToken.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, "invalid refresh token", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	accessToken, err := h.tokens.GenerateAccessToken(user.ID, user.Login)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "access token reissued", slog.String("user_id", user.ID))

	sendData(h.logger, w, api.ReissueData{AccessToken: accessToken})
}

package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/iudanet/vocab/internal/client/storage"
)

// Reissuer обменивает refresh token на новый access token.
// Реализация не должна ходить через AuthTransport
type Reissuer interface {
	Reissue(ctx context.Context, refreshToken string) (string, error)
}

// SessionExpiredFunc вызывается, когда сессию восстановить не удалось.
// Подписчик (CLI, UI) решает, как попросить пользователя залогиниться заново
type SessionExpiredFunc func(ctx context.Context)

// AuthTransport подставляет bearer token в запросы к своему серверу и один раз
// восстанавливает запрос после 401 через reissue
type AuthTransport struct {
	base      http.RoundTripper
	store     storage.CredentialStore
	reissuer  Reissuer
	onExpired SessionExpiredFunc
	logger    *slog.Logger
	flight    *singleflight.Group
	host      string
	timeout   time.Duration
}

// attempt неизменяемая пара "запрос + признак повтора".
// Тело буферизуется один раз, чтобы запрос можно было отправить повторно
type attempt struct {
	req     *http.Request
	body    []byte
	retried bool
}

// NewAuthTransport создает транспорт поверх base (nil означает http.DefaultTransport).
// Токен уходит только на хост из baseURL. Без reissuer любой 401 завершает сессию
func NewAuthTransport(base http.RoundTripper, baseURL string, store storage.CredentialStore, reissuer Reissuer, logger *slog.Logger) *AuthTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.Default()
	}

	var host string
	if u, err := url.Parse(baseURL); err == nil {
		host = canonicalHost(u)
	}

	return &AuthTransport{
		base:     base,
		store:    store,
		reissuer: reissuer,
		logger:   logger,
		host:     host,
		timeout:  DefaultTimeout,
	}
}

// OnSessionExpired регистрирует обработчик истечения сессии
func (t *AuthTransport) OnSessionExpired(fn SessionExpiredFunc) {
	t.onExpired = fn
}

// ReissueTimeout ограничивает общий reissue, который не привязан к отмене вызывающего
func (t *AuthTransport) ReissueTimeout(d time.Duration) {
	if d > 0 {
		t.timeout = d
	}
}

// CoalesceReissue включает объединение одновременных reissue с одинаковым refresh token
func (t *AuthTransport) CoalesceReissue(enabled bool) {
	if enabled {
		t.flight = &singleflight.Group{}
		return
	}
	t.flight = nil
}

// RoundTrip implements http.RoundTripper
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	a, err := newAttempt(req)
	if err != nil {
		return nil, err
	}
	return t.dispatch(a)
}

func newAttempt(req *http.Request) (attempt, error) {
	var body []byte
	if req.Body != nil && req.Body != http.NoBody {
		b, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return attempt{}, fmt.Errorf("failed to read request body: %w", err)
		}
		body = b
	}

	// Работаем с копией: RoundTripper не должен менять запрос вызывающего
	return attempt{req: req.Clone(req.Context()), body: body}, nil
}

// retry возвращает новую попытку с заголовком от свежего access token
func (a attempt) retry(accessToken string) attempt {
	req := a.req.Clone(a.req.Context())
	setBearer(req, accessToken)
	return attempt{req: req, body: a.body, retried: true}
}

// outgoing собирает запрос для отправки со свежим телом
func (a attempt) outgoing() *http.Request {
	out := a.req.Clone(a.req.Context())
	if a.body != nil {
		body := a.body
		out.Body = io.NopCloser(bytes.NewReader(body))
		out.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
		out.ContentLength = int64(len(body))
	}
	return out
}

func (t *AuthTransport) dispatch(a attempt) (*http.Response, error) {
	out, err := t.augment(a)
	if err != nil {
		return nil, err
	}

	resp, err := t.base.RoundTrip(out)
	return t.recoverUnauthorized(a, resp, err)
}

// augment подставляет Authorization из хранилища.
// Если токена нет или хост чужой, заголовок не трогаем
func (t *AuthTransport) augment(a attempt) (*http.Request, error) {
	out := a.outgoing()
	if !t.ownHost(out.URL) {
		return out, nil
	}

	accessToken, err := t.store.Get(out.Context(), storage.KeyAccessToken)
	if err != nil {
		if errors.Is(err, storage.ErrCredentialNotFound) {
			return out, nil
		}
		return nil, fmt.Errorf("%w: failed to read access token: %w", ErrCredentialStore, err)
	}
	if accessToken != "" {
		setBearer(out, accessToken)
	}

	return out, nil
}

// recoverUnauthorized пропускает всё, кроме первого 401; на 401 делает reissue и повтор
func (t *AuthTransport) recoverUnauthorized(a attempt, resp *http.Response, err error) (*http.Response, error) {
	if err != nil || resp.StatusCode != http.StatusUnauthorized || a.retried || !t.ownHost(a.req.URL) {
		return resp, err
	}

	// Тело 401 больше не нужно
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	ctx := a.req.Context()
	t.logger.DebugContext(ctx, "access token rejected, reissuing",
		slog.String("method", a.req.Method),
		slog.String("path", a.req.URL.Path))

	accessToken, err := t.reissue(ctx)
	if err != nil {
		return nil, &ReissueError{Err: err}
	}

	// Повтор идет через тот же конвейер, но второй 401 уже не перехватывается
	return t.dispatch(a.retry(accessToken))
}

// reissue получает новый access token. При неудаче сессия уже завершена
func (t *AuthTransport) reissue(ctx context.Context) (string, error) {
	refreshToken, err := t.store.Get(ctx, storage.KeyRefreshToken)
	switch {
	case errors.Is(err, storage.ErrCredentialNotFound), err == nil && refreshToken == "":
		err = ErrNoRefreshToken
	case err != nil:
		err = fmt.Errorf("failed to read refresh token: %w", err)
	}
	if err != nil {
		t.expireSession(ctx, err)
		return "", err
	}

	if t.flight == nil {
		return t.renew(ctx, refreshToken)
	}

	// Общий обмен не должен зависеть от отмены того, кто его начал
	v, err, shared := t.flight.Do(refreshToken, func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.timeout)
		defer cancel()
		return t.renew(flightCtx, refreshToken)
	})
	if shared {
		t.logger.DebugContext(ctx, "joined in-flight reissue")
	}
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// renew выполняет обмен и при неудаче завершает сессию.
// В режиме объединения вызывается один раз на весь flight
func (t *AuthTransport) renew(ctx context.Context, refreshToken string) (string, error) {
	accessToken, err := t.exchange(ctx, refreshToken)
	if err != nil {
		t.expireSession(ctx, err)
		return "", err
	}
	return accessToken, nil
}

// exchange вызывает reissue endpoint и сохраняет новый access token.
// Refresh token не трогаем
func (t *AuthTransport) exchange(ctx context.Context, refreshToken string) (string, error) {
	if t.reissuer == nil {
		return "", ErrReissueUnavailable
	}

	accessToken, err := t.reissuer.Reissue(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	if err := t.store.Set(ctx, storage.KeyAccessToken, accessToken); err != nil {
		return "", fmt.Errorf("failed to save access token: %w", err)
	}

	t.logger.InfoContext(ctx, "access token reissued")
	return accessToken, nil
}

// expireSession удаляет оба токена и уведомляет подписчика
func (t *AuthTransport) expireSession(ctx context.Context, cause error) {
	t.logger.WarnContext(ctx, "token reissue failed, clearing session", slog.Any("error", cause))

	for _, key := range []string{storage.KeyAccessToken, storage.KeyRefreshToken} {
		if err := t.store.Delete(ctx, key); err != nil {
			t.logger.ErrorContext(ctx, "failed to delete credential",
				slog.String("key", key),
				slog.Any("error", err))
		}
	}

	if t.onExpired != nil {
		t.onExpired(ctx)
	}
}

// ownHost сообщает, идет ли запрос на сервер из baseURL
func (t *AuthTransport) ownHost(u *url.URL) bool {
	return t.host != "" && canonicalHost(u) == t.host
}

// canonicalHost приводит host к виду "имя:порт" с портом по умолчанию для схемы
func canonicalHost(u *url.URL) string {
	port := u.Port()
	if port == "" {
		switch strings.ToLower(u.Scheme) {
		case "https":
			port = "443"
		case "http":
			port = "80"
		}
	}
	return strings.ToLower(u.Hostname()) + ":" + port
}

func setBearer(req *http.Request, accessToken string) {
	tok := &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
	tok.SetAuthHeader(req)
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/vocab/internal/client/storage"
	"github.com/iudanet/vocab/pkg/api"
)

const (
	// DefaultTimeout таймаут одного HTTP запроса
	DefaultTimeout = 30 * time.Second

	pathLogin   = "/api/login"
	pathReissue = "/api/reissue"
	pathWords   = "/api/word"
)

// Client представляет HTTP клиент для взаимодействия с сервером.
// Запросы от имени пользователя идут через AuthTransport,
// логин и reissue идут напрямую, минуя его
type Client struct {
	httpClient *http.Client
	rawClient  *http.Client
	transport  *AuthTransport
	logger     *slog.Logger
	baseURL    string
}

// Option настраивает Client
type Option func(*clientOptions)

type clientOptions struct {
	base      http.RoundTripper
	logger    *slog.Logger
	onExpired SessionExpiredFunc
	timeout   time.Duration
	coalesce  bool
}

// WithTransport задает нижележащий транспорт (по умолчанию http.DefaultTransport)
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) { o.base = rt }
}

// WithLogger задает логгер
func WithLogger(logger *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = logger }
}

// WithSessionExpired задает обработчик истечения сессии
func WithSessionExpired(fn SessionExpiredFunc) Option {
	return func(o *clientOptions) { o.onExpired = fn }
}

// WithTimeout задает таймаут запроса
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// WithReissueCoalescing объединяет одновременные reissue в один вызов
func WithReissueCoalescing(enabled bool) Option {
	return func(o *clientOptions) { o.coalesce = enabled }
}

// NewClient создает новый API клиент
func NewClient(baseURL string, store storage.CredentialStore, opts ...Option) *Client {
	o := clientOptions{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.base == nil {
		o.base = http.DefaultTransport
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  o.logger,
		rawClient: &http.Client{
			Timeout:   o.timeout,
			Transport: o.base,
		},
	}

	c.transport = NewAuthTransport(o.base, c.baseURL, store, c, o.logger)
	c.transport.OnSessionExpired(o.onExpired)
	c.transport.CoalesceReissue(o.coalesce)
	c.transport.ReissueTimeout(o.timeout)

	c.httpClient = &http.Client{
		Timeout:   o.timeout,
		Transport: c.transport,
		// Authorization на каждом шаге редиректа ставит AuthTransport, и только для своего хоста
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Ограничиваем количество редиректов
			if len(via) >= 10 {
				return fmt.Errorf("stopped after 10 redirects")
			}
			return nil
		},
	}

	return c
}

// HTTPClient возвращает http.Client с подстановкой токена и reissue.
// Годится для любых запросов к API от имени пользователя
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// BaseURL возвращает адрес сервера
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenPair, error) {
	var resp api.Response[api.TokenPair]
	if err := c.doRequest(ctx, c.rawClient, http.MethodPost, pathLogin, req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	if resp.Data.AccessToken == "" || resp.Data.RefreshToken == "" {
		return nil, fmt.Errorf("login response is missing tokens")
	}
	return &resp.Data, nil
}

// Reissue обменивает refresh token на новый access token.
// Ходит мимо AuthTransport, поэтому не рекурсирует
func (c *Client) Reissue(ctx context.Context, refreshToken string) (string, error) {
	var resp api.Response[api.ReissueData]
	req := api.ReissueRequest{RefreshToken: refreshToken}
	if err := c.doRequest(ctx, c.rawClient, http.MethodPost, pathReissue, req, &resp); err != nil {
		return "", fmt.Errorf("reissue request failed: %w", err)
	}
	if resp.Data.AccessToken == "" {
		return "", fmt.Errorf("reissue response has no access token")
	}
	return resp.Data.AccessToken, nil
}

// Words возвращает список слов пользователя
func (c *Client) Words(ctx context.Context) ([]api.Word, error) {
	var resp api.Response[[]api.Word]
	if err := c.doRequest(ctx, c.httpClient, http.MethodGet, pathWords, nil, &resp); err != nil {
		return nil, fmt.Errorf("get words request failed: %w", err)
	}
	return resp.Data, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, hc *http.Client, method, path string, body, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.logger.DebugContext(ctx, "HTTP request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		serverErr := &ServerError{StatusCode: resp.StatusCode, Body: respBody}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			serverErr.Message = errResp.Message
			if serverErr.Message == "" {
				serverErr.Message = errResp.Error
			}
		}
		return serverErr
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// classifyTransportError разбирает ошибку http.Client.Do:
// ошибки reissue и хранилища отдаем как есть, остальное считаем сетевым сбоем
func classifyTransportError(err error) error {
	var reissueErr *ReissueError
	if errors.As(err, &reissueErr) {
		return reissueErr
	}
	if errors.Is(err, ErrCredentialStore) {
		return fmt.Errorf("request aborted: %w", err)
	}
	return &NetworkError{Err: err}
}

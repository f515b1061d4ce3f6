package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/vocab/internal/server/handlers"
	"github.com/iudanet/vocab/internal/server/jwt"
	"github.com/iudanet/vocab/internal/server/middleware"
	"github.com/iudanet/vocab/internal/server/storage"
)

// Store все, что нужно серверу от хранилища
type Store interface {
	handlers.Pinger
	storage.UserStorage
	storage.TokenStorage
	storage.WordStorage
}

// Options параметры роутера
type Options struct {
	Logger         *slog.Logger
	Tokens         *jwt.Service
	Version        string
	LoginRateLimit int
	LoginWindow    time.Duration
}

// Router собранный http.Handler и ресурсы, которые нужно освободить
type Router struct {
	http.Handler
	loginLimiter *middleware.RateLimiter
}

// NewRouter собирает маршруты API и цепочку middleware
func NewRouter(store Store, opts Options) *Router {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	window := opts.LoginWindow
	if window <= 0 {
		window = time.Minute
	}

	authHandler := handlers.NewAuthHandler(logger, store, store, opts.Tokens)
	wordsHandler := handlers.NewWordsHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger, store, opts.Version)

	requireAuth := middleware.AuthMiddleware(logger, opts.Tokens)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", healthHandler.Health)
	mux.HandleFunc("POST /api/reissue", authHandler.Reissue)
	mux.Handle("GET /api/word", requireAuth(http.HandlerFunc(wordsHandler.List)))

	r := &Router{}

	login := http.Handler(http.HandlerFunc(authHandler.Login))
	if opts.LoginRateLimit > 0 {
		r.loginLimiter = middleware.NewRateLimiter(opts.LoginRateLimit, window, logger)
		login = r.loginLimiter.Middleware(login)
	}
	mux.Handle("POST /api/login", login)

	// Recovery снаружи, чтобы паника тоже попала в лог запроса
	var h http.Handler = mux
	h = middleware.LoggingWithSkip(logger, []string{"/api/health"})(h)
	h = middleware.RecoveryMiddleware(logger)(h)

	r.Handler = h
	return r
}

// Close останавливает фоновые горутины роутера
func (r *Router) Close() {
	if r.loginLimiter != nil {
		r.loginLimiter.Stop()
	}
}

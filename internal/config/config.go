// Package config собирает настройки клиента и сервера.
// Приоритет (по убыванию): флаги командной строки, переменные окружения,
// файл .env, значения по умолчанию.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Client настройки клиента
type Client struct {
	APIURL          string        `env:"VOCAB_API_URL,API_URL" env-default:"http://localhost:8080"`
	DBPath          string        `env:"VOCAB_DB" env-default:"vocab-client.db"`
	StoreSecret     string        `env:"VOCAB_STORE_SECRET"`
	LogLevel        string        `env:"VOCAB_LOG_LEVEL" env-default:"warn"`
	Timeout         time.Duration `env:"VOCAB_TIMEOUT" env-default:"30s"`
	Ephemeral       bool          `env:"VOCAB_EPHEMERAL"`
	CoalesceReissue bool          `env:"VOCAB_COALESCE_REISSUE"`
	ShowVersion     bool
}

// Server настройки сервера разработки
type Server struct {
	Addr            string        `env:"VOCAB_ADDR" env-default:":8080"`
	DBPath          string        `env:"VOCAB_SERVER_DB" env-default:"vocab-server.db"`
	JWTSecret       string        `env:"VOCAB_JWT_SECRET"`
	DemoUser        string        `env:"VOCAB_DEMO_USER" env-default:"demo"`
	DemoPassword    string        `env:"VOCAB_DEMO_PASSWORD"`
	LogLevel        string        `env:"VOCAB_LOG_LEVEL" env-default:"info"`
	AccessTokenTTL  time.Duration `env:"VOCAB_ACCESS_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `env:"VOCAB_REFRESH_TTL" env-default:"720h"`
	LoginRateLimit  int           `env:"VOCAB_LOGIN_RATE_LIMIT" env-default:"10"`
	ShowVersion     bool
}

// LoadClient читает настройки клиента. Возвращает аргументы после флагов (команду)
func LoadClient(envFile string, args []string, output io.Writer) (*Client, []string, error) {
	if err := loadDotenv(envFile); err != nil {
		return nil, nil, err
	}

	var cfg Client
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to read environment: %w", err)
	}

	flags := flag.NewFlagSet("vocab", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flags.StringVar(&cfg.APIURL, "server", cfg.APIURL, "Server URL")
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to local credential database")
	flags.StringVar(&cfg.StoreSecret, "store-secret", cfg.StoreSecret, "Secret used to seal stored tokens (empty disables sealing)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout")
	flags.BoolVar(&cfg.Ephemeral, "ephemeral", cfg.Ephemeral, "Keep tokens in memory only")
	flags.BoolVar(&cfg.CoalesceReissue, "coalesce-reissue", cfg.CoalesceReissue, "Share one token reissue between concurrent requests")

	if err := flags.Parse(args); err != nil {
		return nil, nil, err
	}

	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return nil, nil, err
	}
	if cfg.APIURL == "" {
		return nil, nil, fmt.Errorf("server URL is required")
	}

	return &cfg, flags.Args(), nil
}

// LoadServer читает настройки сервера
func LoadServer(envFile string, args []string, output io.Writer) (*Server, error) {
	if err := loadDotenv(envFile); err != nil {
		return nil, err
	}

	var cfg Server
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	flags := flag.NewFlagSet("vocab-server", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flags.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	flags.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing access tokens")
	flags.StringVar(&cfg.DemoUser, "demo-user", cfg.DemoUser, "Demo user id")
	flags.StringVar(&cfg.DemoPassword, "demo-password", cfg.DemoPassword, "Demo user password (empty disables seeding)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.DurationVar(&cfg.AccessTokenTTL, "access-ttl", cfg.AccessTokenTTL, "Access token lifetime")
	flags.DurationVar(&cfg.RefreshTokenTTL, "refresh-ttl", cfg.RefreshTokenTTL, "Refresh token lifetime")
	flags.IntVar(&cfg.LoginRateLimit, "login-rate-limit", cfg.LoginRateLimit, "Login attempts per minute per IP")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if cfg.ShowVersion {
		return &cfg, nil
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Server) validate() error {
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required (-jwt-secret or VOCAB_JWT_SECRET)")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token lifetimes must be positive")
	}
	if c.LoginRateLimit <= 0 {
		return fmt.Errorf("login rate limit must be positive")
	}
	return nil
}

// ParseLogLevel разбирает уровень логирования
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// loadDotenv загружает .env, если он есть. Уже заданные переменные не перезаписываются
func loadDotenv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

package cli

import (
	"context"
	"sync/atomic"

	"github.com/iudanet/vocab/internal/client/auth"
	"github.com/iudanet/vocab/internal/client/iocli"
	"github.com/iudanet/vocab/internal/client/words"
)

// WordLister загружает карточки слов
type WordLister interface {
	List(ctx context.Context) ([]words.Card, error)
}

type Cli struct {
	io           iocli.IO
	authService  auth.Service
	wordsService WordLister
	expired      atomic.Bool
}

func New(io iocli.IO, authService auth.Service, wordsService WordLister) *Cli {
	return &Cli{
		io:           io,
		authService:  authService,
		wordsService: wordsService,
	}
}

// SessionExpired подписчик события истечения сессии.
// Сообщает пользователю, что нужно войти заново
func (c *Cli) SessionExpired(ctx context.Context) {
	if c.expired.Swap(true) {
		return
	}
	c.io.Errorf("Your session has expired. Run 'vocab login' to sign in again.\n")
}

func (c *Cli) PrintUsage() {
	c.io.Println("Vocab Client")
	c.io.Println()
	c.io.Println("Usage:")
	c.io.Println("  vocab [OPTIONS] COMMAND")
	c.io.Println()
	c.io.Println("Options:")
	c.io.Println("  -version                Show version information")
	c.io.Println("  -server URL             Server URL (default: http://localhost:8080, env VOCAB_API_URL or API_URL)")
	c.io.Println("  -db PATH                Path to local credential database (default: vocab-client.db)")
	c.io.Println("  -store-secret SECRET    Seal stored tokens with this secret (env VOCAB_STORE_SECRET)")
	c.io.Println("  -ephemeral              Keep tokens in memory only")
	c.io.Println("  -timeout DURATION       HTTP request timeout (default: 30s)")
	c.io.Println("  -coalesce-reissue       Share one token reissue between concurrent requests")
	c.io.Println("  -log-level LEVEL        Log level: debug, info, warn, error (default: warn)")
	c.io.Println()
	c.io.Println("Commands:")
	c.io.Println("  login                   Sign in and save the session")
	c.io.Println("  logout                  Delete the saved session")
	c.io.Println("  status                  Show session status")
	c.io.Println("  words [-meanings] [-show ID,...]")
	c.io.Println("                          List your words; -meanings shows all meanings,")
	c.io.Println("                          -show toggles meanings of the listed cards")
	c.io.Println()
	c.io.Println("Examples:")
	c.io.Println("  vocab login")
	c.io.Println("  vocab words -meanings")
	c.io.Println("  vocab words -show 12-3,15-7")
	c.io.Println("  vocab -server https://vocab.example.com status")
}

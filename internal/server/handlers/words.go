package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/vocab/internal/models"
	"github.com/iudanet/vocab/internal/server/storage"
	"github.com/iudanet/vocab/pkg/api"
)

// WordsHandler отдает словарь пользователя
type WordsHandler struct {
	logger      *slog.Logger
	wordStorage storage.WordStorage
}

// NewWordsHandler создает новый handler для слов
func NewWordsHandler(logger *slog.Logger, wordStorage storage.WordStorage) *WordsHandler {
	return &WordsHandler{
		logger:      logger,
		wordStorage: wordStorage,
	}
}

// List обрабатывает GET /api/word
// Требует AuthMiddleware
func (h *WordsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	words, err := h.wordStorage.GetUserWords(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get user words", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.DebugContext(ctx, "returning words",
		slog.String("user_id", userID),
		slog.Int("count", len(words)))

	sendData(h.logger, w, toAPIWords(words))
}

func toAPIWords(words []*models.Word) []api.Word {
	out := make([]api.Word, 0, len(words))
	for _, w := range words {
		meanings := make([]api.Meaning, 0, len(w.Meanings))
		for _, m := range w.Meanings {
			meanings = append(meanings, api.Meaning{Meaning: m})
		}
		out = append(out, api.Word{
			WordID:     w.WordID,
			SentenceID: w.SentenceID,
			Word:       w.Word,
			Meanings:   meanings,
		})
	}
	return out
}

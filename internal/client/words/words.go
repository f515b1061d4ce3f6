package words

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/iudanet/vocab/pkg/api"
)

//go:generate moq -out source_mock.go . Source

// Source отдает слова пользователя с сервера
type Source interface {
	Words(ctx context.Context) ([]api.Word, error)
}

// Card одно слово в колоде вместе с контекстом предложения
type Card struct {
	ID         string
	Word       string
	Meanings   []string
	WordID     int64
	SentenceID int64
}

// Service загружает слова пользователя
type Service struct {
	source Source
}

// NewService создает сервис слов
func NewService(source Source) *Service {
	return &Service{source: source}
}

// List загружает слова и собирает из них карточки
func (s *Service) List(ctx context.Context) ([]Card, error) {
	items, err := s.source.Words(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load words: %w", err)
	}

	cards := make([]Card, 0, len(items))
	for _, item := range items {
		meanings := make([]string, 0, len(item.Meanings))
		for _, m := range item.Meanings {
			meanings = append(meanings, m.Meaning)
		}
		cards = append(cards, Card{
			ID:         CardID(item.WordID, item.SentenceID),
			Word:       item.Word,
			Meanings:   meanings,
			WordID:     item.WordID,
			SentenceID: item.SentenceID,
		})
	}

	return cards, nil
}

// CardID ключ карточки: одно слово может встречаться в нескольких предложениях
func CardID(wordID, sentenceID int64) string {
	return strconv.FormatInt(wordID, 10) + "-" + strconv.FormatInt(sentenceID, 10)
}

// FormatMeanings нумерует значения: "1. a 2. b"
func FormatMeanings(meanings []string) string {
	parts := make([]string, len(meanings))
	for i, m := range meanings {
		parts[i] = fmt.Sprintf("%d. %s", i+1, m)
	}
	return strings.Join(parts, " ")
}

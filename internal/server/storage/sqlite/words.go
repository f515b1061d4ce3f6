package sqlite

import (
	"context"
	"fmt"

	"github.com/iudanet/vocab/internal/models"
)

// GetUserWords returns the user's words in the order they were added.
// Значения слова отдаются по порядку position
func (s *Storage) GetUserWords(ctx context.Context, userID string) ([]*models.Word, error) {
	query := `
		SELECT uw.word_id, uw.sentence_id, w.word, m.meaning
		FROM user_words uw
		JOIN words w ON w.id = uw.word_id
		LEFT JOIN meanings m ON m.word_id = uw.word_id
		WHERE uw.user_id = ?
		ORDER BY uw.seq, m.position
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user words: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	words := make([]*models.Word, 0)
	var current *models.Word

	for rows.Next() {
		var (
			wordID, sentenceID int64
			text               string
			meaning            *string
		)
		if err := rows.Scan(&wordID, &sentenceID, &text, &meaning); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}

		// Строки одного слова идут подряд, по одной на значение
		if current == nil || current.WordID != wordID || current.SentenceID != sentenceID {
			current = &models.Word{
				WordID:     wordID,
				SentenceID: sentenceID,
				Word:       text,
				Meanings:   []string{},
			}
			words = append(words, current)
		}
		if meaning != nil {
			current.Meanings = append(current.Meanings, *meaning)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return words, nil
}

// AssignSeedWords adds every seeded word occurrence to the user's list
func (s *Storage) AssignSeedWords(ctx context.Context, userID string) (int, error) {
	query := `
		INSERT OR IGNORE INTO user_words (user_id, word_id, sentence_id)
		SELECT ?, sw.word_id, sw.sentence_id
		FROM sentence_words sw
		ORDER BY sw.sentence_id, sw.word_id
	`

	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to assign seed words: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}

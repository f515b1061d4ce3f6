package storage

import (
	"context"

	"github.com/iudanet/vocab/internal/models"
)

// WordStorage defines interface for the user's word list
type WordStorage interface {
	// GetUserWords returns the user's words in the order they were added
	// Returns empty slice if user has no words
	GetUserWords(ctx context.Context, userID string) ([]*models.Word, error)

	// AssignSeedWords adds every seeded word occurrence to the user's list
	// Returns number of added entries; already assigned entries are skipped
	AssignSeedWords(ctx context.Context, userID string) (int, error)
}

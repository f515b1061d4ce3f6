package words

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/vocab/pkg/api"
)

func TestService_List(t *testing.T) {
	source := &SourceMock{
		WordsFunc: func(ctx context.Context) ([]api.Word, error) {
			return []api.Word{
				{WordID: 1, SentenceID: 10, Word: "apple", Meanings: []api.Meaning{{Meaning: "사과"}, {Meaning: "사과나무"}}},
				{WordID: 1, SentenceID: 11, Word: "apple", Meanings: []api.Meaning{{Meaning: "사과"}}},
				{WordID: 2, SentenceID: 12, Word: "run"},
			}, nil
		},
	}

	cards, err := NewService(source).List(context.Background())

	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, "1-10", cards[0].ID)
	assert.Equal(t, "1-11", cards[1].ID)
	assert.Equal(t, []string{"사과", "사과나무"}, cards[0].Meanings)
	assert.Empty(t, cards[2].Meanings)
	assert.Len(t, source.WordsCalls(), 1)
}

func TestService_List_Error(t *testing.T) {
	wantErr := errors.New("boom")
	source := &SourceMock{
		WordsFunc: func(ctx context.Context) ([]api.Word, error) {
			return nil, wantErr
		},
	}

	cards, err := NewService(source).List(context.Background())

	require.Error(t, err)
	assert.Nil(t, cards)
	assert.ErrorIs(t, err, wantErr)
	assert.Contains(t, err.Error(), "failed to load words")
}

func TestFormatMeanings(t *testing.T) {
	tests := []struct {
		name     string
		want     string
		meanings []string
	}{
		{name: "empty", meanings: nil, want: ""},
		{name: "single", meanings: []string{"사과"}, want: "1. 사과"},
		{name: "several", meanings: []string{"a", "b", "c"}, want: "1. a 2. b 3. c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMeanings(tt.meanings))
		})
	}
}

func TestDeck(t *testing.T) {
	cards := []Card{{ID: "1-10"}, {ID: "2-11"}}
	deck := NewDeck(cards)

	assert.Equal(t, cards, deck.Cards())
	assert.False(t, deck.Visible("1-10"))
	assert.False(t, deck.Visible("2-11"))

	t.Run("toggle single card", func(t *testing.T) {
		assert.True(t, deck.Toggle("1-10"))
		assert.True(t, deck.Visible("1-10"))
		assert.False(t, deck.Visible("2-11"))

		assert.False(t, deck.Toggle("1-10"))
		assert.False(t, deck.Visible("1-10"))
	})

	t.Run("show all resets individual toggles", func(t *testing.T) {
		deck.Toggle("2-11")
		deck.ShowAll(true)
		assert.True(t, deck.Visible("1-10"))
		assert.True(t, deck.Visible("2-11"))

		assert.False(t, deck.Toggle("2-11"))
		assert.True(t, deck.Visible("1-10"))

		assert.False(t, deck.ToggleAll())
		assert.False(t, deck.Visible("1-10"))
		assert.False(t, deck.Visible("2-11"))
	})
}

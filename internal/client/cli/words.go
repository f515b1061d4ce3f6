package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/iudanet/vocab/internal/client/api"
	"github.com/iudanet/vocab/internal/client/words"
)

func (c *Cli) runWords(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("words", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	showAll := flags.Bool("meanings", false, "Show meanings of all words")
	show := flags.String("show", "", "Comma separated card IDs whose meanings are toggled")
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("invalid arguments. Usage: vocab words [-meanings] [-show ID,...]: %w", err)
	}

	cards, err := c.wordsService.List(ctx)
	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			return fmt.Errorf("not authenticated: %w", err)
		}
		return err
	}

	c.io.Println("=== Words ===")
	c.io.Println()

	if len(cards) == 0 {
		c.io.Println("No words found.")
		return nil
	}

	deck := words.NewDeck(cards)
	deck.ShowAll(*showAll)
	for _, id := range strings.Split(*show, ",") {
		if id = strings.TrimSpace(id); id != "" {
			deck.Toggle(id)
		}
	}

	c.io.Printf("Found %d word(s):\n", len(cards))
	c.io.Println()

	for i, card := range deck.Cards() {
		c.io.Printf("%d. %s [%s]\n", i+1, card.Word, card.ID)
		if deck.Visible(card.ID) {
			c.io.Printf("   %s\n", words.FormatMeanings(card.Meanings))
		}
	}

	if !*showAll {
		c.io.Println()
		c.io.Println("Use 'vocab words -meanings' to show all meanings.")
	}

	return nil
}

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/deckforge/internal/adapters/catalogfile"
	"github.com/example/deckforge/internal/ports/primary"
)

// CardAdapter translates CLI operations to CardService calls.
type CardAdapter struct {
	service primary.CardService
	out     io.Writer
}

// NewCardAdapter creates a new CardAdapter with the given service.
func NewCardAdapter(service primary.CardService, out io.Writer) *CardAdapter {
	return &CardAdapter{
		service: service,
		out:     out,
	}
}

// List lists catalog cards.
func (a *CardAdapter) List(ctx context.Context, types []string, search string, limit int) error {
	cards, err := a.service.QueryCards(ctx, primary.CardFilters{
		Types:  types,
		Search: search,
		Limit:  limit,
	})
	if err != nil {
		return fmt.Errorf("failed to list cards: %w", err)
	}

	if len(cards) == 0 {
		fmt.Fprintln(a.out, "No cards found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-20s %-11s %s\n", "ID", "TYPE", "SECTION", "NAME")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, c := range cards {
		fmt.Fprintf(a.out, "%-10s %-20s %-11s %s\n", c.ID, c.Type, c.Section, c.Name)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays a single card.
func (a *CardAdapter) Show(ctx context.Context, cardID string) error {
	card, err := a.service.GetCard(ctx, cardID)
	if err != nil {
		return fmt.Errorf("failed to get card: %w", err)
	}

	fmt.Fprintf(a.out, "\nCard:    %s\n", card.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", card.Name)
	fmt.Fprintf(a.out, "Type:    %s\n", card.Type)
	fmt.Fprintf(a.out, "Section: %s\n", card.Section)
	if card.Text != "" {
		fmt.Fprintf(a.out, "Text:    %s\n", card.Text)
	}
	if card.ImageURL != "" {
		fmt.Fprintf(a.out, "Image:   %s\n", card.ImageURL)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Import loads a CSV or YAML catalog file into the card catalog.
func (a *CardAdapter) Import(ctx context.Context, path string) error {
	cards, err := catalogfile.Load(path)
	if err != nil {
		return err
	}

	n, err := a.service.ImportCards(ctx, cards)
	if err != nil {
		return fmt.Errorf("failed to import cards: %w", err)
	}

	fmt.Fprintf(a.out, "✓ Imported %d cards from %s\n", n, path)
	return nil
}

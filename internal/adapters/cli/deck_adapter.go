// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/deckforge/internal/adapters/qr"
	"github.com/example/deckforge/internal/ports/primary"
)

// DeckAdapter is a thin adapter that translates CLI operations to DeckService calls.
// Each mutating command opens an editor, applies one change and saves.
type DeckAdapter struct {
	service primary.DeckService
	out     io.Writer
}

// NewDeckAdapter creates a new DeckAdapter with the given service.
func NewDeckAdapter(service primary.DeckService, out io.Writer) *DeckAdapter {
	return &DeckAdapter{
		service: service,
		out:     out,
	}
}

// NewDeckOptions holds the flags of `deck new`.
type NewDeckOptions struct {
	Name        string
	Description string
	Public      bool
	CardIDs     []string
}

// Create builds a deck from the given cards and saves it. Every card is
// checked against the deck rules before the deck is validated for save.
func (a *DeckAdapter) Create(ctx context.Context, opts NewDeckOptions) error {
	editor, err := a.service.NewDeck(ctx, primary.NewDeckRequest{
		Name:        opts.Name,
		Description: opts.Description,
		IsPublic:    opts.Public,
	})
	if err != nil {
		return err
	}

	for _, id := range opts.CardIDs {
		if _, err := editor.AddCard(ctx, id); err != nil {
			return fmt.Errorf("cannot add %s: %w", id, err)
		}
	}

	deckID, err := editor.Save(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created deck %s: %s (%d cards)\n", deckID, editor.Details().Name, len(opts.CardIDs))
	return nil
}

// List lists the player's decks, optionally including public ones.
func (a *DeckAdapter) List(ctx context.Context, includePublic bool) error {
	decks, err := a.service.ListDecks(ctx, primary.DeckFilters{IncludePublic: includePublic})
	if err != nil {
		return fmt.Errorf("failed to list decks: %w", err)
	}

	if len(decks) == 0 {
		fmt.Fprintln(a.out, "No decks found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-10s %-6s %-7s %s\n", "ID", "OWNER", "CARDS", "PUBLIC", "NAME")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, d := range decks {
		public := ""
		if d.IsPublic {
			public = "yes"
		}
		fmt.Fprintf(a.out, "%-10s %-10s %-6d %-7s %s\n", d.ID, d.OwnerID, len(d.CardIDs), public, d.Name)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show opens the deck and prints its organized layout.
func (a *DeckAdapter) Show(ctx context.Context, deckID string) error {
	deck, err := a.service.GetDeck(ctx, deckID)
	if err != nil {
		return fmt.Errorf("failed to get deck: %w", err)
	}

	fmt.Fprintf(a.out, "\nDeck:   %s\n", deck.ID)
	fmt.Fprintf(a.out, "Name:   %s\n", deck.Name)
	fmt.Fprintf(a.out, "Owner:  %s\n", deck.OwnerID)
	if deck.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", deck.Description)
	}
	fmt.Fprintf(a.out, "Cards:  %d\n", len(deck.CardIDs))

	// Owners get the full grid; other readers only see the saved slots.
	editor, err := a.service.EditDeck(ctx, deckID)
	if err != nil {
		fmt.Fprintln(a.out)
		for _, s := range deck.Slots {
			fmt.Fprintf(a.out, "  [%d,%d] %s\n", s.Row, s.Col, s.CardID)
		}
		fmt.Fprintln(a.out)
		return nil
	}

	a.printLayout(editor.Organize())
	return nil
}

// Add adds a card to a saved deck.
func (a *DeckAdapter) Add(ctx context.Context, deckID, cardID string) error {
	editor, err := a.service.EditDeck(ctx, deckID)
	if err != nil {
		return err
	}

	card, err := editor.AddCard(ctx, cardID)
	if err != nil {
		return err
	}
	if _, err := editor.Save(ctx); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Added %s %s to %s [%s]\n", card.ID, card.Name, deckID, card.Section)
	return nil
}

// Remove removes a card from a saved deck.
func (a *DeckAdapter) Remove(ctx context.Context, deckID, cardID string) error {
	editor, err := a.service.EditDeck(ctx, deckID)
	if err != nil {
		return err
	}

	if err := editor.RemoveCard(cardID); err != nil {
		return err
	}
	if _, err := editor.Save(ctx); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Removed %s from %s\n", cardID, deckID)
	return nil
}

// Swap drags the card at from onto the slot at to. Slots are written
// "section:index", for example "mainline:3" or "protector2".
func (a *DeckAdapter) Swap(ctx context.Context, deckID, from, to string) error {
	fromSection, fromIndex, err := ParseSlotRef(from)
	if err != nil {
		return err
	}
	toSection, toIndex, err := ParseSlotRef(to)
	if err != nil {
		return err
	}

	editor, err := a.service.EditDeck(ctx, deckID)
	if err != nil {
		return err
	}
	if err := editor.StartDrag(fromSection, fromIndex); err != nil {
		return err
	}
	result, err := editor.EndDrag(primary.DropTarget{Section: toSection, Index: toIndex})
	if err != nil {
		return err
	}
	if result.Effect == "cancelled" {
		fmt.Fprintf(a.out, "Nothing moved: %s\n", cancelReason(from, to, fromSection, fromIndex, toSection, toIndex))
		return nil
	}
	if _, err := editor.Save(ctx); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Moved %s to %s\n", result.CardID, to)
	return nil
}

// Trash drags the card in slot onto the trash, removing it from the deck.
func (a *DeckAdapter) Trash(ctx context.Context, deckID, slot string) error {
	section, index, err := ParseSlotRef(slot)
	if err != nil {
		return err
	}

	editor, err := a.service.EditDeck(ctx, deckID)
	if err != nil {
		return err
	}
	if err := editor.StartDrag(section, index); err != nil {
		return err
	}
	result, err := editor.EndDrag(primary.DropTarget{Trash: true})
	if err != nil {
		return err
	}
	if _, err := editor.Save(ctx); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Trashed %s from %s\n", result.CardID, deckID)
	return nil
}

// Check prints every completeness problem of a deck.
func (a *DeckAdapter) Check(ctx context.Context, deckID string) error {
	editor, err := a.service.EditDeck(ctx, deckID)
	if err != nil {
		return err
	}

	report := editor.CanFinalize()
	if report.Ready {
		fmt.Fprintf(a.out, "%s %s is ready to play\n", color.New(color.FgGreen).Sprint("✓"), deckID)
		return nil
	}

	fmt.Fprintf(a.out, "%s %s is not complete:\n", color.New(color.FgYellow).Sprint("!"), deckID)
	for _, r := range report.Reasons {
		fmt.Fprintf(a.out, "  - %s\n", r)
	}
	return nil
}

// Export prints the deck list. When qrPath is set, the deck's share code is
// also written there as a PNG.
func (a *DeckAdapter) Export(ctx context.Context, deckID, qrPath string, qrSize int) error {
	editor, err := a.service.EditDeck(ctx, deckID)
	if err != nil {
		return err
	}

	fmt.Fprint(a.out, editor.Export())

	if qrPath != "" {
		if err := qr.WriteSharePNG(qrPath, deckID, qrSize); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "✓ Wrote share code to %s\n", qrPath)
	}
	return nil
}

// Delete deletes a deck.
func (a *DeckAdapter) Delete(ctx context.Context, deckID string) error {
	if err := a.service.DeleteDeck(ctx, deckID); err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}

	fmt.Fprintf(a.out, "✓ Deleted deck %s\n", deckID)
	return nil
}

func (a *DeckAdapter) printLayout(layout *primary.Layout) {
	header := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(a.out)
	for _, s := range layout.Sections {
		filled := 0
		for _, c := range s.Cards {
			if c.CardID != "" {
				filled++
			}
		}
		fmt.Fprintf(a.out, "%s (%d/%d)\n", header.Sprint(strings.ToUpper(s.Section)), filled, s.Capacity)
		for i, c := range s.Cards {
			if c.CardID == "" {
				fmt.Fprintf(a.out, "  %2d  %s\n", i, color.New(color.FgHiBlack).Sprint("(empty)"))
				continue
			}
			fmt.Fprintf(a.out, "  %2d  %-10s %s\n", i, c.CardID, c.Name)
		}
	}
	if len(layout.Overflow) > 0 {
		fmt.Fprintf(a.out, "%s (%d)\n", header.Sprint("OTHERS"), len(layout.Overflow))
		for i, c := range layout.Overflow {
			fmt.Fprintf(a.out, "  %2d  %-10s %s %s\n", i, c.CardID, c.Name, color.New(color.FgYellow).Sprintf("[%s]", c.Type))
		}
	}
	fmt.Fprintln(a.out)
}

// cancelReason explains why a drag from one slot to another moved nothing.
func cancelReason(from, to, fromSection string, fromIndex int, toSection string, toIndex int) string {
	fromSection, fromIndex = canonicalSlot(fromSection, fromIndex)
	toSection, toIndex = canonicalSlot(toSection, toIndex)
	switch {
	case !strings.EqualFold(fromSection, toSection):
		return fmt.Sprintf("%s and %s are not in the same section", from, to)
	case fromIndex == toIndex:
		return fmt.Sprintf("%s and %s are the same slot", from, to)
	default:
		return fmt.Sprintf("%s is not a slot %s can move to", to, from)
	}
}

func canonicalSlot(section string, index int) (string, int) {
	switch strings.ToLower(section) {
	case "protector1":
		return "protectors", 0
	case "protector2":
		return "protectors", 1
	}
	return section, index
}

// ParseSlotRef parses "section:index" or the protector1/protector2
// shorthands. A bare section name means index 0.
func ParseSlotRef(ref string) (string, int, error) {
	ref = strings.TrimSpace(ref)
	switch strings.ToLower(ref) {
	case "protector1", "protector2":
		return strings.ToLower(ref), 0, nil
	}

	section, idx, found := strings.Cut(ref, ":")
	if section == "" {
		return "", 0, fmt.Errorf("invalid slot %q (want section:index)", ref)
	}
	if !found {
		return section, 0, nil
	}
	var index int
	if _, err := fmt.Sscanf(idx, "%d", &index); err != nil || index < 0 {
		return "", 0, fmt.Errorf("invalid slot index in %q", ref)
	}
	return section, index, nil
}

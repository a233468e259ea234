package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/deckforge/internal/ports/primary"
)

// HistoryAdapter translates CLI operations to HistoryService calls.
type HistoryAdapter struct {
	service primary.HistoryService
	out     io.Writer
}

// NewHistoryAdapter creates a new HistoryAdapter with the given service.
func NewHistoryAdapter(service primary.HistoryService, out io.Writer) *HistoryAdapter {
	return &HistoryAdapter{
		service: service,
		out:     out,
	}
}

// Show prints a deck's audit history.
func (a *HistoryAdapter) Show(ctx context.Context, deckID string) error {
	entries, err := a.service.DeckHistory(ctx, deckID)
	if err != nil {
		return fmt.Errorf("failed to get deck history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintf(a.out, "No history for %s\n", deckID)
		return nil
	}

	fmt.Fprintf(a.out, "\n%-20s %-10s %-8s %s\n", "WHEN", "PLAYER", "ACTION", "CHANGE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, e := range entries {
		change := ""
		if e.FieldName != "" {
			change = fmt.Sprintf("%s: %s -> %s", e.FieldName, e.OldValue, e.NewValue)
		}
		fmt.Fprintf(a.out, "%-20s %-10s %-8s %s\n", e.CreatedAt, e.ActorID, e.Action, change)
	}
	fmt.Fprintln(a.out)
	return nil
}

package app

import (
	"context"

	coredeck "github.com/example/deckforge/internal/core/deck"
	"github.com/example/deckforge/internal/ports/primary"
	"github.com/example/deckforge/internal/ports/secondary"
)

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	logRepo secondary.DeckLogRepository
	decks   primary.DeckService
}

// NewHistoryService creates a new HistoryService. Read access is checked
// through decks.
func NewHistoryService(logRepo secondary.DeckLogRepository, decks primary.DeckService) *HistoryServiceImpl {
	return &HistoryServiceImpl{
		logRepo: logRepo,
		decks:   decks,
	}
}

// DeckHistory lists a readable deck's audit entries, oldest first.
func (s *HistoryServiceImpl) DeckHistory(ctx context.Context, deckID string) ([]*primary.LogEntry, error) {
	if _, err := s.decks.GetDeck(ctx, deckID); err != nil {
		return nil, err
	}

	records, err := s.logRepo.ListByEntity(ctx, "deck", deckID)
	if err != nil {
		return nil, &coredeck.PersistenceError{Op: "list deck history", Err: err}
	}

	entries := make([]*primary.LogEntry, len(records))
	for i, r := range records {
		entries[i] = recordToLogEntry(r)
	}
	return entries, nil
}

// Helper methods

func recordToLogEntry(r *secondary.DeckLogRecord) *primary.LogEntry {
	return &primary.LogEntry{
		ID:        r.ID,
		ActorID:   r.ActorID,
		EntityID:  r.EntityID,
		Action:    r.Action,
		FieldName: r.FieldName,
		OldValue:  r.OldValue,
		NewValue:  r.NewValue,
		CreatedAt: r.CreatedAt,
	}
}

// Ensure HistoryServiceImpl implements the interface
var _ primary.HistoryService = (*HistoryServiceImpl)(nil)

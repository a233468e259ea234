package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	coredeck "github.com/example/deckforge/internal/core/deck"
	"github.com/example/deckforge/internal/ports/primary"
	"github.com/example/deckforge/internal/ports/secondary"
)

// CardServiceImpl implements the CardService interface.
type CardServiceImpl struct {
	cardRepo secondary.CardRepository
	logger   *zap.Logger
}

// NewCardService creates a new CardService with injected dependencies.
func NewCardService(cardRepo secondary.CardRepository, logger *zap.Logger) *CardServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CardServiceImpl{cardRepo: cardRepo, logger: logger}
}

// QueryCards lists catalog cards matching filters.
func (s *CardServiceImpl) QueryCards(ctx context.Context, filters primary.CardFilters) ([]*primary.Card, error) {
	records, err := s.cardRepo.Query(ctx, secondary.CardFilters{
		Types:  filters.Types,
		Search: strings.TrimSpace(filters.Search),
		Limit:  filters.Limit,
	})
	if err != nil {
		return nil, &coredeck.PersistenceError{Op: "query cards", Err: err}
	}

	cards := make([]*primary.Card, len(records))
	for i, r := range records {
		cards[i] = recordToCard(r)
	}
	return cards, nil
}

// GetCard retrieves a single card.
func (s *CardServiceImpl) GetCard(ctx context.Context, cardID string) (*primary.Card, error) {
	record, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, coredeck.ErrNotFound) {
			return nil, err
		}
		return nil, &coredeck.PersistenceError{Op: "get card", Err: err}
	}
	return recordToCard(record), nil
}

// ImportCards validates and writes catalog cards.
func (s *CardServiceImpl) ImportCards(ctx context.Context, cards []*primary.Card) (int, error) {
	records := make([]*secondary.CardRecord, 0, len(cards))
	for i, c := range cards {
		if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Type) == "" {
			return 0, coredeck.NewValidationError(fmt.Sprintf("card #%d: id, name and type are required", i+1))
		}
		records = append(records, &secondary.CardRecord{
			ID:       strings.TrimSpace(c.ID),
			Name:     strings.TrimSpace(c.Name),
			Type:     strings.TrimSpace(c.Type),
			Text:     c.Text,
			ImageURL: c.ImageURL,
		})
	}

	n, err := s.cardRepo.Upsert(ctx, records)
	if err != nil {
		return 0, &coredeck.PersistenceError{Op: "import cards", Err: err}
	}
	s.logger.Info("imported cards", zap.Int("count", n))
	return n, nil
}

func recordToCard(r *secondary.CardRecord) *primary.Card {
	return &primary.Card{
		ID:       r.ID,
		Name:     r.Name,
		Type:     r.Type,
		Section:  string(coredeck.Classify(coredeck.CardType(r.Type))),
		Text:     r.Text,
		ImageURL: r.ImageURL,
	}
}

func recordToCoreCard(r *secondary.CardRecord) coredeck.Card {
	return coredeck.Card{ID: r.ID, Name: r.Name, Type: coredeck.CardType(r.Type)}
}

// Ensure CardServiceImpl implements the interface
var _ primary.CardService = (*CardServiceImpl)(nil)

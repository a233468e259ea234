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

// DeckServiceImpl implements the DeckService interface.
type DeckServiceImpl struct {
	deckRepo  secondary.DeckRepository
	cardRepo  secondary.CardRepository
	identity  secondary.IdentityProvider
	logWriter secondary.LogWriter
	logger    *zap.Logger
}

// NewDeckService creates a new DeckService with injected dependencies.
func NewDeckService(
	deckRepo secondary.DeckRepository,
	cardRepo secondary.CardRepository,
	identity secondary.IdentityProvider,
	logWriter secondary.LogWriter,
	logger *zap.Logger,
) *DeckServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeckServiceImpl{
		deckRepo:  deckRepo,
		cardRepo:  cardRepo,
		identity:  identity,
		logWriter: logWriter,
		logger:    logger,
	}
}

// NewDeck opens an editor on an empty deck owned by the current player.
func (s *DeckServiceImpl) NewDeck(ctx context.Context, req primary.NewDeckRequest) (primary.DeckEditor, error) {
	player, err := s.currentPlayer(ctx)
	if err != nil {
		return nil, err
	}

	details := primary.DeckDetails{
		Name:        strings.TrimSpace(req.Name),
		OwnerID:     player,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}
	return s.newEditor(details, coredeck.NewComposition()), nil
}

// EditDeck hydrates a saved deck into an editor. Only the owner may edit.
func (s *DeckServiceImpl) EditDeck(ctx context.Context, deckID string) (primary.DeckEditor, error) {
	player, err := s.currentPlayer(ctx)
	if err != nil {
		return nil, err
	}

	record, err := s.loadDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}

	guardCtx := ownershipContext(record, player)
	if result := coredeck.CanReadDeck(guardCtx); !result.Allowed {
		return nil, coredeck.NotFound("deck", deckID)
	}
	if result := coredeck.CanEditDeck(guardCtx); !result.Allowed {
		return nil, coredeck.Forbidden(result.Reason)
	}

	comp, err := s.hydrate(ctx, record)
	if err != nil {
		return nil, err
	}

	details := primary.DeckDetails{
		ID:          record.ID,
		Name:        record.Name,
		OwnerID:     record.OwnerID,
		Description: record.Description,
		IsPublic:    record.IsPublic,
	}
	return s.newEditor(details, comp), nil
}

// GetDeck retrieves a deck the current player may read.
func (s *DeckServiceImpl) GetDeck(ctx context.Context, deckID string) (*primary.Deck, error) {
	player, err := s.currentPlayer(ctx)
	if err != nil {
		return nil, err
	}

	record, err := s.loadDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if result := coredeck.CanReadDeck(ownershipContext(record, player)); !result.Allowed {
		return nil, coredeck.NotFound("deck", deckID)
	}
	return recordToDeck(record), nil
}

// ListDecks lists the current player's decks and, optionally, public ones.
func (s *DeckServiceImpl) ListDecks(ctx context.Context, filters primary.DeckFilters) ([]*primary.Deck, error) {
	player, err := s.currentPlayer(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.deckRepo.List(ctx, secondary.DeckFilters{
		OwnerID:    player,
		PublicOnly: filters.IncludePublic,
		Limit:      filters.Limit,
	})
	if err != nil {
		return nil, &coredeck.PersistenceError{Op: "list decks", Err: err}
	}

	decks := make([]*primary.Deck, len(records))
	for i, r := range records {
		decks[i] = recordToDeck(r)
	}
	return decks, nil
}

// DeleteDeck deletes a deck owned by the current player.
func (s *DeckServiceImpl) DeleteDeck(ctx context.Context, deckID string) error {
	player, err := s.currentPlayer(ctx)
	if err != nil {
		return err
	}

	record, err := s.loadDeck(ctx, deckID)
	if err != nil {
		return err
	}

	guardCtx := ownershipContext(record, player)
	if result := coredeck.CanReadDeck(guardCtx); !result.Allowed {
		return coredeck.NotFound("deck", deckID)
	}
	if result := coredeck.CanDeleteDeck(guardCtx); !result.Allowed {
		return coredeck.Forbidden(result.Reason)
	}

	if err := s.deckRepo.Delete(ctx, deckID); err != nil {
		return &coredeck.PersistenceError{Op: "delete deck", Err: err}
	}
	if s.logWriter != nil {
		if err := s.logWriter.LogDelete(ctx, "deck", deckID); err != nil {
			s.logger.Warn("failed to write deck log", zap.String("deck_id", deckID), zap.Error(err))
		}
	}
	s.logger.Info("deleted deck", zap.String("deck_id", deckID), zap.String("player", player))
	return nil
}

func (s *DeckServiceImpl) currentPlayer(ctx context.Context) (string, error) {
	player, err := s.identity.CurrentPlayer(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve player: %w", err)
	}
	if player == "" {
		return "", coredeck.Forbidden("no active player")
	}
	return player, nil
}

func (s *DeckServiceImpl) loadDeck(ctx context.Context, deckID string) (*secondary.DeckRecord, error) {
	record, err := s.deckRepo.GetByID(ctx, deckID)
	if err != nil {
		if errors.Is(err, coredeck.ErrNotFound) {
			return nil, coredeck.NotFound("deck", deckID)
		}
		return nil, &coredeck.PersistenceError{Op: "get deck", Err: err}
	}
	return record, nil
}

// hydrate rebuilds a composition from the deck's slots. Cards the catalog no
// longer resolves, and Token cards, are dropped with a warning.
func (s *DeckServiceImpl) hydrate(ctx context.Context, record *secondary.DeckRecord) (coredeck.Composition, error) {
	slots := recordToSlots(record.Slots)
	if len(slots) == 0 {
		return coredeck.NewComposition(), nil
	}

	cardRecords, err := s.cardRepo.GetByIDs(ctx, coredeck.SlotOrder(slots))
	if err != nil {
		return coredeck.Composition{}, &coredeck.PersistenceError{Op: "resolve deck cards", Err: err}
	}
	cards := make([]coredeck.Card, len(cardRecords))
	for i, r := range cardRecords {
		cards[i] = recordToCoreCard(r)
	}

	comp, dropped := coredeck.Deserialize(slots, cards)
	if len(dropped) > 0 {
		s.logger.Warn("dropped unresolvable cards while loading deck",
			zap.String("deck_id", record.ID),
			zap.Strings("card_ids", dropped))
	}
	return comp, nil
}

func (s *DeckServiceImpl) newEditor(details primary.DeckDetails, comp coredeck.Composition) *Editor {
	return newEditor(editorDeps{
		deckRepo:  s.deckRepo,
		cardRepo:  s.cardRepo,
		logWriter: s.logWriter,
		logger:    s.logger,
	}, details, comp)
}

func ownershipContext(record *secondary.DeckRecord, player string) coredeck.OwnershipContext {
	return coredeck.OwnershipContext{
		DeckID:   record.ID,
		OwnerID:  record.OwnerID,
		PlayerID: player,
		IsPublic: record.IsPublic,
	}
}

func recordToSlots(records []secondary.SlotRecord) []coredeck.Slot {
	slots := make([]coredeck.Slot, len(records))
	for i, r := range records {
		slots[i] = coredeck.Slot{CardID: r.CardID, Row: r.Row, Col: r.Col}
	}
	return slots
}

func slotsToRecords(slots []coredeck.Slot) []secondary.SlotRecord {
	records := make([]secondary.SlotRecord, len(slots))
	for i, s := range slots {
		records[i] = secondary.SlotRecord{CardID: s.CardID, Row: s.Row, Col: s.Col}
	}
	return records
}

func slotsToDeckSlots(slots []coredeck.Slot) []primary.DeckSlot {
	out := make([]primary.DeckSlot, len(slots))
	for i, s := range slots {
		out[i] = primary.DeckSlot{CardID: s.CardID, Row: s.Row, Col: s.Col}
	}
	return out
}

func recordToDeck(r *secondary.DeckRecord) *primary.Deck {
	slots := recordToSlots(r.Slots)
	return &primary.Deck{
		DeckDetails: primary.DeckDetails{
			ID:          r.ID,
			Name:        r.Name,
			OwnerID:     r.OwnerID,
			Description: r.Description,
			IsPublic:    r.IsPublic,
		},
		Slots:     slotsToDeckSlots(slots),
		CardIDs:   coredeck.CardIDs(slots),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Ensure DeckServiceImpl implements the interface
var _ primary.DeckService = (*DeckServiceImpl)(nil)

// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import "context"

// DeckService defines the primary port for deck operations.
type DeckService interface {
	// NewDeck opens an editor on an empty, unsaved deck owned by the current player.
	NewDeck(ctx context.Context, req NewDeckRequest) (DeckEditor, error)

	// EditDeck opens an editor hydrated from a saved deck. Only the owner may edit.
	EditDeck(ctx context.Context, deckID string) (DeckEditor, error)

	// GetDeck retrieves a deck the current player may read.
	GetDeck(ctx context.Context, deckID string) (*Deck, error)

	// ListDecks lists the current player's decks and, optionally, public ones.
	ListDecks(ctx context.Context, filters DeckFilters) ([]*Deck, error)

	// DeleteDeck deletes a deck owned by the current player.
	DeleteDeck(ctx context.Context, deckID string) error
}

// DeckEditor is an interactive editing session over one deck composition.
// A single session has one writer; Save calls are serialized.
type DeckEditor interface {
	// Details returns the deck's metadata.
	Details() DeckDetails

	// UpdateDetails changes name, description or visibility. Nil fields are kept.
	UpdateDetails(req UpdateDeckRequest)

	// AddCard adds a catalog card after checking deck rules.
	AddCard(ctx context.Context, cardID string) (*Card, error)

	// RemoveCard removes a member card.
	RemoveCard(cardID string) error

	// StartDrag begins dragging the card in a grid slot.
	StartDrag(section string, index int) error

	// EndDrag drops the dragged card on a target.
	EndDrag(target DropTarget) (*DragResult, error)

	// Organize returns the current positional layout.
	Organize() *Layout

	// CanFinalize reports every completeness problem.
	CanFinalize() *FinalizeReport

	// Save validates and persists the deck, returning its ID.
	Save(ctx context.Context) (string, error)

	// Export renders the composition as a plain-text deck list.
	Export() string
}

// NewDeckRequest contains parameters for starting a new deck.
type NewDeckRequest struct {
	Name        string
	Description string
	IsPublic    bool
}

// UpdateDeckRequest contains optional deck metadata changes.
type UpdateDeckRequest struct {
	Name        *string
	Description *string
	IsPublic    *bool
}

// DeckDetails is deck metadata at the port boundary. ID is empty until the
// first save.
type DeckDetails struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OwnerID     string `json:"ownerId"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
}

// Deck represents a saved deck at the port boundary.
type Deck struct {
	DeckDetails
	Slots     []DeckSlot `json:"slots"`
	CardIDs   []string   `json:"cardIds"`
	CreatedAt string     `json:"createdAt"`
	UpdatedAt string     `json:"updatedAt"`
}

// DeckSlot is a persisted (card, row, col) position.
type DeckSlot struct {
	CardID string `json:"cardId"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

// DeckFilters contains filter options for listing decks.
type DeckFilters struct {
	IncludePublic bool
	Limit         int
}

// DropTarget describes where a drag ended. Trash wins over Section/Index;
// an empty Section without Trash is a drop outside any target.
type DropTarget struct {
	Section string `json:"section"`
	Index   int    `json:"index"`
	Trash   bool   `json:"trash"`
}

// DragResult reports what a finished drag did.
type DragResult struct {
	Effect string `json:"effect"` // cancelled, swap, removed
	CardID string `json:"cardId"`
}

// Layout is the organized deck with fixed-size sections. Empty slots carry
// an empty CardID.
type Layout struct {
	Sections []LayoutSection `json:"sections"`
	Overflow []CardSlot      `json:"overflow"`
	Slots    []DeckSlot      `json:"slots"`
}

// LayoutSection is one capped section of the grid.
type LayoutSection struct {
	Section  string     `json:"section"`
	Capacity int        `json:"capacity"`
	Cards    []CardSlot `json:"cards"`
}

// CardSlot is a grid position and the card in it, if any.
type CardSlot struct {
	CardID string `json:"cardId"`
	Name   string `json:"name"`
	Type   string `json:"type"`
}

// FinalizeReport lists every outstanding completeness problem.
type FinalizeReport struct {
	Ready   bool     `json:"ready"`
	Reasons []string `json:"reasons"`
}

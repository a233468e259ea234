package secondary

import "context"

// DeckRepository defines the secondary port for deck persistence.
type DeckRepository interface {
	// Create persists a new deck with its slots.
	Create(ctx context.Context, deck *DeckRecord) error

	// GetByID retrieves a deck and its slots by ID.
	GetByID(ctx context.Context, id string) (*DeckRecord, error)

	// Update overwrites a deck's details and replaces its slots.
	Update(ctx context.Context, deck *DeckRecord) error

	// Delete removes a deck and its slots.
	Delete(ctx context.Context, id string) error

	// List retrieves decks matching the given filters (slots not loaded).
	List(ctx context.Context, filters DeckFilters) ([]*DeckRecord, error)

	// NameExists reports whether the owner already has a deck with this
	// name, ignoring case. excludeID skips the deck being saved.
	NameExists(ctx context.Context, ownerID, name, excludeID string) (bool, error)

	// GetNextID returns the next available deck ID.
	GetNextID(ctx context.Context) (string, error)
}

// DeckRecord represents a deck as stored in persistence.
type DeckRecord struct {
	ID          string
	Name        string
	OwnerID     string
	Description string // Empty string means null
	IsPublic    bool
	Slots       []SlotRecord
	CreatedAt   string
	UpdatedAt   string
}

// SlotRecord is one persisted (card, row, col) position of a deck.
type SlotRecord struct {
	CardID string
	Row    int
	Col    int
}

// DeckFilters contains filter options for listing decks.
// OwnerID and PublicOnly combine with OR: the owner's decks plus public ones.
type DeckFilters struct {
	OwnerID    string
	PublicOnly bool
	Limit      int
}

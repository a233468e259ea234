// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// CardRepository defines the secondary port for the card catalog.
type CardRepository interface {
	// Query retrieves cards matching the given filters.
	Query(ctx context.Context, filters CardFilters) ([]*CardRecord, error)

	// GetByID retrieves a single card.
	GetByID(ctx context.Context, id string) (*CardRecord, error)

	// GetByIDs retrieves every known card among ids. Unknown IDs are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]*CardRecord, error)

	// Upsert inserts or replaces cards and returns how many were written.
	Upsert(ctx context.Context, cards []*CardRecord) (int, error)
}

// CardRecord represents a catalog card as stored in persistence.
type CardRecord struct {
	ID       string
	Name     string
	Type     string // Printed type line, e.g. "Adendei Titan"
	Text     string // Empty string means null
	ImageURL string // Empty string means null
}

// CardFilters contains filter options for querying cards.
type CardFilters struct {
	Types  []string
	Search string // Case-insensitive substring of the card name
	Limit  int
}

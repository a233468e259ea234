package primary

import "context"

// CardService defines the primary port for catalog operations.
type CardService interface {
	// QueryCards lists catalog cards matching filters.
	QueryCards(ctx context.Context, filters CardFilters) ([]*Card, error)

	// GetCard retrieves a single card.
	GetCard(ctx context.Context, cardID string) (*Card, error)

	// ImportCards adds or replaces catalog cards.
	ImportCards(ctx context.Context, cards []*Card) (int, error)
}

// Card represents a catalog card at the port boundary.
type Card struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Section  string `json:"section" yaml:"-"`
	Text     string `json:"text,omitempty" yaml:"text,omitempty"`
	ImageURL string `json:"imageUrl,omitempty" yaml:"image_url,omitempty"`
}

// CardFilters contains filter options for querying cards.
type CardFilters struct {
	Types  []string
	Search string
	Limit  int
}

package primary

import "context"

// HistoryService defines the primary port for deck audit history.
type HistoryService interface {
	// DeckHistory lists a readable deck's audit entries, oldest first.
	DeckHistory(ctx context.Context, deckID string) ([]*LogEntry, error)
}

// LogEntry represents a deck audit log entry at the port boundary.
type LogEntry struct {
	ID        int64  `json:"id"`
	ActorID   string `json:"actorId"`
	EntityID  string `json:"entityId"`
	Action    string `json:"action"`              // create, update, delete
	FieldName string `json:"fieldName,omitempty"` // For updates only
	OldValue  string `json:"oldValue,omitempty"`
	NewValue  string `json:"newValue,omitempty"`
	CreatedAt string `json:"createdAt"`
}

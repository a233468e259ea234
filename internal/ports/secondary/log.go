package secondary

import "context"

// LogWriter defines the interface for writing deck audit log entries.
// Implementations extract the acting player from context.
type LogWriter interface {
	// LogCreate logs a create operation for an entity.
	LogCreate(ctx context.Context, entityType, entityID string) error

	// LogUpdate logs an update operation for an entity field.
	// fieldName, oldValue, newValue describe what changed.
	LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error

	// LogDelete logs a delete operation for an entity.
	LogDelete(ctx context.Context, entityType, entityID string) error
}

// DeckLogRepository defines the secondary port for audit log persistence.
type DeckLogRepository interface {
	// Create persists a log entry.
	Create(ctx context.Context, entry *DeckLogRecord) error

	// ListByEntity retrieves entries for one entity, oldest first.
	ListByEntity(ctx context.Context, entityType, entityID string) ([]*DeckLogRecord, error)
}

// DeckLogRecord represents an audit log entry as stored in persistence.
type DeckLogRecord struct {
	ID         int64
	ActorID    string
	EntityType string
	EntityID   string
	Action     string // create, update, delete
	FieldName  string // Empty string means null
	OldValue   string // Empty string means null
	NewValue   string // Empty string means null
	CreatedAt  string
}

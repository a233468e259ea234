package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/deckforge/internal/ports/secondary"
)

// DeckLogRepository implements secondary.DeckLogRepository with SQLite.
type DeckLogRepository struct {
	db *sql.DB
}

// NewDeckLogRepository creates a new SQLite deck log repository.
func NewDeckLogRepository(db *sql.DB) *DeckLogRepository {
	return &DeckLogRepository{db: db}
}

// Create persists a new log entry. The ID is assigned by the database.
func (r *DeckLogRepository) Create(ctx context.Context, log *secondary.DeckLogRecord) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO deck_logs (actor_id, entity_type, entity_id, action, field_name, old_value, new_value) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		nullString(log.ActorID),
		log.EntityType,
		log.EntityID,
		log.Action,
		nullString(log.FieldName),
		nullString(log.OldValue),
		nullString(log.NewValue),
	)
	if err != nil {
		return fmt.Errorf("failed to create deck log: %w", err)
	}

	log.ID, _ = result.LastInsertId()
	return nil
}

// ListByEntity retrieves the entries for one entity, oldest first.
func (r *DeckLogRepository) ListByEntity(ctx context.Context, entityType, entityID string) ([]*secondary.DeckLogRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, actor_id, entity_type, entity_id, action, field_name, old_value, new_value, created_at FROM deck_logs WHERE entity_type = ? AND entity_id = ? ORDER BY id`,
		entityType, entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list deck logs: %w", err)
	}
	defer rows.Close()

	var logs []*secondary.DeckLogRecord
	for rows.Next() {
		var (
			actorID   sql.NullString
			fieldName sql.NullString
			oldValue  sql.NullString
			newValue  sql.NullString
			createdAt time.Time
		)

		record := &secondary.DeckLogRecord{}
		err := rows.Scan(&record.ID, &actorID, &record.EntityType, &record.EntityID, &record.Action,
			&fieldName, &oldValue, &newValue, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deck log: %w", err)
		}

		record.ActorID = actorID.String
		record.FieldName = fieldName.String
		record.OldValue = oldValue.String
		record.NewValue = newValue.String
		record.CreatedAt = createdAt.Format(time.RFC3339)
		logs = append(logs, record)
	}

	return logs, rows.Err()
}

// Ensure DeckLogRepository implements the interface
var _ secondary.DeckLogRepository = (*DeckLogRepository)(nil)

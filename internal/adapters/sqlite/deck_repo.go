package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	coredeck "github.com/example/deckforge/internal/core/deck"
	"github.com/example/deckforge/internal/ports/secondary"
)

// DeckRepository implements secondary.DeckRepository with SQLite.
type DeckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new SQLite deck repository.
func NewDeckRepository(db *sql.DB) *DeckRepository {
	return &DeckRepository{db: db}
}

const deckColumns = "id, name, owner_id, description, is_public, created_at, updated_at"

// Create persists a new deck and its slots in one transaction.
// The deck record must have ID pre-populated by the service layer.
func (r *DeckRepository) Create(ctx context.Context, deck *secondary.DeckRecord) error {
	if deck.ID == "" {
		return fmt.Errorf("deck ID must be pre-populated by service layer")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin deck create: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO decks (id, name, name_key, owner_id, description, is_public) VALUES (?, ?, ?, ?, ?, ?)",
		deck.ID, deck.Name, coredeck.NameKey(deck.Name), deck.OwnerID, nullString(deck.Description), deck.IsPublic,
	)
	if err != nil {
		return fmt.Errorf("failed to create deck: %w", err)
	}

	if err := insertSlots(ctx, tx, deck.ID, deck.Slots); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deck create: %w", err)
	}
	return nil
}

// GetByID retrieves a deck and its slots ordered by (row, col).
func (r *DeckRepository) GetByID(ctx context.Context, id string) (*secondary.DeckRecord, error) {
	record, err := scanDeck(r.db.QueryRowContext(ctx,
		"SELECT "+deckColumns+" FROM decks WHERE id = ?",
		id,
	))
	if err == sql.ErrNoRows {
		return nil, coredeck.NotFound("deck", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT card_id, row, col FROM deck_slots WHERE deck_id = ? ORDER BY row, col",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get deck slots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s secondary.SlotRecord
		if err := rows.Scan(&s.CardID, &s.Row, &s.Col); err != nil {
			return nil, fmt.Errorf("failed to scan deck slot: %w", err)
		}
		record.Slots = append(record.Slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read deck slots: %w", err)
	}

	return record, nil
}

// Update overwrites a deck's details and replaces its slots in one transaction.
func (r *DeckRepository) Update(ctx context.Context, deck *secondary.DeckRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin deck update: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE decks SET name = ?, name_key = ?, description = ?, is_public = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		deck.Name, coredeck.NameKey(deck.Name), nullString(deck.Description), deck.IsPublic, deck.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update deck: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return coredeck.NotFound("deck", deck.ID)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM deck_slots WHERE deck_id = ?", deck.ID); err != nil {
		return fmt.Errorf("failed to clear deck slots: %w", err)
	}
	if err := insertSlots(ctx, tx, deck.ID, deck.Slots); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deck update: %w", err)
	}
	return nil
}

// Delete removes a deck; its slots cascade.
func (r *DeckRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM decks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return coredeck.NotFound("deck", id)
	}

	return nil
}

// List retrieves decks matching the given filters, most recently updated
// first. Slots are not loaded.
func (r *DeckRepository) List(ctx context.Context, filters secondary.DeckFilters) ([]*secondary.DeckRecord, error) {
	query := "SELECT " + deckColumns + " FROM decks"
	var (
		where []string
		args  []any
	)

	if filters.OwnerID != "" {
		where = append(where, "owner_id = ?")
		args = append(args, filters.OwnerID)
	}
	if filters.PublicOnly {
		where = append(where, "is_public = 1")
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " OR ")
	}

	query += " ORDER BY updated_at DESC, id"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	var decks []*secondary.DeckRecord
	for rows.Next() {
		record, err := scanDeck(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		decks = append(decks, record)
	}

	return decks, rows.Err()
}

// NameExists reports whether the owner has another deck with this name,
// compared by coredeck.NameKey.
func (r *DeckRepository) NameExists(ctx context.Context, ownerID, name, excludeID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM decks WHERE owner_id = ? AND name_key = ? AND id != ?",
		ownerID, coredeck.NameKey(name), excludeID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check deck name: %w", err)
	}
	return count > 0, nil
}

// GetNextID returns the next available deck ID.
// Uses core function for ID format to keep business logic in the functional core.
func (r *DeckRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM decks WHERE id LIKE 'DECK-%'",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next deck ID: %w", err)
	}

	return coredeck.GenerateDeckID(maxID), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeck(row rowScanner) (*secondary.DeckRecord, error) {
	var (
		desc      sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.DeckRecord{}
	err := row.Scan(&record.ID, &record.Name, &record.OwnerID, &desc, &record.IsPublic, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.Description = desc.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

func insertSlots(ctx context.Context, tx *sql.Tx, deckID string, slots []secondary.SlotRecord) error {
	if len(slots) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO deck_slots (deck_id, card_id, row, col) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare deck slots: %w", err)
	}
	defer stmt.Close()

	for _, s := range slots {
		if _, err := stmt.ExecContext(ctx, deckID, s.CardID, s.Row, s.Col); err != nil {
			return fmt.Errorf("failed to write slot (%d,%d): %w", s.Row, s.Col, err)
		}
	}
	return nil
}

// Ensure DeckRepository implements the interface
var _ secondary.DeckRepository = (*DeckRepository)(nil)

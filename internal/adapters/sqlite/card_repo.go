// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	coredeck "github.com/example/deckforge/internal/core/deck"
	"github.com/example/deckforge/internal/ports/secondary"
)

// CardRepository implements secondary.CardRepository with SQLite.
type CardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new SQLite card repository.
func NewCardRepository(db *sql.DB) *CardRepository {
	return &CardRepository{db: db}
}

const cardColumns = "id, name, card_type, rules_text, image_url"

// Query retrieves catalog cards matching the given filters, ordered by ID.
func (r *CardRepository) Query(ctx context.Context, filters secondary.CardFilters) ([]*secondary.CardRecord, error) {
	query := "SELECT " + cardColumns + " FROM cards"
	var (
		where []string
		args  []any
	)

	if len(filters.Types) > 0 {
		where = append(where, "card_type IN ("+placeholders(len(filters.Types))+")")
		for _, t := range filters.Types {
			args = append(args, t)
		}
	}
	if filters.Search != "" {
		where = append(where, "name LIKE ?")
		args = append(args, "%"+filters.Search+"%")
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	query += " ORDER BY id"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	return scanCards(rows)
}

// GetByID retrieves a card by its ID.
func (r *CardRepository) GetByID(ctx context.Context, id string) (*secondary.CardRecord, error) {
	var text, imageURL sql.NullString

	record := &secondary.CardRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT "+cardColumns+" FROM cards WHERE id = ?",
		id,
	).Scan(&record.ID, &record.Name, &record.Type, &text, &imageURL)

	if err == sql.ErrNoRows {
		return nil, coredeck.NotFound("card", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	record.Text = text.String
	record.ImageURL = imageURL.String
	return record, nil
}

// GetByIDs retrieves the cards that exist among ids. Unknown IDs are skipped.
func (r *CardRepository) GetByIDs(ctx context.Context, ids []string) ([]*secondary.CardRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+cardColumns+" FROM cards WHERE id IN ("+placeholders(len(ids))+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards: %w", err)
	}
	defer rows.Close()

	return scanCards(rows)
}

// Upsert inserts or replaces catalog cards in one transaction.
func (r *CardRepository) Upsert(ctx context.Context, cards []*secondary.CardRecord) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin card import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cards (id, name, card_type, rules_text, image_url) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			card_type = excluded.card_type,
			rules_text = excluded.rules_text,
			image_url = excluded.image_url,
			updated_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare card import: %w", err)
	}
	defer stmt.Close()

	for _, c := range cards {
		if _, err := stmt.ExecContext(ctx, c.ID, c.Name, c.Type, nullString(c.Text), nullString(c.ImageURL)); err != nil {
			return 0, fmt.Errorf("failed to import card %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit card import: %w", err)
	}
	return len(cards), nil
}

func scanCards(rows *sql.Rows) ([]*secondary.CardRecord, error) {
	var cards []*secondary.CardRecord
	for rows.Next() {
		var text, imageURL sql.NullString

		record := &secondary.CardRecord{}
		if err := rows.Scan(&record.ID, &record.Name, &record.Type, &text, &imageURL); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		record.Text = text.String
		record.ImageURL = imageURL.String
		cards = append(cards, record)
	}
	return cards, rows.Err()
}

// placeholders returns "?, ?, ..." with n markers.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// nullString maps the empty string to NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Ensure CardRepository implements the interface
var _ secondary.CardRepository = (*CardRepository)(nil)

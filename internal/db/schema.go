package db

import (
	"database/sql"

	"go.uber.org/zap"
)

// SchemaSQL is the complete schema for fresh installs.
// It reflects the current state after all migrations.
//
// This is the single source of truth for the database schema. Repository tests
// load it through GetSchemaSQL() so a column referenced by code but missing
// here fails immediately with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Cards (the catalog, read-only to the deck engine)
CREATE TABLE IF NOT EXISTS cards (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	card_type TEXT NOT NULL,
	rules_text TEXT,
	image_url TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_cards_type ON cards(card_type);
CREATE INDEX IF NOT EXISTS idx_cards_name ON cards(name COLLATE NOCASE);

-- Decks (saved compositions)
CREATE TABLE IF NOT EXISTS decks (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	name_key TEXT NOT NULL,
	owner_id TEXT NOT NULL,
	description TEXT,
	is_public INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_decks_owner ON decks(owner_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_decks_owner_name_key ON decks(owner_id, name_key);

-- Deck slots (the persisted row/col layout)
CREATE TABLE IF NOT EXISTS deck_slots (
	deck_id TEXT NOT NULL,
	card_id TEXT NOT NULL,
	row INTEGER NOT NULL CHECK(row >= 0),
	col INTEGER NOT NULL CHECK(col >= 0 AND col < 3),
	PRIMARY KEY (deck_id, row, col),
	FOREIGN KEY (deck_id) REFERENCES decks(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_deck_slots_card ON deck_slots(card_id);

-- Deck logs (audit trail of deck changes)
CREATE TABLE IF NOT EXISTS deck_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	actor_id TEXT,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
	field_name TEXT,
	old_value TEXT,
	new_value TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_deck_logs_entity ON deck_logs(entity_type, entity_id);
`

// InitSchema creates the schema on a fresh database, or runs pending
// migrations on an existing one.
func InitSchema(database *sql.DB, logger *zap.Logger) error {
	var tableCount int
	err := database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		return RunMigrations(database, logger)
	}

	// Fresh install: create the modern schema directly and mark every
	// migration as applied.
	if _, err := database.Exec(SchemaSQL); err != nil {
		return err
	}
	if err := createVersionTable(database); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}

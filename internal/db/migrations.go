package db

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	coredeck "github.com/example/deckforge/internal/core/deck"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_cards_and_decks",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_deck_visibility_and_description",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_deck_logs_table",
		Up:      migrationV3,
	},
	{
		Version: 4,
		Name:    "unique_deck_names_per_owner",
		Up:      migrationV4,
	},
	{
		Version: 5,
		Name:    "add_deck_name_key",
		Up:      migrationV5,
	},
}

func createVersionTable(database *sql.DB) error {
	_, err := database.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// RunMigrations executes all pending migrations, each in its own transaction.
func RunMigrations(database *sql.DB, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := createVersionTable(database); err != nil {
		return err
	}

	var currentVersion int
	err := database.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		logger.Info("running migration",
			zap.Int("version", migration.Version),
			zap.String("name", migration.Name))

		tx, err := database.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 creates the catalog, deck and slot tables.
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
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

		CREATE TABLE IF NOT EXISTS decks (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			owner_id TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_decks_owner ON decks(owner_id);

		CREATE TABLE IF NOT EXISTS deck_slots (
			deck_id TEXT NOT NULL,
			card_id TEXT NOT NULL,
			row INTEGER NOT NULL CHECK(row >= 0),
			col INTEGER NOT NULL CHECK(col >= 0 AND col < 3),
			PRIMARY KEY (deck_id, row, col),
			FOREIGN KEY (deck_id) REFERENCES decks(id) ON DELETE CASCADE
		);
		CREATE INDEX IF NOT EXISTS idx_deck_slots_card ON deck_slots(card_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to create deck tables: %w", err)
	}
	return nil
}

// migrationV2 adds description and public visibility to decks.
func migrationV2(tx *sql.Tx) error {
	if _, err := tx.Exec("ALTER TABLE decks ADD COLUMN description TEXT"); err != nil {
		return fmt.Errorf("failed to add description column: %w", err)
	}
	if _, err := tx.Exec("ALTER TABLE decks ADD COLUMN is_public INTEGER NOT NULL DEFAULT 0"); err != nil {
		return fmt.Errorf("failed to add is_public column: %w", err)
	}
	return nil
}

// migrationV3 adds the deck audit log.
func migrationV3(tx *sql.Tx) error {
	_, err := tx.Exec(`
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
	`)
	if err != nil {
		return fmt.Errorf("failed to create deck_logs table: %w", err)
	}
	return nil
}

// migrationV4 enforces case-insensitive deck name uniqueness per owner.
// Older duplicates get the deck ID appended so the index can be built.
func migrationV4(tx *sql.Tx) error {
	_, err := tx.Exec(`
		UPDATE decks SET name = name || ' (' || id || ')'
		WHERE EXISTS (
			SELECT 1 FROM decks d
			WHERE d.owner_id = decks.owner_id
			  AND d.name = decks.name COLLATE NOCASE
			  AND d.id < decks.id
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to rename duplicate decks: %w", err)
	}

	_, err = tx.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_decks_owner_name ON decks(owner_id, name COLLATE NOCASE)")
	if err != nil {
		return fmt.Errorf("failed to create deck name index: %w", err)
	}
	return nil
}

// migrationV5 replaces the NOCASE name index, which only folds ASCII, with a
// name_key column computed by coredeck.NameKey. Decks that collide under full
// case folding get the deck ID appended, as in migrationV4.
func migrationV5(tx *sql.Tx) error {
	if _, err := tx.Exec("ALTER TABLE decks ADD COLUMN name_key TEXT NOT NULL DEFAULT ''"); err != nil {
		return fmt.Errorf("failed to add name_key column: %w", err)
	}

	type deckName struct{ id, name, owner string }
	rows, err := tx.Query("SELECT id, name, owner_id FROM decks ORDER BY id")
	if err != nil {
		return fmt.Errorf("failed to read deck names: %w", err)
	}
	var decks []deckName
	for rows.Next() {
		var d deckName
		if err := rows.Scan(&d.id, &d.name, &d.owner); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan deck name: %w", err)
		}
		decks = append(decks, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read deck names: %w", err)
	}

	seen := make(map[string]bool)
	for _, d := range decks {
		if seen[d.owner+"\x00"+coredeck.NameKey(d.name)] {
			d.name = d.name + " (" + d.id + ")"
		}
		key := coredeck.NameKey(d.name)
		seen[d.owner+"\x00"+key] = true

		if _, err := tx.Exec("UPDATE decks SET name = ?, name_key = ? WHERE id = ?", d.name, key, d.id); err != nil {
			return fmt.Errorf("failed to set name_key for %s: %w", d.id, err)
		}
	}

	if _, err := tx.Exec("DROP INDEX IF EXISTS idx_decks_owner_name"); err != nil {
		return fmt.Errorf("failed to drop deck name index: %w", err)
	}
	if _, err := tx.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_decks_owner_name_key ON decks(owner_id, name_key)"); err != nil {
		return fmt.Errorf("failed to create deck name_key index: %w", err)
	}
	return nil
}

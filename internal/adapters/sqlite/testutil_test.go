// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// Do not hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	coredeck "github.com/example/deckforge/internal/core/deck"
	"github.com/example/deckforge/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedCard inserts a test card and returns its ID.
func seedCard(t *testing.T, db *sql.DB, id, name, cardType string) string {
	t.Helper()
	_, err := db.Exec("INSERT INTO cards (id, name, card_type) VALUES (?, ?, ?)", id, name, cardType)
	if err != nil {
		t.Fatalf("failed to seed card: %v", err)
	}
	return id
}

// seedDeck inserts a test deck without slots and returns its ID.
func seedDeck(t *testing.T, db *sql.DB, id, name, ownerID string, public bool) string {
	t.Helper()
	_, err := db.Exec("INSERT INTO decks (id, name, name_key, owner_id, is_public) VALUES (?, ?, ?, ?, ?)", id, name, coredeck.NameKey(name), ownerID, public)
	if err != nil {
		t.Fatalf("failed to seed deck: %v", err)
	}
	return id
}

package db

import (
	"database/sql"
	"fmt"

	coredeck "github.com/example/deckforge/internal/core/deck"
)

// SeedOwner owns the sample deck created by SeedFixtures.
const SeedOwner = "demo"

var seedCards = []struct {
	id, name string
	cardType coredeck.CardType
}{
	{"KDM-001", "Guardián del Umbral", coredeck.TypeProtector},
	{"KDM-002", "Centinela de Obsidiana", coredeck.TypeProtector},
	{"KDM-003", "Vigía del Alba", coredeck.TypeProtector},
	{"KDM-004", "Semilla Primordial", coredeck.TypeBio},
	{"KDM-005", "Raíz del Mundo", coredeck.TypeBio},
	{"KDM-006", "Niebla Corrosiva", coredeck.TypeRot},
	{"KDM-007", "Plaga Silente", coredeck.TypeRot},
	{"KDM-008", "Óxido Voraz", coredeck.TypeRot},
	{"KDM-009", "Marchitez", coredeck.TypeRot},
	{"KDM-010", "Fiebre Negra", coredeck.TypeRot},
	{"KDM-011", "Descomposición", coredeck.TypeRot},
	{"KDM-012", "Glifo Solar", coredeck.TypeIxim},
	{"KDM-013", "Glifo Lunar", coredeck.TypeIxim},
	{"KDM-014", "Sello de Jade", coredeck.TypeIxim},
	{"KDM-015", "Runa de Viento", coredeck.TypeIxim},
	{"KDM-016", "Marca del Trueno", coredeck.TypeIxim},
	{"KDM-017", "Rava Errante", coredeck.TypeRava},
	{"KDM-018", "Rava Ancestral", coredeck.TypeRava},
	{"KDM-019", "Zorro de Ceniza", coredeck.TypeAdendei},
	{"KDM-020", "Búho Nocturno", coredeck.TypeAdendei},
	{"KDM-021", "Lobo de Escarcha", coredeck.TypeAdendei},
	{"KDM-022", "Ciervo Astral", coredeck.TypeAdendei},
	{"KDM-023", "Coloso de Basalto", coredeck.TypeAdendeiTitan},
	{"KDM-024", "Titán de Coral", coredeck.TypeAdendeiTitan},
	{"KDM-025", "Custodio Alado", coredeck.TypeAdendeiGuardian},
	{"KDM-026", "Custodio de Piedra", coredeck.TypeAdendeiGuardian},
	{"KDM-027", "Catrín Elegante", coredeck.TypeAdendeiCatrin},
	{"KDM-028", "Catrina Dorada", coredeck.TypeAdendeiCatrin},
	{"KDM-029", "Cometa Kósmico", coredeck.TypeAdendeiKosmico},
	{"KDM-030", "Nebulosa Viva", coredeck.TypeAdendeiKosmico},
	{"KDM-031", "Leviatán Abismal", coredeck.TypeAdendeiAbismal},
	{"KDM-032", "Anguila Abismal", coredeck.TypeAdendeiAbismal},
	{"KDM-033", "Jabalí Infectado", coredeck.TypeAdendeiInfectado},
	{"KDM-034", "Cuervo Infectado", coredeck.TypeAdendeiInfectado},
	{"KDM-035", "Corcel de Bruma", coredeck.TypeAdendeiEquino},
	{"KDM-036", "Potro Relámpago", coredeck.TypeAdendeiEquino},
	{"KDM-037", "Esqueleto Resurrecto", coredeck.TypeAdendeiResurrecto},
	{"KDM-038", "Jaguar Resurrecto", coredeck.TypeAdendeiResurrecto},
	{"KDM-039", "Espora", coredeck.TypeToken},
	{"KDM-040", "Templo Hundido", coredeck.TypeZona},
	{"KDM-041", "Red de Espinas", coredeck.TypeTrampa},
}

// SeedFixtures populates the database with a sample catalog and one
// legal sample deck owned by SeedOwner.
func SeedFixtures(database *sql.DB) error {
	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	defer tx.Rollback()

	for _, c := range seedCards {
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO cards (id, name, card_type) VALUES (?, ?, ?)",
			c.id, c.name, string(c.cardType),
		); err != nil {
			return fmt.Errorf("seed cards: %w", err)
		}
	}

	var exists int
	if err := tx.QueryRow("SELECT COUNT(*) FROM decks WHERE id = 'DECK-001'").Scan(&exists); err != nil {
		return fmt.Errorf("seed decks: %w", err)
	}
	if exists == 0 {
		if _, err := tx.Exec(
			"INSERT INTO decks (id, name, name_key, owner_id, description, is_public) VALUES ('DECK-001', 'Starter Mainline', ?, ?, 'Sample deck', 1)",
			coredeck.NameKey("Starter Mainline"), SeedOwner,
		); err != nil {
			return fmt.Errorf("seed decks: %w", err)
		}

		// KDM-001 as protector, then the 20 mainline cards in catalog order.
		deckCards := []string{"KDM-001"}
		for i := 17; i <= 36; i++ {
			deckCards = append(deckCards, fmt.Sprintf("KDM-%03d", i))
		}
		for k, id := range deckCards {
			slot := coredeck.SlotAt(k, id)
			if _, err := tx.Exec(
				"INSERT INTO deck_slots (deck_id, card_id, row, col) VALUES ('DECK-001', ?, ?, ?)",
				slot.CardID, slot.Row, slot.Col,
			); err != nil {
				return fmt.Errorf("seed deck slots: %w", err)
			}
		}
	}

	return tx.Commit()
}

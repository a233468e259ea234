package deck

import "fmt"

// GenerateDeckID generates a deck ID from the current max number.
// The format is DECK-XXX where XXX is a zero-padded 3-digit number.
func GenerateDeckID(currentMax int) string {
	return fmt.Sprintf("DECK-%03d", currentMax+1)
}

// ParseDeckNumber extracts the numeric portion from a deck ID.
// Returns -1 if the ID format is invalid.
func ParseDeckNumber(id string) int {
	var num int
	_, err := fmt.Sscanf(id, "DECK-%d", &num)
	if err != nil {
		return -1
	}
	return num
}

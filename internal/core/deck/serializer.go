package deck

import "sort"

// Columns is the fixed width of the persisted slot grid.
const Columns = 3

// Slot is one persisted position of a deck: the card and its grid address.
type Slot struct {
	CardID string `json:"cardId"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

// SlotAt returns the slot address of the k-th emitted card.
func SlotAt(k int, cardID string) Slot {
	return Slot{CardID: cardID, Row: k / Columns, Col: k % Columns}
}

// Serialize linearizes a layout: protector1, protector2, bio, rot, ixim,
// mainline, then overflow, each in list order.
func Serialize(l Layout) []Slot {
	ids := l.Placed()
	slots := make([]Slot, len(ids))
	for k, id := range ids {
		slots[k] = SlotAt(k, id)
	}
	return slots
}

// CardIDs projects slots to their card IDs, preserving order.
func CardIDs(slots []Slot) []string {
	ids := make([]string, len(slots))
	for i, s := range slots {
		ids[i] = s.CardID
	}
	return ids
}

// SlotOrder sorts slots by (row, col) and returns their card IDs with later
// duplicates dropped. Historical decks may carry duplicates; they are ignored
// rather than rejected.
func SlotOrder(slots []Slot) []string {
	sorted := append([]Slot(nil), slots...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Col < sorted[j].Col
	})

	seen := make(map[string]bool, len(sorted))
	ids := make([]string, 0, len(sorted))
	for _, s := range sorted {
		if s.CardID == "" || seen[s.CardID] {
			continue
		}
		seen[s.CardID] = true
		ids = append(ids, s.CardID)
	}
	return ids
}

// Deserialize rebuilds a composition from persisted slots. cards resolves the
// slot IDs (typically the catalog's answer to a lookup by IDs). Slot IDs the
// catalog no longer knows and Token cards are skipped and returned as dropped.
func Deserialize(slots []Slot, cards []Card) (Composition, []string) {
	byID := make(map[string]Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}

	var (
		ordered []Card
		dropped []string
	)
	for _, id := range SlotOrder(slots) {
		c, ok := byID[id]
		if !ok || IsToken(c.Type) {
			dropped = append(dropped, id)
			continue
		}
		ordered = append(ordered, c)
	}
	return ComposeFrom(ordered), dropped
}

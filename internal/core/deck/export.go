package deck

import (
	"fmt"
	"strings"
)

// ShareCodePrefix marks a deck share code.
const ShareCodePrefix = "deckforge:"

// ShareCode returns the share code for a saved deck.
func ShareCode(deckID string) string {
	return ShareCodePrefix + deckID
}

// ParseShareCode extracts the deck ID from a share code.
func ParseShareCode(code string) (string, bool) {
	id, ok := strings.CutPrefix(strings.TrimSpace(code), ShareCodePrefix)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// ExportText renders a composition as a plain-text deck list, one
// "1x <id> <name>" line per card, grouped by layout position.
func ExportText(name string, c Composition) string {
	l := Organize(c)
	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "# %s\n", name)
	}

	groups := []struct {
		title string
		ids   []string
	}{
		{"Protectors", l.Protectors.Capped},
		{"Bio", l.Bio.Capped},
		{"Rot", l.Rot.Capped},
		{"Ixim", l.Ixim.Capped},
		{"Adendei/Rava", l.Mainline.Capped},
		{"Overflow", l.Overflow()},
	}
	for _, g := range groups {
		if len(g.ids) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s (%d)\n", g.title, len(g.ids))
		for _, id := range g.ids {
			card, _ := c.Card(id)
			fmt.Fprintf(&b, "1x %s %s\n", id, card.Name)
		}
	}
	return b.String()
}

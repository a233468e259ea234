package deck

import "fmt"

func card(id, name string, t CardType) Card {
	return Card{ID: id, Name: name, Type: t}
}

// series returns n distinct cards of one type with IDs prefix-1..prefix-n.
func series(prefix string, t CardType, n int) []Card {
	out := make([]Card, n)
	for i := range out {
		id := fmt.Sprintf("%s-%d", prefix, i+1)
		out[i] = card(id, "Card "+id, t)
	}
	return out
}

// build adds cards through the rule engine, skipping rejected ones.
func build(cards ...Card) Composition {
	c := NewComposition()
	for _, cd := range cards {
		if CanAddCard(c, cd).Allowed {
			c = c.With(cd)
		}
	}
	return c
}

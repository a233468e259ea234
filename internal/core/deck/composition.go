package deck

// SectionOrder maps each section to its ordered list of card IDs.
type SectionOrder map[Section][]string

// Clone returns a deep copy of the order.
func (o SectionOrder) Clone() SectionOrder {
	out := make(SectionOrder, len(o))
	for s, ids := range o {
		out[s] = append([]string(nil), ids...)
	}
	return out
}

// Reconcile restores the partition invariant between a membership list and a
// section order. IDs no longer in members are filtered out of every section;
// members not yet placed are appended to the end of their section in member
// order. Existing relative order is never changed, so running it twice with
// the same members is a no-op.
func Reconcile(members []Card, order SectionOrder) SectionOrder {
	byID := make(map[string]Card, len(members))
	for _, c := range members {
		byID[c.ID] = c
	}

	out := make(SectionOrder, len(Sections))
	placed := make(map[string]bool, len(members))
	for _, s := range Sections {
		kept := make([]string, 0, len(order[s]))
		for _, id := range order[s] {
			c, ok := byID[id]
			// A card sitting in the wrong section (or twice) is re-homed below.
			if !ok || placed[id] || c.Section() != s {
				continue
			}
			placed[id] = true
			kept = append(kept, id)
		}
		out[s] = kept
	}

	for _, c := range members {
		if placed[c.ID] {
			continue
		}
		placed[c.ID] = true
		s := c.Section()
		out[s] = append(out[s], c.ID)
	}
	return out
}

// Composition is the editable state of a deck: the member cards plus their
// per-section arrangement. It is a value type; every mutation returns a new
// Composition and leaves the receiver untouched.
type Composition struct {
	members []Card
	order   SectionOrder
}

// NewComposition returns an empty composition.
func NewComposition() Composition {
	return Composition{order: Reconcile(nil, nil)}
}

// ComposeFrom builds a composition from cards in arrangement order.
// Later duplicates of an ID are dropped.
func ComposeFrom(cards []Card) Composition {
	seen := make(map[string]bool, len(cards))
	members := make([]Card, 0, len(cards))
	for _, c := range cards {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		members = append(members, c)
	}
	return Composition{members: members, order: Reconcile(members, nil)}
}

// Members returns the member cards in the order they joined the deck.
func (c Composition) Members() []Card {
	return append([]Card(nil), c.members...)
}

// Len returns the number of member cards.
func (c Composition) Len() int {
	return len(c.members)
}

// Has reports whether the card ID is a member.
func (c Composition) Has(cardID string) bool {
	_, ok := c.Card(cardID)
	return ok
}

// Card returns the member card with the given ID.
func (c Composition) Card(cardID string) (Card, bool) {
	for _, m := range c.members {
		if m.ID == cardID {
			return m, true
		}
	}
	return Card{}, false
}

// Section returns a copy of the ordered IDs in a section.
func (c Composition) Section(s Section) []string {
	return append([]string(nil), c.order[s]...)
}

// Count returns the number of cards in a section.
func (c Composition) Count(s Section) int {
	return len(c.order[s])
}

// Order returns a copy of the full section order.
func (c Composition) Order() SectionOrder {
	return c.order.Clone()
}

// With returns a composition with the card added to the end of its section.
// It does not apply deck rules; gate calls with CanAddCard.
func (c Composition) With(card Card) Composition {
	if c.Has(card.ID) {
		return c
	}
	members := append(c.Members(), card)
	return Composition{members: members, order: Reconcile(members, c.order)}
}

// Without returns a composition with the card removed from membership and
// from every section list.
func (c Composition) Without(cardID string) Composition {
	members := make([]Card, 0, len(c.members))
	for _, m := range c.members {
		if m.ID != cardID {
			members = append(members, m)
		}
	}
	return Composition{members: members, order: Reconcile(members, c.order)}
}

// withSection replaces one section list and reconciles the result.
func (c Composition) withSection(s Section, ids []string) Composition {
	order := c.order.Clone()
	order[s] = ids
	return Composition{members: c.Members(), order: Reconcile(c.members, order)}
}

package deck

// Bounded is a section list split at its cap: the capped prefix takes part in
// the positional grid, the overflow tail is kept but sits outside it.
type Bounded struct {
	Capped   []string
	Overflow []string
}

// bound splits ids at limit. A limit of 0 sends everything to overflow.
func bound(ids []string, limit int) Bounded {
	if len(ids) <= limit {
		return Bounded{Capped: append([]string(nil), ids...)}
	}
	return Bounded{
		Capped:   append([]string(nil), ids[:limit]...),
		Overflow: append([]string(nil), ids[limit:]...),
	}
}

// At returns the card ID at a capped position, or "" for an empty slot.
func (b Bounded) At(i int) string {
	if i < 0 || i >= len(b.Capped) {
		return ""
	}
	return b.Capped[i]
}

// Layout is the positional arrangement derived from a composition.
// It is never stored; Organize recomputes it from the section order.
type Layout struct {
	Protectors Bounded // protector1, protector2
	Bio        Bounded
	Rot        Bounded
	Ixim       Bounded
	Mainline   Bounded
	Others     []string
}

// Organize derives the layout from the composition's section order alone.
func Organize(c Composition) Layout {
	return Layout{
		Protectors: bound(c.order[SectionProtectors], Cap(SectionProtectors)),
		Bio:        bound(c.order[SectionBio], Cap(SectionBio)),
		Rot:        bound(c.order[SectionRot], Cap(SectionRot)),
		Ixim:       bound(c.order[SectionIxim], Cap(SectionIxim)),
		Mainline:   bound(c.order[SectionMainline], Cap(SectionMainline)),
		Others:     append([]string(nil), c.order[SectionOthers]...),
	}
}

// Protector1 returns the first protector slot.
func (l Layout) Protector1() string { return l.Protectors.At(0) }

// Protector2 returns the second protector slot.
func (l Layout) Protector2() string { return l.Protectors.At(1) }

// BioSlot returns the single bio slot.
func (l Layout) BioSlot() string { return l.Bio.At(0) }

// Visible returns the capped sub-list a section shows in the grid.
// The others section has no grid positions.
func (l Layout) Visible(s Section) []string {
	switch s {
	case SectionProtectors:
		return l.Protectors.Capped
	case SectionBio:
		return l.Bio.Capped
	case SectionRot:
		return l.Rot.Capped
	case SectionIxim:
		return l.Ixim.Capped
	case SectionMainline:
		return l.Mainline.Capped
	}
	return nil
}

// Overflow returns every card outside the grid, in fixed priority order:
// protectors, bio, rot, ixim, mainline past their caps, then all others.
func (l Layout) Overflow() []string {
	var out []string
	out = append(out, l.Protectors.Overflow...)
	out = append(out, l.Bio.Overflow...)
	out = append(out, l.Rot.Overflow...)
	out = append(out, l.Ixim.Overflow...)
	out = append(out, l.Mainline.Overflow...)
	out = append(out, l.Others...)
	return out
}

// Placed returns every card ID in emission order: grid slots first, then overflow.
func (l Layout) Placed() []string {
	var out []string
	out = append(out, l.Protectors.Capped...)
	out = append(out, l.Bio.Capped...)
	out = append(out, l.Rot.Capped...)
	out = append(out, l.Ixim.Capped...)
	out = append(out, l.Mainline.Capped...)
	out = append(out, l.Overflow()...)
	return out
}

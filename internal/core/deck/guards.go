package deck

import (
	"fmt"
	"strings"
)

// Limit is a per-section inclusion bound.
type Limit struct {
	Max int // 0 means unbounded
	Min int // required at finalize time
}

// Caps is the authoritative cap table. Mainline covers Rava and every
// Adendei subkind together.
var Caps = map[Section]Limit{
	SectionProtectors: {Max: 2, Min: 1},
	SectionBio:        {Max: 1},
	SectionRot:        {Max: 5},
	SectionIxim:       {Max: 5},
	SectionMainline:   {Max: 24, Min: 15},
}

// Cap returns the maximum number of cards a section may hold, or 0 if the
// section is unbounded.
func Cap(s Section) int {
	return Caps[s].Max
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return NewValidationError(r.Reason)
}

func allow() GuardResult {
	return GuardResult{Allowed: true}
}

func deny(format string, args ...any) GuardResult {
	return GuardResult{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}

// CanAddCard evaluates whether a candidate card may join the composition.
// Rules, first failure wins:
//   - Token cards never enter a deck.
//   - No two members may share a name, ignoring case.
//   - The candidate's section must stay within its cap after the add.
func CanAddCard(c Composition, candidate Card) GuardResult {
	if IsToken(candidate.Type) {
		return deny("%s is a Token card and cannot be added to a deck", candidate.Name)
	}

	key := NameKey(candidate.Name)
	for _, m := range c.members {
		if NameKey(m.Name) == key {
			return deny("A card named %q is already in the deck", m.Name)
		}
	}

	section := candidate.Section()
	if limit := Cap(section); limit > 0 {
		if after := c.Count(section) + 1; after > limit {
			return deny("Cannot add %s: %s allows at most %d cards (would have %d)", candidate.Name, section, limit, after)
		}
	}
	return allow()
}

// FinalizeResult lists every completeness problem found in a composition.
type FinalizeResult struct {
	Allowed bool
	Reasons []string
}

// Error returns a ValidationError carrying every reason, or nil when allowed.
func (r FinalizeResult) Error() error {
	if r.Allowed {
		return nil
	}
	return NewValidationError(r.Reasons...)
}

// CanFinalize checks the completeness minimums and reports all violations.
func CanFinalize(c Composition) FinalizeResult {
	var reasons []string
	if n, need := c.Count(SectionProtectors), Caps[SectionProtectors].Min; n < need {
		reasons = append(reasons, fmt.Sprintf("Deck needs at least %d Protector (has %d)", need, n))
	}
	if n, need := c.Count(SectionMainline), Caps[SectionMainline].Min; n < need {
		reasons = append(reasons, fmt.Sprintf("Deck needs at least %d Adendei/Rava cards (has %d)", need, n))
	}
	return FinalizeResult{Allowed: len(reasons) == 0, Reasons: reasons}
}

// OwnershipContext provides the context for deck access guards.
type OwnershipContext struct {
	DeckID   string
	OwnerID  string
	PlayerID string
	IsPublic bool
}

func (ctx OwnershipContext) isOwner() bool {
	return ctx.PlayerID != "" && ctx.PlayerID == ctx.OwnerID
}

// CanReadDeck evaluates whether a player can view a deck.
// Rule: public decks are readable by anyone, private ones only by the owner.
// A private deck is reported as missing rather than forbidden.
func CanReadDeck(ctx OwnershipContext) GuardResult {
	if ctx.IsPublic || ctx.isOwner() {
		return allow()
	}
	return deny("Deck %s not found", ctx.DeckID)
}

// CanEditDeck evaluates whether a player can change a deck.
// Rule: only the owner edits.
func CanEditDeck(ctx OwnershipContext) GuardResult {
	if ctx.isOwner() {
		return allow()
	}
	return deny("Deck %s belongs to %s - only the owner can edit it", ctx.DeckID, ctx.OwnerID)
}

// CanDeleteDeck evaluates whether a player can delete a deck.
// Rule: only the owner deletes.
func CanDeleteDeck(ctx OwnershipContext) GuardResult {
	if ctx.isOwner() {
		return allow()
	}
	return deny("Deck %s belongs to %s - only the owner can delete it", ctx.DeckID, ctx.OwnerID)
}

// SaveContext provides the context for the pre-write save guard.
// NameTaken is pre-fetched from the deck store by the caller.
type SaveContext struct {
	Name      string
	NameTaken bool
}

// CanSaveDeck evaluates the deck metadata before a save.
// Rules: the name is required and must be unique among the owner's decks.
func CanSaveDeck(ctx SaveContext) GuardResult {
	name := strings.TrimSpace(ctx.Name)
	if name == "" {
		return deny("Deck name is required")
	}
	if ctx.NameTaken {
		return deny("You already have a deck named %q", name)
	}
	return allow()
}

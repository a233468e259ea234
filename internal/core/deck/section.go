// Package deck contains the pure business logic for deck composition.
// This is part of the Functional Core - no I/O, only pure functions.
package deck

import "strings"

// CardType is the printed type line of a card in the catalog.
type CardType string

const (
	TypeProtector CardType = "Protector"
	TypeBio       CardType = "Bio"
	TypeRot       CardType = "Rot"
	TypeIxim      CardType = "Ixim"
	TypeRava      CardType = "Rava"
	TypeToken     CardType = "Token"

	// Mainline subkinds. All of them share the mainline cap with Rava.
	TypeAdendei           CardType = "Adendei"
	TypeAdendeiTitan      CardType = "Adendei Titan"
	TypeAdendeiGuardian   CardType = "Adendei Guardian"
	TypeAdendeiCatrin     CardType = "Adendei Catrin"
	TypeAdendeiKosmico    CardType = "Adendei Kósmico"
	TypeAdendeiAbismal    CardType = "Adendei Abismal"
	TypeAdendeiInfectado  CardType = "Adendei Infectado"
	TypeAdendeiEquino     CardType = "Adendei Equino"
	TypeAdendeiResurrecto CardType = "Adendei Resurrecto"

	TypeZona   CardType = "Zona"
	TypeTrampa CardType = "Trampa"
)

// MainlineTypes lists every type counted against the mainline cap.
var MainlineTypes = []CardType{
	TypeRava,
	TypeAdendei,
	TypeAdendeiTitan,
	TypeAdendeiGuardian,
	TypeAdendeiCatrin,
	TypeAdendeiKosmico,
	TypeAdendeiAbismal,
	TypeAdendeiInfectado,
	TypeAdendeiEquino,
	TypeAdendeiResurrecto,
}

// Section is one of the six buckets a composition is organized into.
type Section string

const (
	SectionProtectors Section = "protectors"
	SectionBio        Section = "bio"
	SectionRot        Section = "rot"
	SectionIxim       Section = "ixim"
	SectionMainline   Section = "mainline"
	SectionOthers     Section = "others"
)

// Sections is the fixed priority order used by the organizer and serializer.
var Sections = []Section{
	SectionProtectors,
	SectionBio,
	SectionRot,
	SectionIxim,
	SectionMainline,
	SectionOthers,
}

// ParseSection resolves a section name, ignoring case.
func ParseSection(name string) (Section, bool) {
	s := Section(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Sections {
		if s == known {
			return s, true
		}
	}
	return "", false
}

var sectionByType = func() map[CardType]Section {
	m := map[CardType]Section{
		TypeProtector: SectionProtectors,
		TypeBio:       SectionBio,
		TypeRot:       SectionRot,
		TypeIxim:      SectionIxim,
	}
	for _, t := range MainlineTypes {
		m[t] = SectionMainline
	}
	return m
}()

// Classify maps a card type to its section.
// Token is not a deck type; callers reject it (see CanAddCard) before classifying.
func Classify(t CardType) Section {
	if s, ok := sectionByType[t]; ok {
		return s
	}
	return SectionOthers
}

// IsToken reports whether the type is the Token kind, which never enters a deck.
func IsToken(t CardType) bool {
	return t == TypeToken
}

// Card is the read-only view of a catalog card the engine needs.
type Card struct {
	ID   string
	Name string
	Type CardType
}

// Section returns the section the card belongs to.
func (c Card) Section() Section {
	return Classify(c.Type)
}

// NameKey is the case-insensitive identity of a card or deck name.
// Case folding covers all of Unicode, not just ASCII.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

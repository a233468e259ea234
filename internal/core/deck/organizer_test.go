package deck

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestOrganize_SingleProtector(t *testing.T) {
	c := build(card("P1", "Aegis", TypeProtector))

	l := Organize(c)

	if got := l.Protector1(); got != "P1" {
		t.Errorf("Protector1() = %q, want P1", got)
	}
	if got := l.Protector2(); got != "" {
		t.Errorf("Protector2() = %q, want empty", got)
	}
	if got := l.BioSlot(); got != "" {
		t.Errorf("BioSlot() = %q, want empty", got)
	}
}

func TestOrganize_SplitsAtCaps(t *testing.T) {
	// Sections are filled past their caps directly to model cards that
	// got in before a cap tightened.
	order := SectionOrder{
		SectionProtectors: {"p1", "p2", "p3"},
		SectionBio:        {"b1", "b2"},
		SectionRot:        {"r1", "r2", "r3", "r4", "r5", "r6"},
		SectionIxim:       {"i1"},
		SectionOthers:     {"z1", "z2"},
	}
	c := Composition{order: order}

	got := Organize(c)
	want := Layout{
		Protectors: Bounded{Capped: []string{"p1", "p2"}, Overflow: []string{"p3"}},
		Bio:        Bounded{Capped: []string{"b1"}, Overflow: []string{"b2"}},
		Rot:        Bounded{Capped: []string{"r1", "r2", "r3", "r4", "r5"}, Overflow: []string{"r6"}},
		Ixim:       Bounded{Capped: []string{"i1"}},
		Others:     []string{"z1", "z2"},
	}

	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Organize() mismatch (-want +got):\n%s", diff)
	}

	wantOverflow := []string{"p3", "b2", "r6", "z1", "z2"}
	if diff := cmp.Diff(wantOverflow, got.Overflow()); diff != "" {
		t.Errorf("Overflow() mismatch (-want +got):\n%s", diff)
	}
}

func TestOrganize_MainlineCappedAt24(t *testing.T) {
	ids := make([]string, 0, 26)
	for _, c := range series("m", TypeAdendei, 26) {
		ids = append(ids, c.ID)
	}
	l := Organize(Composition{order: SectionOrder{SectionMainline: ids}})

	if len(l.Mainline.Capped) != 24 {
		t.Errorf("len(Mainline.Capped) = %d, want 24", len(l.Mainline.Capped))
	}
	if diff := cmp.Diff([]string{"m-25", "m-26"}, l.Overflow()); diff != "" {
		t.Errorf("Overflow() mismatch (-want +got):\n%s", diff)
	}
}

func TestOrganize_Deterministic(t *testing.T) {
	c := build(append(series("r", TypeRot, 3), series("m", TypeRava, 7)...)...)

	if diff := cmp.Diff(Organize(c), Organize(c)); diff != "" {
		t.Errorf("Organize() not deterministic:\n%s", diff)
	}
}

func TestLayout_Visible(t *testing.T) {
	l := Organize(build(card("i1", "Flux", TypeIxim), card("z1", "Field", TypeZona)))

	if diff := cmp.Diff([]string{"i1"}, l.Visible(SectionIxim)); diff != "" {
		t.Errorf("Visible(ixim) mismatch:\n%s", diff)
	}
	if got := l.Visible(SectionOthers); got != nil {
		t.Errorf("Visible(others) = %v, want nil", got)
	}
}

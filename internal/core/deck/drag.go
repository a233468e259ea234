package deck

import "fmt"

// DragState is the reorder controller's state: Idle or Dragging.
// Only these two types implement it, so two concurrent drags cannot be
// expressed.
type DragState interface {
	dragState()
}

// Idle means no drag is in progress.
type Idle struct{}

// Dragging holds the slot a drag started from. Index addresses the visible
// capped sub-list of the section, never the overflow tail.
type Dragging struct {
	Section Section
	Index   int
	CardID  string
}

func (Idle) dragState()     {}
func (Dragging) dragState() {}

// DropTarget is where a drag ends. A nil target means the card was dropped
// outside every valid target.
type DropTarget interface {
	dropTarget()
}

// SlotTarget is a positional slot in a section's grid. Protector 1 and 2 are
// indexes 0 and 1 of the protectors section.
type SlotTarget struct {
	Section Section
	Index   int
}

// TrashTarget is the removal drop zone.
type TrashTarget struct{}

func (SlotTarget) dropTarget()  {}
func (TrashTarget) dropTarget() {}

// DragEffect is what a finished drag did to the composition.
type DragEffect string

const (
	EffectCancelled DragEffect = "cancelled"
	EffectSwap      DragEffect = "swap"
	EffectRemoved   DragEffect = "removed"
)

// DragOutcome is the result of ending a drag. The controller is always back
// to Idle afterwards.
type DragOutcome struct {
	Effect      DragEffect
	CardID      string
	Composition Composition
}

// StartDrag moves Idle to Dragging over an occupied grid slot.
func StartDrag(state DragState, c Composition, s Section, index int) (Dragging, error) {
	if d, ok := state.(Dragging); ok {
		return Dragging{}, NewValidationError(fmt.Sprintf("A drag from %s[%d] is already in progress", d.Section, d.Index))
	}
	if Cap(s) == 0 {
		return Dragging{}, NewValidationError(fmt.Sprintf("Cards in %s cannot be rearranged", s))
	}
	visible := Organize(c).Visible(s)
	if index < 0 || index >= len(visible) {
		return Dragging{}, NewValidationError(fmt.Sprintf("Slot %s[%d] is empty", s, index))
	}
	return Dragging{Section: s, Index: index, CardID: visible[index]}, nil
}

// EndDrag resolves a drop. Same-section drops swap with an occupied slot or
// move into an empty one; trash removes the card; anything else cancels.
func EndDrag(state DragState, c Composition, target DropTarget) DragOutcome {
	cancelled := DragOutcome{Effect: EffectCancelled, Composition: c}

	d, ok := state.(Dragging)
	if !ok {
		return cancelled
	}
	cancelled.CardID = d.CardID

	// The slot must still hold the card the drag picked up.
	list := c.Section(d.Section)
	if d.Index >= len(list) || list[d.Index] != d.CardID {
		return cancelled
	}

	switch t := target.(type) {
	case TrashTarget:
		return DragOutcome{Effect: EffectRemoved, CardID: d.CardID, Composition: c.Without(d.CardID)}
	case SlotTarget:
		limit := Cap(d.Section)
		if t.Section != d.Section || t.Index < 0 || t.Index >= limit || t.Index == d.Index {
			return cancelled
		}
		visible := min(len(list), limit)
		if t.Index < visible {
			list[d.Index], list[t.Index] = list[t.Index], list[d.Index]
		} else {
			list = moveTo(list, d.Index, t.Index)
		}
		return DragOutcome{Effect: EffectSwap, CardID: d.CardID, Composition: c.withSection(d.Section, list)}
	}
	return cancelled
}

// moveTo deletes the entry at i and inserts it at j, clamped to the end.
func moveTo(list []string, i, j int) []string {
	id := list[i]
	out := make([]string, 0, len(list))
	out = append(out, list[:i]...)
	out = append(out, list[i+1:]...)
	if j > len(out) {
		j = len(out)
	}
	out = append(out[:j], append([]string{id}, out[j:]...)...)
	return out
}

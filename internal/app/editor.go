package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	coredeck "github.com/example/deckforge/internal/core/deck"
	"github.com/example/deckforge/internal/ports/primary"
	"github.com/example/deckforge/internal/ports/secondary"
)

type editorDeps struct {
	deckRepo  secondary.DeckRepository
	cardRepo  secondary.CardRepository
	logWriter secondary.LogWriter
	logger    *zap.Logger
}

// Editor is one editing session over a deck composition. Mutations are
// applied under a mutex; Save holds a weight-1 semaphore for its whole
// duration so a second Save blocks until the first settles.
type Editor struct {
	editorDeps

	saveSem *semaphore.Weighted

	mu      sync.Mutex
	details primary.DeckDetails
	comp    coredeck.Composition
	drag    coredeck.DragState
	saved   []coredeck.Slot
}

func newEditor(deps editorDeps, details primary.DeckDetails, comp coredeck.Composition) *Editor {
	if deps.logger == nil {
		deps.logger = zap.NewNop()
	}
	e := &Editor{
		editorDeps: deps,
		saveSem:    semaphore.NewWeighted(1),
		details:    details,
		comp:       comp,
		drag:       coredeck.Idle{},
	}
	if details.ID != "" {
		e.saved = coredeck.Serialize(coredeck.Organize(comp))
	}
	return e
}

// Details returns the deck's metadata.
func (e *Editor) Details() primary.DeckDetails {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.details
}

// UpdateDetails changes name, description or visibility. Nil fields are kept.
func (e *Editor) UpdateDetails(req primary.UpdateDeckRequest) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if req.Name != nil {
		e.details.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		e.details.Description = *req.Description
	}
	if req.IsPublic != nil {
		e.details.IsPublic = *req.IsPublic
	}
}

// AddCard resolves a catalog card and adds it if the deck rules allow.
func (e *Editor) AddCard(ctx context.Context, cardID string) (*primary.Card, error) {
	record, err := e.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, coredeck.ErrNotFound) {
			return nil, coredeck.NotFound("card", cardID)
		}
		return nil, &coredeck.PersistenceError{Op: "get card", Err: err}
	}
	candidate := recordToCoreCard(record)

	e.mu.Lock()
	defer e.mu.Unlock()

	if result := coredeck.CanAddCard(e.comp, candidate); !result.Allowed {
		return nil, result.Error()
	}
	e.comp = e.comp.With(candidate)

	e.logger.Debug("card added",
		zap.String("deck_id", e.details.ID),
		zap.String("card_id", candidate.ID),
		zap.String("section", string(candidate.Section())))
	return recordToCard(record), nil
}

// RemoveCard removes a member card.
func (e *Editor) RemoveCard(cardID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.comp.Has(cardID) {
		return coredeck.NotFound("card", cardID)
	}
	e.comp = e.comp.Without(cardID)
	return nil
}

// StartDrag begins dragging the card in a grid slot. "protector1" and
// "protector2" address the two protector slots directly.
func (e *Editor) StartDrag(section string, index int) error {
	s, idx, err := parseSlot(section, index)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	d, err := coredeck.StartDrag(e.drag, e.comp, s, idx)
	if err != nil {
		return err
	}
	e.drag = d
	return nil
}

// EndDrag drops the dragged card. The editor is Idle afterwards whatever the
// outcome.
func (e *Editor) EndDrag(target primary.DropTarget) (*primary.DragResult, error) {
	var drop coredeck.DropTarget
	switch {
	case target.Trash:
		drop = coredeck.TrashTarget{}
	case target.Section != "":
		s, idx, err := parseSlot(target.Section, target.Index)
		if err == nil {
			drop = coredeck.SlotTarget{Section: s, Index: idx}
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.drag.(coredeck.Dragging); !ok {
		return nil, coredeck.NewValidationError("No drag in progress")
	}
	outcome := coredeck.EndDrag(e.drag, e.comp, drop)
	e.drag = coredeck.Idle{}
	e.comp = outcome.Composition

	return &primary.DragResult{Effect: string(outcome.Effect), CardID: outcome.CardID}, nil
}

// Organize returns the current layout with padded capped sections.
func (e *Editor) Organize() *primary.Layout {
	e.mu.Lock()
	defer e.mu.Unlock()
	return buildLayout(e.comp)
}

// CanFinalize reports every completeness problem.
func (e *Editor) CanFinalize() *primary.FinalizeReport {
	e.mu.Lock()
	defer e.mu.Unlock()
	result := coredeck.CanFinalize(e.comp)
	return &primary.FinalizeReport{Ready: result.Allowed, Reasons: result.Reasons}
}

// Export renders the composition as a plain-text deck list.
func (e *Editor) Export() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return coredeck.ExportText(e.details.Name, e.comp)
}

// Save validates and persists a snapshot of the composition. Concurrent calls
// are serialized; a failed save leaves the composition untouched.
func (e *Editor) Save(ctx context.Context) (string, error) {
	if err := e.saveSem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer e.saveSem.Release(1)

	e.mu.Lock()
	details := e.details
	comp := e.comp
	e.mu.Unlock()

	if result := coredeck.CanFinalize(comp); !result.Allowed {
		return "", result.Error()
	}

	// Re-check against the store: another session may have taken the name.
	taken, err := e.deckRepo.NameExists(ctx, details.OwnerID, details.Name, details.ID)
	if err != nil {
		return "", &coredeck.PersistenceError{Op: "check deck name", Err: err}
	}
	if result := coredeck.CanSaveDeck(coredeck.SaveContext{Name: details.Name, NameTaken: taken}); !result.Allowed {
		return "", result.Error()
	}

	slots := coredeck.Serialize(coredeck.Organize(comp))
	record := &secondary.DeckRecord{
		ID:          details.ID,
		Name:        details.Name,
		OwnerID:     details.OwnerID,
		Description: details.Description,
		IsPublic:    details.IsPublic,
		Slots:       slotsToRecords(slots),
	}

	if record.ID == "" {
		nextID, err := e.deckRepo.GetNextID(ctx)
		if err != nil {
			return "", &coredeck.PersistenceError{Op: "generate deck ID", Err: err}
		}
		record.ID = nextID
		if err := e.deckRepo.Create(ctx, record); err != nil {
			return "", &coredeck.PersistenceError{Op: "create deck", Err: err}
		}
		e.audit(func(w secondary.LogWriter) error { return w.LogCreate(ctx, "deck", record.ID) })
	} else {
		if err := e.deckRepo.Update(ctx, record); err != nil {
			return "", &coredeck.PersistenceError{Op: "update deck", Err: err}
		}
		prev := e.savedSnapshot()
		e.audit(func(w secondary.LogWriter) error {
			return w.LogUpdate(ctx, "deck", record.ID, "slots", strconv.Itoa(len(prev)), strconv.Itoa(len(slots)))
		})
	}

	e.mu.Lock()
	e.details.ID = record.ID
	e.saved = slots
	e.mu.Unlock()

	e.logger.Info("saved deck",
		zap.String("deck_id", record.ID),
		zap.String("owner", record.OwnerID),
		zap.Int("cards", len(slots)))
	return record.ID, nil
}

func (e *Editor) savedSnapshot() []coredeck.Slot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saved
}

// audit writes a log entry; audit failures never fail the save.
func (e *Editor) audit(write func(secondary.LogWriter) error) {
	if e.logWriter == nil {
		return
	}
	if err := write(e.logWriter); err != nil {
		e.logger.Warn("failed to write deck log", zap.Error(err))
	}
}

// parseSlot resolves a section name and index, accepting "protector1" and
// "protector2" as aliases for protectors[0] and protectors[1].
func parseSlot(section string, index int) (coredeck.Section, int, error) {
	switch strings.ToLower(strings.TrimSpace(section)) {
	case "protector1":
		return coredeck.SectionProtectors, 0, nil
	case "protector2":
		return coredeck.SectionProtectors, 1, nil
	}
	s, ok := coredeck.ParseSection(section)
	if !ok {
		return "", 0, coredeck.NewValidationError(fmt.Sprintf("Unknown section %q", section))
	}
	return s, index, nil
}

func buildLayout(comp coredeck.Composition) *primary.Layout {
	l := coredeck.Organize(comp)
	cardSlot := func(id string) primary.CardSlot {
		if id == "" {
			return primary.CardSlot{}
		}
		c, _ := comp.Card(id)
		return primary.CardSlot{CardID: c.ID, Name: c.Name, Type: string(c.Type)}
	}

	layout := &primary.Layout{}
	for _, s := range coredeck.Sections {
		limit := coredeck.Cap(s)
		if limit == 0 {
			continue
		}
		visible := l.Visible(s)
		cards := make([]primary.CardSlot, limit)
		for i := range cards {
			if i < len(visible) {
				cards[i] = cardSlot(visible[i])
			}
		}
		layout.Sections = append(layout.Sections, primary.LayoutSection{
			Section:  string(s),
			Capacity: limit,
			Cards:    cards,
		})
	}
	for _, id := range l.Overflow() {
		layout.Overflow = append(layout.Overflow, cardSlot(id))
	}
	layout.Slots = slotsToDeckSlots(coredeck.Serialize(l))
	return layout
}

// Ensure Editor implements the interface
var _ primary.DeckEditor = (*Editor)(nil)

package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	coredeck "github.com/example/deckforge/internal/core/deck"
	"github.com/example/deckforge/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// Ensure mocks implement the interfaces
var (
	_ secondary.CardRepository   = (*mockCardRepository)(nil)
	_ secondary.DeckRepository   = (*mockDeckRepository)(nil)
	_ secondary.IdentityProvider = (*mockIdentity)(nil)
	_ secondary.LogWriter        = (*mockLogWriter)(nil)
)

// mockCardRepository implements secondary.CardRepository for testing.
type mockCardRepository struct {
	cards     map[string]*secondary.CardRecord
	queryErr  error
	getErr    error
	upsertErr error
	upserted  []*secondary.CardRecord
	lastQuery secondary.CardFilters
}

func newMockCardRepository(cards ...*secondary.CardRecord) *mockCardRepository {
	m := &mockCardRepository{cards: make(map[string]*secondary.CardRecord)}
	for _, c := range cards {
		m.cards[c.ID] = c
	}
	return m
}

func (m *mockCardRepository) Query(ctx context.Context, filters secondary.CardFilters) ([]*secondary.CardRecord, error) {
	m.lastQuery = filters
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	var result []*secondary.CardRecord
	for _, c := range m.cards {
		if filters.Search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(filters.Search)) {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockCardRepository) GetByID(ctx context.Context, id string) (*secondary.CardRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if c, ok := m.cards[id]; ok {
		return c, nil
	}
	return nil, coredeck.NotFound("card", id)
}

func (m *mockCardRepository) GetByIDs(ctx context.Context, ids []string) ([]*secondary.CardRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	var result []*secondary.CardRecord
	for _, id := range ids {
		if c, ok := m.cards[id]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockCardRepository) Upsert(ctx context.Context, cards []*secondary.CardRecord) (int, error) {
	if m.upsertErr != nil {
		return 0, m.upsertErr
	}
	for _, c := range cards {
		m.cards[c.ID] = c
	}
	m.upserted = append(m.upserted, cards...)
	return len(cards), nil
}

// mockDeckRepository implements secondary.DeckRepository for testing.
// It is safe for concurrent use so save serialization can be observed.
type mockDeckRepository struct {
	mu        sync.Mutex
	decks     map[string]*secondary.DeckRecord
	nextNum   int
	createErr error
	getErr    error
	updateErr error
	deleteErr error
	listErr   error
	nameErr   error

	// writeHook runs inside Create and Update, before the write lands.
	writeHook func()

	creates    int
	updates    int
	lastFilter secondary.DeckFilters
}

func newMockDeckRepository() *mockDeckRepository {
	return &mockDeckRepository{decks: make(map[string]*secondary.DeckRecord)}
}

func (m *mockDeckRepository) Create(ctx context.Context, deck *secondary.DeckRecord) error {
	if m.writeHook != nil {
		m.writeHook()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.creates++
	stored := *deck
	m.decks[deck.ID] = &stored
	return nil
}

func (m *mockDeckRepository) GetByID(ctx context.Context, id string) (*secondary.DeckRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if d, ok := m.decks[id]; ok {
		return d, nil
	}
	return nil, coredeck.NotFound("deck", id)
}

func (m *mockDeckRepository) Update(ctx context.Context, deck *secondary.DeckRecord) error {
	if m.writeHook != nil {
		m.writeHook()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.decks[deck.ID]; !ok {
		return fmt.Errorf("deck %s not found", deck.ID)
	}
	m.updates++
	stored := *deck
	m.decks[deck.ID] = &stored
	return nil
}

func (m *mockDeckRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.decks, id)
	return nil
}

func (m *mockDeckRepository) List(ctx context.Context, filters secondary.DeckFilters) ([]*secondary.DeckRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = filters
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.DeckRecord
	for _, d := range m.decks {
		if d.OwnerID == filters.OwnerID || (filters.PublicOnly && d.IsPublic) {
			result = append(result, d)
		}
	}
	return result, nil
}

func (m *mockDeckRepository) NameExists(ctx context.Context, ownerID, name, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nameErr != nil {
		return false, m.nameErr
	}
	for _, d := range m.decks {
		if d.ID != excludeID && d.OwnerID == ownerID && strings.EqualFold(d.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockDeckRepository) GetNextID(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextNum++
	return coredeck.GenerateDeckID(m.nextNum - 1), nil
}

func (m *mockDeckRepository) put(d *secondary.DeckRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decks[d.ID] = d
}

// mockIdentity implements secondary.IdentityProvider for testing.
type mockIdentity struct {
	player string
	err    error
}

func (m *mockIdentity) CurrentPlayer(ctx context.Context) (string, error) {
	return m.player, m.err
}

// mockLogWriter implements secondary.LogWriter for testing.
type mockLogWriter struct {
	mu       sync.Mutex
	entries  []string
	writeErr error
}

func (m *mockLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	return m.record("create " + entityType + " " + entityID)
}

func (m *mockLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	return m.record(fmt.Sprintf("update %s %s %s %s->%s", entityType, entityID, fieldName, oldValue, newValue))
}

func (m *mockLogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	return m.record("delete " + entityType + " " + entityID)
}

func (m *mockLogWriter) record(entry string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockLogWriter) all() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.entries...)
}

var errStoreDown = errors.New("store unavailable")

// ============================================================================
// Catalog fixtures
// ============================================================================

func cardRecord(id, name string, t coredeck.CardType) *secondary.CardRecord {
	return &secondary.CardRecord{ID: id, Name: name, Type: string(t)}
}

// testCatalog holds 3 protectors, 2 bio, 6 rot, 6 ixim, 30 mainline,
// one token and one zone card.
func testCatalog() []*secondary.CardRecord {
	var cards []*secondary.CardRecord
	add := func(prefix string, t coredeck.CardType, n int) {
		for i := 1; i <= n; i++ {
			id := fmt.Sprintf("%s%02d", prefix, i)
			cards = append(cards, cardRecord(id, "Card "+id, t))
		}
	}
	add("P", coredeck.TypeProtector, 3)
	add("B", coredeck.TypeBio, 2)
	add("R", coredeck.TypeRot, 6)
	add("X", coredeck.TypeIxim, 6)
	add("M", coredeck.TypeAdendei, 30)
	cards = append(cards,
		cardRecord("T01", "Spore Token", coredeck.TypeToken),
		cardRecord("Z01", "Old Ruins", coredeck.TypeZona),
	)
	return cards
}

// ids returns prefix01..prefixNN.
func ids(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%02d", prefix, i+1)
	}
	return out
}

// slotsFor lays card IDs out in emission order.
func slotsFor(cardIDs ...string) []secondary.SlotRecord {
	out := make([]secondary.SlotRecord, len(cardIDs))
	for k, id := range cardIDs {
		s := coredeck.SlotAt(k, id)
		out[k] = secondary.SlotRecord{CardID: s.CardID, Row: s.Row, Col: s.Col}
	}
	return out
}

// testDeps bundles the mocks behind a DeckServiceImpl.
type testDeps struct {
	decks    *mockDeckRepository
	cards    *mockCardRepository
	identity *mockIdentity
	log      *mockLogWriter
}

func newTestDeckService(player string) (*DeckServiceImpl, *testDeps) {
	deps := &testDeps{
		decks:    newMockDeckRepository(),
		cards:    newMockCardRepository(testCatalog()...),
		identity: &mockIdentity{player: player},
		log:      &mockLogWriter{},
	}
	svc := NewDeckService(deps.decks, deps.cards, deps.identity, deps.log, nil)
	return svc, deps
}

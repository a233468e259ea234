package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/deckforge/internal/adapters/identity"
	"github.com/example/deckforge/internal/adapters/sqlite"
	"github.com/example/deckforge/internal/app"
	"github.com/example/deckforge/internal/db"
	"github.com/example/deckforge/internal/ports/primary"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupServer(t *testing.T) *Server {
	t.Helper()

	conn, err := db.Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.SeedFixtures(conn))

	cardRepo := sqlite.NewCardRepository(conn)
	logRepo := sqlite.NewDeckLogRepository(conn)
	decks := app.NewDeckService(
		sqlite.NewDeckRepository(conn),
		cardRepo,
		identity.NewPlayerProvider(""),
		sqlite.NewLogWriterAdapter(logRepo),
		nil,
	)
	return NewServer(decks, app.NewCardService(cardRepo, nil), app.NewHistoryService(logRepo, decks), "", nil)
}

func do(t *testing.T, s *Server, method, path, player string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if player != "" {
		req.Header.Set(PlayerHeader, player)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func openSession(t *testing.T, s *Server, player string, req openSessionRequest) string {
	t.Helper()
	w := do(t, s, http.MethodPost, "/api/sessions", player, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[sessionResponse](t, w).SessionID
}

// ============================================================================
// Catalog and saved decks
// ============================================================================

func TestHealth(t *testing.T) {
	s := setupServer(t)
	w := do(t, s, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListCards(t *testing.T) {
	s := setupServer(t)

	w := do(t, s, http.MethodGet, "/api/cards?type=Protector,Bio&limit=3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[struct {
		Count int             `json:"count"`
		Cards []*primary.Card `json:"cards"`
	}](t, w)
	assert.Equal(t, 3, resp.Count)
	for _, c := range resp.Cards {
		assert.Contains(t, []string{"protectors", "bio"}, c.Section)
	}
}

func TestGetCard_NotFound(t *testing.T) {
	s := setupServer(t)
	w := do(t, s, http.MethodGet, "/api/cards/NOPE", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDeck_PublicSeed(t *testing.T) {
	s := setupServer(t)

	w := do(t, s, http.MethodGet, "/api/decks/DECK-001", "bruno", nil)
	require.Equal(t, http.StatusOK, w.Code)

	deck := decode[primary.Deck](t, w)
	assert.Equal(t, "demo", deck.OwnerID)
	assert.Len(t, deck.CardIDs, 21)
}

func TestDeleteDeck_NotOwner(t *testing.T) {
	s := setupServer(t)
	w := do(t, s, http.MethodDelete, "/api/decks/DECK-001", "bruno", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeckQR(t *testing.T) {
	s := setupServer(t)

	w := do(t, s, http.MethodGet, "/api/decks/DECK-001/qr?size=96", "bruno", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	img, err := png.Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 96, img.Bounds().Dx())
}

func TestDeckQR_SizeTooLarge(t *testing.T) {
	s := setupServer(t)

	w := do(t, s, http.MethodGet, "/api/decks/DECK-001/qr?size=100000", "bruno", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode[errorResponse](t, w).Reasons[0], "limit")
}

// ============================================================================
// Editor sessions
// ============================================================================

func TestSession_BuildAndSave(t *testing.T) {
	s := setupServer(t)
	sid := openSession(t, s, "ana", openSessionRequest{Name: "Ceniza"})
	base := "/api/sessions/" + sid

	cards := []string{"KDM-001", "KDM-002", "KDM-006"}
	for i := 17; i <= 31; i++ {
		cards = append(cards, fmt.Sprintf("KDM-%03d", i))
	}
	for _, id := range cards {
		w := do(t, s, http.MethodPost, base+"/cards", "ana", addCardRequest{CardID: id})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := do(t, s, http.MethodGet, base+"/finalize", "ana", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[primary.FinalizeReport](t, w).Ready)

	w = do(t, s, http.MethodPost, base+"/save", "ana", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	saved := decode[map[string]string](t, w)
	assert.Equal(t, "DECK-002", saved["deckId"])
	assert.Equal(t, "deckforge:DECK-002", saved["shareCode"])

	w = do(t, s, http.MethodGet, "/api/decks/DECK-002", "ana", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[primary.Deck](t, w).CardIDs, len(cards))

	w = do(t, s, http.MethodGet, "/api/decks/DECK-002/history", "ana", nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[struct {
		Entries []*primary.LogEntry `json:"entries"`
	}](t, w)
	require.Len(t, history.Entries, 1)
	assert.Equal(t, "create", history.Entries[0].Action)
	assert.Equal(t, "ana", history.Entries[0].ActorID)
}

func TestSession_AddRejected(t *testing.T) {
	s := setupServer(t)
	sid := openSession(t, s, "ana", openSessionRequest{Name: "Tokens"})

	w := do(t, s, http.MethodPost, "/api/sessions/"+sid+"/cards", "ana", addCardRequest{CardID: "KDM-039"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	resp := decode[errorResponse](t, w)
	require.Len(t, resp.Reasons, 1)
	assert.Contains(t, resp.Reasons[0], "Token")
}

func TestSession_SaveIncomplete(t *testing.T) {
	s := setupServer(t)
	sid := openSession(t, s, "ana", openSessionRequest{Name: "Empty"})

	w := do(t, s, http.MethodPost, "/api/sessions/"+sid+"/save", "ana", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Len(t, decode[errorResponse](t, w).Reasons, 2)
}

func TestSession_DragSwapAndTrash(t *testing.T) {
	s := setupServer(t)
	sid := openSession(t, s, "demo", openSessionRequest{DeckID: "DECK-001"})
	base := "/api/sessions/" + sid

	w := do(t, s, http.MethodPost, base+"/drag/start", "demo", startDragRequest{Section: "mainline", Index: 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do(t, s, http.MethodPost, base+"/drag/end", "demo", primary.DropTarget{Section: "mainline", Index: 2})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[struct {
		Result primary.DragResult `json:"result"`
		Layout primary.Layout     `json:"layout"`
	}](t, w)
	assert.Equal(t, "swap", resp.Result.Effect)
	assert.Equal(t, "KDM-017", resp.Result.CardID)

	var mainline primary.LayoutSection
	for _, sec := range resp.Layout.Sections {
		if sec.Section == "mainline" {
			mainline = sec
		}
	}
	assert.Equal(t, "KDM-017", mainline.Cards[2].CardID)

	w = do(t, s, http.MethodPost, base+"/drag/start", "demo", startDragRequest{Section: "protector1"})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, s, http.MethodPost, base+"/drag/end", "demo", primary.DropTarget{Trash: true})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, http.MethodGet, base+"/finalize", "demo", nil)
	assert.False(t, decode[primary.FinalizeReport](t, w).Ready)
}

func TestSession_EndDragWithoutStart(t *testing.T) {
	s := setupServer(t)
	sid := openSession(t, s, "ana", openSessionRequest{Name: "Idle"})

	w := do(t, s, http.MethodPost, "/api/sessions/"+sid+"/drag/end", "ana", primary.DropTarget{Trash: true})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSession_EditNotOwner(t *testing.T) {
	s := setupServer(t)
	w := do(t, s, http.MethodPost, "/api/sessions", "bruno", openSessionRequest{DeckID: "DECK-001"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSession_OtherPlayerCannotUse(t *testing.T) {
	s := setupServer(t)
	sid := openSession(t, s, "ana", openSessionRequest{Name: "Mine"})

	w := do(t, s, http.MethodGet, "/api/sessions/"+sid+"/layout", "bruno", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSession_NoPlayer(t *testing.T) {
	s := setupServer(t)
	w := do(t, s, http.MethodPost, "/api/sessions", "", openSessionRequest{Name: "Anon"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSession_UpdateAndClose(t *testing.T) {
	s := setupServer(t)
	sid := openSession(t, s, "ana", openSessionRequest{Name: "Draft"})
	base := "/api/sessions/" + sid

	name := "Final"
	w := do(t, s, http.MethodPatch, base, "ana", updateSessionRequest{Name: &name})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Final", decode[primary.DeckDetails](t, w).Name)

	w = do(t, s, http.MethodDelete, base, "ana", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, s, http.MethodGet, base, "ana", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSession_BadJSON(t *testing.T) {
	s := setupServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", bytes.NewBufferString("{"))
	req.Header.Set(PlayerHeader, "ana")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

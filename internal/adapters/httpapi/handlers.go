package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/deckforge/internal/adapters/qr"
	coredeck "github.com/example/deckforge/internal/core/deck"
	"github.com/example/deckforge/internal/ctxutil"
	"github.com/example/deckforge/internal/ports/primary"
	"github.com/example/deckforge/internal/version"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "commit": version.ShortCommit()})
}

// ============================================================================
// Catalog
// ============================================================================

func (s *Server) listCards(c *gin.Context) {
	filters := primary.CardFilters{
		Search: c.Query("q"),
		Limit:  queryInt(c, "limit", 0),
	}
	for _, t := range c.QueryArray("type") {
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				filters.Types = append(filters.Types, part)
			}
		}
	}

	cards, err := s.cards.QueryCards(c.Request.Context(), filters)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(cards), "cards": cards})
}

func (s *Server) getCard(c *gin.Context) {
	card, err := s.cards.GetCard(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// ============================================================================
// Saved decks
// ============================================================================

func (s *Server) listDecks(c *gin.Context) {
	decks, err := s.decks.ListDecks(c.Request.Context(), primary.DeckFilters{
		IncludePublic: c.Query("public") == "true",
		Limit:         queryInt(c, "limit", 0),
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(decks), "decks": decks})
}

func (s *Server) getDeck(c *gin.Context) {
	deck, err := s.decks.GetDeck(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, deck)
}

func (s *Server) deleteDeck(c *gin.Context) {
	if err := s.decks.DeleteDeck(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// deckQR returns the share code of a readable deck as a PNG.
func (s *Server) deckQR(c *gin.Context) {
	deck, err := s.decks.GetDeck(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	b, err := qr.SharePNG(deck.ID, queryInt(c, "size", qr.DefaultSize))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (s *Server) deckHistory(c *gin.Context) {
	entries, err := s.history.DeckHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(entries), "entries": entries})
}

// ============================================================================
// Editor sessions
// ============================================================================

type openSessionRequest struct {
	DeckID      string `json:"deckId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
}

type sessionResponse struct {
	SessionID string                  `json:"sessionId"`
	Deck      primary.DeckDetails     `json:"deck"`
	Layout    *primary.Layout         `json:"layout"`
	Finalize  *primary.FinalizeReport `json:"finalize"`
}

func (s *Server) openSession(c *gin.Context) {
	var req openSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	var (
		editor primary.DeckEditor
		err    error
	)
	if req.DeckID != "" {
		editor, err = s.decks.EditDeck(ctx, req.DeckID)
	} else {
		editor, err = s.decks.NewDeck(ctx, primary.NewDeckRequest{
			Name:        req.Name,
			Description: req.Description,
			IsPublic:    req.IsPublic,
		})
	}
	if err != nil {
		s.writeError(c, err)
		return
	}

	id := s.sessions.Open(ctxutil.PlayerFromContext(ctx), editor)
	s.logger.Info("editor session opened", zap.String("session", id), zap.String("deck", editor.Details().ID))
	c.JSON(http.StatusCreated, s.sessionView(id, editor))
}

func (s *Server) sessionView(id string, editor primary.DeckEditor) sessionResponse {
	return sessionResponse{
		SessionID: id,
		Deck:      editor.Details(),
		Layout:    editor.Organize(),
		Finalize:  editor.CanFinalize(),
	}
}

// editor resolves the session named in the path, writing a 404 if the
// player has no such session.
func (s *Server) editor(c *gin.Context) (primary.DeckEditor, bool) {
	sid := c.Param("sid")
	editor, ok := s.sessions.Get(sid, ctxutil.PlayerFromContext(c.Request.Context()))
	if !ok {
		s.writeError(c, coredeck.NotFound("session", sid))
		return nil, false
	}
	return editor, true
}

func (s *Server) getSession(c *gin.Context) {
	editor, ok := s.editor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.sessionView(c.Param("sid"), editor))
}

type updateSessionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"isPublic"`
}

func (s *Server) updateSession(c *gin.Context) {
	editor, ok := s.editor(c)
	if !ok {
		return
	}
	var req updateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	editor.UpdateDetails(primary.UpdateDeckRequest{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	c.JSON(http.StatusOK, editor.Details())
}

func (s *Server) closeSession(c *gin.Context) {
	if !s.sessions.Close(c.Param("sid"), ctxutil.PlayerFromContext(c.Request.Context())) {
		s.writeError(c, coredeck.NotFound("session", c.Param("sid")))
		return
	}
	c.Status(http.StatusNoContent)
}

type addCardRequest struct {
	CardID string `json:"cardId" binding:"required"`
}

func (s *Server) addCard(c *gin.Context) {
	editor, ok := s.editor(c)
	if !ok {
		return
	}
	var req addCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	card, err := editor.AddCard(c.Request.Context(), req.CardID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"card": card, "layout": editor.Organize()})
}

func (s *Server) removeCard(c *gin.Context) {
	editor, ok := s.editor(c)
	if !ok {
		return
	}
	if err := editor.RemoveCard(c.Param("cardId")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"layout": editor.Organize()})
}

type startDragRequest struct {
	Section string `json:"section" binding:"required"`
	Index   int    `json:"index"`
}

func (s *Server) startDrag(c *gin.Context) {
	editor, ok := s.editor(c)
	if !ok {
		return
	}
	var req startDragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := editor.StartDrag(req.Section, req.Index); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dragging": gin.H{"section": req.Section, "index": req.Index}})
}

func (s *Server) endDrag(c *gin.Context) {
	editor, ok := s.editor(c)
	if !ok {
		return
	}
	var target primary.DropTarget
	if err := c.ShouldBindJSON(&target); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	result, err := editor.EndDrag(target)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result, "layout": editor.Organize()})
}

func (s *Server) layout(c *gin.Context) {
	editor, ok := s.editor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, editor.Organize())
}

func (s *Server) finalize(c *gin.Context) {
	editor, ok := s.editor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, editor.CanFinalize())
}

func (s *Server) save(c *gin.Context) {
	editor, ok := s.editor(c)
	if !ok {
		return
	}
	deckID, err := editor.Save(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deckId": deckID, "shareCode": coredeck.ShareCode(deckID)})
}

func (s *Server) export(c *gin.Context) {
	editor, ok := s.editor(c)
	if !ok {
		return
	}
	c.String(http.StatusOK, editor.Export())
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

// Package httpapi exposes the deck services over a JSON HTTP API for
// presentation clients.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	coredeck "github.com/example/deckforge/internal/core/deck"
	"github.com/example/deckforge/internal/ctxutil"
	"github.com/example/deckforge/internal/ports/primary"
)

// PlayerHeader carries the acting player's ID.
const PlayerHeader = "X-Player-ID"

// DefaultSessionTTL is how long an idle editor session is kept.
const DefaultSessionTTL = 2 * time.Hour

// Server routes HTTP requests to the deck and card services.
type Server struct {
	decks         primary.DeckService
	cards         primary.CardService
	history       primary.HistoryService
	sessions      *SessionStore
	logger        *zap.Logger
	defaultPlayer string
	engine        *gin.Engine
}

// NewServer creates a Server. defaultPlayer acts for requests without a
// player header; leave it empty to require the header.
func NewServer(decks primary.DeckService, cards primary.CardService, history primary.HistoryService, defaultPlayer string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		decks:         decks,
		cards:         cards,
		history:       history,
		sessions:      NewSessionStore(DefaultSessionTTL),
		logger:        logger,
		defaultPlayer: defaultPlayer,
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), s.playerContext())
	s.registerRoutes(r)
	s.engine = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) registerRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)

		api.GET("/cards", s.listCards)
		api.GET("/cards/:id", s.getCard)

		api.GET("/decks", s.listDecks)
		api.GET("/decks/:id", s.getDeck)
		api.DELETE("/decks/:id", s.deleteDeck)
		api.GET("/decks/:id/qr", s.deckQR)
		api.GET("/decks/:id/history", s.deckHistory)

		api.POST("/sessions", s.openSession)
		sess := api.Group("/sessions/:sid")
		{
			sess.GET("", s.getSession)
			sess.PATCH("", s.updateSession)
			sess.DELETE("", s.closeSession)
			sess.POST("/cards", s.addCard)
			sess.DELETE("/cards/:cardId", s.removeCard)
			sess.POST("/drag/start", s.startDrag)
			sess.POST("/drag/end", s.endDrag)
			sess.GET("/layout", s.layout)
			sess.GET("/finalize", s.finalize)
			sess.POST("/save", s.save)
			sess.GET("/export", s.export)
		}
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("player", ctxutil.PlayerFromContext(c.Request.Context())),
		)
	}
}

// playerContext puts the acting player on the request context.
func (s *Server) playerContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		player := strings.TrimSpace(c.GetHeader(PlayerHeader))
		if player == "" {
			player = s.defaultPlayer
		}
		if player != "" {
			c.Request = c.Request.WithContext(ctxutil.WithPlayerID(c.Request.Context(), player))
		}
		c.Next()
	}
}

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error   string   `json:"error"`
	Reasons []string `json:"reasons,omitempty"`
}

// writeError maps an error kind to its status code.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, coredeck.ErrValidation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, coredeck.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, coredeck.ErrPermission):
		status = http.StatusForbidden
	case errors.Is(err, coredeck.ErrPersistence):
		status = http.StatusServiceUnavailable
	}

	body := errorResponse{Error: err.Error()}
	var verr *coredeck.ValidationError
	if errors.As(err, &verr) {
		body.Reasons = verr.Reasons
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, body)
}

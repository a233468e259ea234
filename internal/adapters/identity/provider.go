// Package identity resolves the active player for the deck services.
package identity

import (
	"context"

	"github.com/example/deckforge/internal/ctxutil"
	"github.com/example/deckforge/internal/ports/secondary"
)

// PlayerProvider implements secondary.IdentityProvider. A player set on the
// context (an HTTP header, a CLI flag) wins over the configured default.
type PlayerProvider struct {
	defaultPlayer string
}

// NewPlayerProvider creates a PlayerProvider falling back to defaultPlayer.
func NewPlayerProvider(defaultPlayer string) *PlayerProvider {
	return &PlayerProvider{defaultPlayer: defaultPlayer}
}

// CurrentPlayer returns the player driving the request, or "" if none.
func (p *PlayerProvider) CurrentPlayer(ctx context.Context) (string, error) {
	if player := ctxutil.PlayerFromContext(ctx); player != "" {
		return player, nil
	}
	return p.defaultPlayer, nil
}

// Ensure PlayerProvider implements the interface
var _ secondary.IdentityProvider = (*PlayerProvider)(nil)

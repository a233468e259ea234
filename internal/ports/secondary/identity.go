package secondary

import "context"

// IdentityProvider defines the secondary port for resolving the active player.
type IdentityProvider interface {
	// CurrentPlayer returns the ID of the player driving the request.
	CurrentPlayer(ctx context.Context) (string, error)
}

package identity

import (
	"context"
	"testing"

	"github.com/example/deckforge/internal/ctxutil"
)

func TestPlayerProvider_CurrentPlayer(t *testing.T) {
	tests := []struct {
		name     string
		fallback string
		ctx      context.Context
		want     string
	}{
		{"context wins", "demo", ctxutil.WithPlayerID(context.Background(), "alice"), "alice"},
		{"falls back to default", "demo", context.Background(), "demo"},
		{"no player at all", "", context.Background(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPlayerProvider(tt.fallback).CurrentPlayer(tt.ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// Package roundctx threads a round identifier through context.Context so log
// lines and error messages from every goroutine touched by one upload round
// can be correlated.
package roundctx

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const roundIDKey = contextKey("round-id")

// NewRoundID generates a fresh identifier for one client upload round.
func NewRoundID() string {
	return uuid.NewString()
}

// WithRoundID attaches a round identifier to ctx.
func WithRoundID(ctx context.Context, roundID string) context.Context {
	return context.WithValue(ctx, roundIDKey, roundID)
}

// RoundID extracts the round identifier from ctx, or "" if none was set.
func RoundID(ctx context.Context) string {
	if id, ok := ctx.Value(roundIDKey).(string); ok {
		return id
	}
	return ""
}

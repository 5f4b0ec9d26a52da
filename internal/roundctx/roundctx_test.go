package roundctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundID(t *testing.T) {
	t.Run("missing round id returns empty string", func(t *testing.T) {
		assert.Equal(t, "", RoundID(context.Background()))
	})

	t.Run("round id round-trips through context", func(t *testing.T) {
		// Arrange
		ctx := WithRoundID(context.Background(), "abc-123")

		// Act
		got := RoundID(ctx)

		// Assert
		assert.Equal(t, "abc-123", got)
	})

	t.Run("generated round ids are unique", func(t *testing.T) {
		a := NewRoundID()
		b := NewRoundID()
		assert.NotEqual(t, a, b)
	})
}

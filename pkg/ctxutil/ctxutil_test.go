package ctxutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSevakID(t *testing.T) {
	ctx := context.Background()

	_, ok := SevakIDFromCtx(ctx)
	assert.False(t, ok)

	ctx = WithSevakID(ctx, "sevak1")
	id, ok := SevakIDFromCtx(ctx)
	assert.True(t, ok)
	assert.Equal(t, "sevak1", id)

	_, ok = SevakIDFromCtx(WithSevakID(context.Background(), ""))
	assert.False(t, ok, "empty id reads as absent")
}

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestIDFromCtx(ctx))

	ctx = WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", RequestIDFromCtx(ctx))
}

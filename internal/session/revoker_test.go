package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	revoked, err := s.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, "abc", time.Minute))

	revoked, _ = s.IsRevoked(ctx, "abc")
	assert.True(t, revoked)

	revoked, _ = s.IsRevoked(ctx, "other")
	assert.False(t, revoked)
}

func TestMemoryStoreIgnoresExpiredTokens(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Revoke(ctx, "old", 0))

	revoked, _ := s.IsRevoked(ctx, "old")
	assert.False(t, revoked)
}

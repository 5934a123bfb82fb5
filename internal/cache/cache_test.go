package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	c := New("redis://" + s.Addr())
	ctx := context.Background()

	_, ok := c.GetURL(ctx, "3012345678")
	assert.False(t, ok)

	c.SetURL(ctx, "3012345678", "https://www.dogtas.com/lara-p-42")

	got, ok := c.GetURL(ctx, "3012345678")
	require.True(t, ok)
	assert.Equal(t, "https://www.dogtas.com/lara-p-42", got)

	// chaves expiram para não servir URL morta para sempre
	s.FastForward(resolveTTL + 1)
	_, ok = c.GetURL(ctx, "3012345678")
	assert.False(t, ok)
}

func TestCacheDisabled(t *testing.T) {
	c := New("")
	ctx := context.Background()

	c.SetURL(ctx, "3012345678", "https://www.dogtas.com/lara-p-42")
	_, ok := c.GetURL(ctx, "3012345678")
	assert.False(t, ok)
}

func TestCacheBadURL(t *testing.T) {
	c := New("::não é url::")
	_, ok := c.GetURL(context.Background(), "3012345678")
	assert.False(t, ok)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	c, err := Open(t.TempDir(), time.Hour)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()

	_, hit, err := c.Get(ctx, "John 8", "NIV")
	require.NoError(t, err)
	assert.False(t, hit, "empty cache should miss")

	body := []byte("<html>John 8 NIV</html>")
	require.NoError(t, c.Put(ctx, "John 8", "NIV", body))

	got, hit, err := c.Get(ctx, "John 8", "NIV")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, body, got)

	// Different edition is a different key.
	_, hit, err = c.Get(ctx, "John 8", "KJV")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCachePutRefreshes(t *testing.T) {
	c, err := Open(t.TempDir(), time.Hour)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Put(ctx, "John 8", "NIV", []byte("old")))
	require.NoError(t, c.Put(ctx, "John 8", "NIV", []byte("new")))

	got, hit, err := c.Get(ctx, "John 8", "NIV")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, []byte("new"), got)
}

func TestCacheZeroTTLNeverHits(t *testing.T) {
	c, err := Open(t.TempDir(), 0)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Put(ctx, "John 8", "NIV", []byte("body")))

	_, hit, err := c.Get(ctx, "John 8", "NIV")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCachePurge(t *testing.T) {
	c, err := Open(t.TempDir(), 0)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Put(ctx, "John 8", "NIV", []byte("a")))
	require.NoError(t, c.Put(ctx, "John 9", "NIV", []byte("b")))

	// Zero TTL purges everything.
	n, err := c.Purge(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

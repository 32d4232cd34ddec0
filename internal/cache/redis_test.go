package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilCacheIsNoOp(t *testing.T) {
	ctx := context.Background()
	var c *Cache

	assert.Nil(t, c.GetTier1IDs(ctx))
	c.SetTier1IDs(ctx, []int{1, 2, 3})
	c.InvalidateTier1IDs(ctx)
	assert.NoError(t, c.Close())
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedProduct struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "products:id:1", cachedProduct{ID: 1, Name: "Paracetamol", Price: 5000}, time.Minute))

	var got cachedProduct
	hit, err := c.Get(ctx, "products:id:1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "Paracetamol", got.Name)

	hit, err = c.Get(ctx, "products:id:2", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemory()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "products:list", []cachedProduct{{ID: 1}}, time.Minute))

	now = now.Add(2 * time.Minute)
	var got []cachedProduct
	hit, err := c.Get(ctx, "products:list", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryCache_DeletePrefix(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "products:list", []int{1}, 0))
	require.NoError(t, c.Set(ctx, "products:id:1", 1, 0))
	require.NoError(t, c.Set(ctx, "categories:list", []int{1}, 0))

	require.NoError(t, c.DeletePrefix(ctx, "products:"))

	var v interface{}
	hit, _ := c.Get(ctx, "products:id:1", &v)
	assert.False(t, hit)
	hit, _ = c.Get(ctx, "categories:list", &v)
	assert.True(t, hit)
}

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synaptica-ai/heartrisk/pkg/common/models"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)

	_, found, err := c.Get(ctx, "knn:v1:abc")
	require.NoError(t, err)
	assert.False(t, found)

	want := models.Inference{Prediction: 1, Probabilities: [2]float64{0.25, 0.75}}
	require.NoError(t, c.Set(ctx, "knn:v1:abc", want))

	got, found, err := c.Get(ctx, "knn:v1:abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(10 * time.Millisecond)
	require.NoError(t, c.Set(ctx, "k", models.Inference{}))

	time.Sleep(30 * time.Millisecond)
	_, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewResultCacheDefaultPrefix(t *testing.T) {
	c := NewResultCache(nil, "", time.Minute)
	assert.Equal(t, "heartrisk:inference:abc", c.key("abc"))
}

package profile

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriangulationCache(t *testing.T) {
	tc := NewTriangulationCache(0)
	a := gridDataset(t, "a", 4, 0, 1, smooth)

	t1, err := tc.Get(a)
	require.NoError(t, err)
	t2, err := tc.Get(a)
	require.NoError(t, err)
	assert.Same(t, t1, t2)

	// Same name, different dataset: recomputed, never mixed up.
	b := gridDataset(t, "a", 5, 0, 1, smooth)
	t3, err := tc.Get(b)
	require.NoError(t, err)
	assert.NotSame(t, t1, t3)

	hits, misses := tc.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(2), misses)

	tc.Flush()
	t4, err := tc.Get(b)
	require.NoError(t, err)
	assert.NotSame(t, t3, t4)

	flat, _ := NewDataset("flat", []float64{0, 1, 2}, []float64{0, 0, 0})
	_, err = tc.Get(flat)
	assert.True(t, errors.Is(err, ErrInsufficientGeometry))
	_, err = tc.Get(flat)
	assert.Error(t, err, "failures are not cached")
}

func TestTriangulationCacheExpiry(t *testing.T) {
	tc := NewTriangulationCache(20 * time.Millisecond)
	a := gridDataset(t, "a", 4, 0, 1, smooth)
	t1, err := tc.Get(a)
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	t2, err := tc.Get(a)
	require.NoError(t, err)
	assert.NotSame(t, t1, t2)
	_, misses := tc.Stats()
	assert.Equal(t, int64(2), misses)
}

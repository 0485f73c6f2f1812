package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tristendillon/scout/core/models"
)

func TestValidateAndGet(t *testing.T) {
	fc, err := NewFileCache(8)
	require.NoError(t, err)

	src := []byte("export const a = 1;")
	rec := &models.FileRecord{File: "src/a.js"}

	_, ok := fc.ValidateAndGet("/repo/src/a.js", src)
	assert.False(t, ok)

	fc.Set("/repo/src/a.js", src, rec)
	got, ok := fc.ValidateAndGet("/repo/src/a.js", src)
	require.True(t, ok)
	assert.Same(t, rec, got)

	_, ok = fc.ValidateAndGet("/repo/src/a.js", []byte("export const a = 2;"))
	assert.False(t, ok)
	_, ok = fc.ValidateAndGet("/repo/src/a.js", src)
	assert.False(t, ok, "stale entry is dropped")

	m := fc.GetMetrics()
	assert.Equal(t, int64(1), m.Hits)
	assert.Equal(t, int64(3), m.Misses)
	assert.Equal(t, int64(1), m.Invalidations)
	assert.InDelta(t, 25.0, m.HitRate, 0.001)
}

func TestEviction(t *testing.T) {
	fc, err := NewFileCache(2)
	require.NoError(t, err)

	for _, p := range []string{"a", "b", "c"} {
		fc.Set(p, []byte(p), &models.FileRecord{File: p})
	}

	assert.Equal(t, []string{"b", "c"}, fc.Paths())
	m := fc.GetMetrics()
	assert.Equal(t, int64(1), m.Evictions)
	assert.Equal(t, 2, m.TotalEntries)
}

func TestInvalidateAndClear(t *testing.T) {
	fc, err := NewFileCache(0)
	require.NoError(t, err)

	fc.Set("a", []byte("a"), &models.FileRecord{})
	fc.Set("b", []byte("b"), &models.FileRecord{})
	fc.InvalidateFile("a")
	fc.InvalidateFile("missing")
	assert.Equal(t, []string{"b"}, fc.Paths())

	fc.Clear()
	assert.Empty(t, fc.Paths())
	assert.Equal(t, int64(2), fc.GetMetrics().Invalidations)
}

func TestHashIsStable(t *testing.T) {
	assert.Equal(t, Hash([]byte("x")), Hash([]byte("x")))
	assert.NotEqual(t, Hash([]byte("x")), Hash([]byte("y")))
}

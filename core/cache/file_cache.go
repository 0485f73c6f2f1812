// Package cache keeps the last FileRecord of every analyzed file so that
// unchanged files are not parsed again.
package cache

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/xxh3"

	"github.com/tristendillon/scout/core/logger"
	"github.com/tristendillon/scout/core/models"
)

type entry struct {
	hash   uint64
	record *models.FileRecord
}

// FileCache maps absolute file paths to the record built from a given
// content hash. It is safe for concurrent use.
type FileCache struct {
	entries *lru.Cache[string, entry]
	metrics Metrics
	mutex   sync.Mutex
}

func NewFileCache(size int) (*FileCache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New[string, entry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create file cache: %w", err)
	}
	logger.Debug("Created new file cache with MaxEntries=%d", size)
	return &FileCache{entries: entries}, nil
}

// Hash is the content hash used to validate entries.
func Hash(src []byte) uint64 {
	return xxh3.Hash(src)
}

// ValidateAndGet returns the cached record for path when src still hashes to
// the value it was stored with. A stale entry is dropped.
func (fc *FileCache) ValidateAndGet(path string, src []byte) (*models.FileRecord, bool) {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()

	e, ok := fc.entries.Get(path)
	if !ok {
		fc.metrics.Misses++
		logger.Debug("Cache miss for %s - entry not found", path)
		return nil, false
	}
	if e.hash != Hash(src) {
		fc.entries.Remove(path)
		fc.metrics.Misses++
		fc.metrics.Invalidations++
		logger.Debug("Cache miss for %s - file modified", path)
		return nil, false
	}

	fc.metrics.Hits++
	logger.Debug("Cache hit for %s", path)
	return e.record, true
}

func (fc *FileCache) Set(path string, src []byte, rec *models.FileRecord) {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()

	if fc.entries.Add(path, entry{hash: Hash(src), record: rec}) {
		fc.metrics.Evictions++
		logger.Debug("Cache full, evicted least recently used entry")
	}
	logger.Debug("Cached record for %s", path)
}

func (fc *FileCache) InvalidateFile(path string) {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()

	if fc.entries.Remove(path) {
		fc.metrics.Invalidations++
		logger.Debug("Invalidated cache entry for %s", path)
	}
}

// Paths lists the cached paths from least to most recently used.
func (fc *FileCache) Paths() []string {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()
	return fc.entries.Keys()
}

func (fc *FileCache) Clear() {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()

	n := fc.entries.Len()
	fc.entries.Purge()
	fc.metrics.Invalidations += int64(n)
	logger.Debug("Cleared entire cache, invalidated %d entries", n)
}

func (fc *FileCache) GetMetrics() Metrics {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()

	m := fc.metrics
	m.TotalEntries = fc.entries.Len()
	m.CalculateHitRate()
	return m
}

func (fc *FileCache) LogStats() {
	m := fc.GetMetrics()
	logger.Debug("Cache stats: Hits=%d, Misses=%d, Hit Rate=%.1f%%, Total Entries=%d, Invalidations=%d",
		m.Hits, m.Misses, m.HitRate, m.TotalEntries, m.Invalidations)
}

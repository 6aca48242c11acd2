package layout

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of cached extractions.
const DefaultCacheSize = 64

type cacheKey struct {
	floor int
	rows  int
	cols  int
	hash  uint64
}

// Cache memoizes ExtractGroups per floor index and matrix content.
// It is safe for concurrent use.
type Cache struct {
	entries *lru.Cache[cacheKey, *Extraction]
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewCache creates a cache holding at most size extractions.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[cacheKey, *Extraction](size)
	if err != nil {
		// Only returned for a non-positive size.
		panic(err)
	}
	return &Cache{entries: entries}
}

// Groups returns the extraction for floor's matrix, scanning it only when
// this floor index has not been seen with identical content.
func (c *Cache) Groups(floor int, m Matrix) *Extraction {
	key := cacheKey{floor: floor, rows: m.Rows(), cols: m.Cols(), hash: Hash(m)}
	if e, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return e
	}
	c.misses.Add(1)
	e := ExtractGroups(m)
	c.entries.Add(key, e)
	return e
}

// Stats returns cache hit and miss counts.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached extractions.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached extraction.
func (c *Cache) Purge() {
	c.entries.Purge()
}

// Hash returns a content hash of m. Row boundaries are part of the hash so
// [[1,2],[3]] and [[1],[2,3]] differ.
func Hash(m Matrix) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, row := range m {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(row)))
		_, _ = d.Write(buf[:])
		for _, v := range row {
			binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
			_, _ = d.Write(buf[:])
		}
	}
	return d.Sum64()
}

package layout

import "testing"

func TestCacheReusesIdenticalContent(t *testing.T) {
	c := NewCache(8)

	a := c.Groups(0, Matrix{{5, 5}, {0, 3}})
	// A fresh slice with the same content must hit.
	b := c.Groups(0, Matrix{{5, 5}, {0, 3}})

	if a != b {
		t.Error("Groups() returned a different extraction for identical content")
	}
	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats() = %d hits, %d misses; want 1, 1", hits, misses)
	}
}

func TestCacheKeysByFloor(t *testing.T) {
	c := NewCache(8)
	m := Matrix{{1}}
	c.Groups(0, m)
	c.Groups(1, m)
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestCacheRecomputesOnChange(t *testing.T) {
	c := NewCache(8)
	m := Matrix{{1, 1}}
	first := c.Groups(0, m)
	m[0][1] = 0
	second := c.Groups(0, m)
	if first == second {
		t.Fatal("changed matrix served from cache")
	}
	if second.Groups[0].Width != 1 {
		t.Errorf("width = %d, want 1", second.Groups[0].Width)
	}
}

func TestCacheEvicts(t *testing.T) {
	c := NewCache(2)
	for f := 0; f < 5; f++ {
		c.Groups(f, Matrix{{f + 1}})
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len() after Purge = %d, want 0", c.Len())
	}
}

func TestHashRowBoundaries(t *testing.T) {
	if Hash(Matrix{{1, 2}, {3}}) == Hash(Matrix{{1}, {2, 3}}) {
		t.Error("Hash() ignores row boundaries")
	}
	if Hash(Matrix{{1, 2}}) != Hash(Matrix{{1, 2}}) {
		t.Error("Hash() not stable")
	}
}

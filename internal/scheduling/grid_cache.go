package scheduling

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// GridCache memoises Grid per window. Entries are keyed by the window value itself,
// so editing a doctor's hours produces a new key rather than a stale hit.
type GridCache struct {
	cache *lru.Cache[Window, []string]
}

// NewGridCache creates a cache holding at most size windows.
func NewGridCache(size int) (*GridCache, error) {
	c, err := lru.New[Window, []string](size)
	if err != nil {
		return nil, err
	}
	return &GridCache{cache: c}, nil
}

// Grid returns the cached grid for w, computing it on a miss. Callers must not
// modify the returned slice.
func (g *GridCache) Grid(w Window) []string {
	if slots, ok := g.cache.Get(w); ok {
		return slots
	}
	slots := Grid(w)
	g.cache.Add(w, slots)
	return slots
}

// AvailableSlots is AvailableSlots backed by the cache.
func (g *GridCache) AvailableSlots(w Window, date Date, now time.Time) []string {
	if !w.CoversDay(date) {
		return []string{}
	}
	return filterPast(g.Grid(w), date, now)
}

// Len returns the number of cached windows.
func (g *GridCache) Len() int {
	return g.cache.Len()
}

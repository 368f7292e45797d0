package xstitch

import "sync"

// matchCache memoizes match results per target color. Palettes repeat
// colors across runs of the same engine (and the host may ask for the
// same color once per pixel), so exact hits are common.
type matchCache struct {
	mu      sync.RWMutex
	entries map[RGB]MatchResult
	hits    int
	misses  int
}

func newMatchCache() *matchCache {
	return &matchCache{entries: make(map[RGB]MatchResult)}
}

// getEntry retrieves the cached result for target, if any.
func (mc *matchCache) getEntry(target RGB) (MatchResult, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	result, exists := mc.entries[target]
	if exists {
		mc.hits++
	} else {
		mc.misses++
	}
	return result, exists
}

// addEntry stores the result for its target color.
func (mc *matchCache) addEntry(result MatchResult) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.entries[result.Target] = result
}

func (mc *matchCache) stats() (hits, misses, size int) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.hits, mc.misses, len(mc.entries)
}

func (mc *matchCache) reset() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.entries = make(map[RGB]MatchResult)
	mc.hits = 0
	mc.misses = 0
}

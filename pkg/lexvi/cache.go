package lexvi

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/lexvi/lexvi/automaton"
)

const defaultCacheLimit = 32

// Cache memoizes compiled automata keyed by everything that affects
// the compilation result. Automata are immutable, so a cached machine
// can be shared freely between goroutines.
type Cache struct {
	mu     sync.RWMutex
	limit  int
	auto   map[string]*automaton.Automaton
	order  []string
	hits   uint64
	misses uint64
}

// NewCache creates a cache holding at most limit automata; limit <= 0
// selects the default of 32. When full, the oldest entry is evicted.
func NewCache(limit int) *Cache {
	if limit <= 0 {
		limit = defaultCacheLimit
	}
	return &Cache{
		limit: limit,
		auto:  make(map[string]*automaton.Automaton),
	}
}

// Compile returns the cached automaton for the options, compiling and
// storing it on a miss.
func (c *Cache) Compile(opts Options) (*automaton.Automaton, error) {
	key := cacheKey(opts)

	c.mu.RLock()
	a, ok := c.auto[key]
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return a, nil
	}

	a, err := Compile(opts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.misses++
	if _, ok := c.auto[key]; !ok {
		if len(c.order) >= c.limit {
			delete(c.auto, c.order[0])
			c.order = c.order[1:]
		}
		c.auto[key] = a
		c.order = append(c.order, key)
	}
	return a, nil
}

// Stats reports hit and miss counts plus the current entry count.
func (c *Cache) Stats() (hits, misses uint64, size int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses, len(c.auto)
}

// cacheKey hashes the options that shape the compiled machine.
// Verbose only changes logging and stays out of the key.
func cacheKey(opts Options) string {
	h := sha256.New()
	alphabet := opts.alphabet()
	h.Write(alphabet[:])
	h.Write([]byte{boolByte(opts.SkipMinimize)})
	for _, r := range opts.Rules {
		h.Write([]byte(r.Name))
		h.Write([]byte{0})
		h.Write([]byte(r.Pattern))
		h.Write([]byte{0, boolByte(r.Skip)})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

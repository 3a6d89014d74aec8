package statements

import (
	"container/list"
	"strconv"
	"sync"

	"github.com/bobmcallan/synthfin/internal/models"
)

// bundleCache is a fixed-capacity LRU of generated bundles.
// Keys are the normalised ticker and year count, so a hit is always the
// bundle Generate would return for that exact request.
type bundleCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front is most recently used
	entries  map[string]*list.Element
}

type cacheEntry struct {
	key    string
	bundle *models.StatementBundle
}

func newBundleCache(capacity int) *bundleCache {
	return &bundleCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

func cacheKey(ticker string, years int) string {
	return ticker + "|" + strconv.Itoa(years)
}

func (c *bundleCache) get(key string) (*models.StatementBundle, bool) {
	if c.capacity <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).bundle, true
}

func (c *bundleCache) put(key string, b *models.StatementBundle) {
	if c.capacity <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).bundle = b
		c.order.MoveToFront(el)
		return
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, bundle: b})

	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

func (c *bundleCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

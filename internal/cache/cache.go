package cache

import (
	"sync"
	"time"
)

// Cache is a TTL cache of string values grouped by namespace, so one
// namespace can be dropped at once.
//
// Every explicit removal bumps a generation counter. Readers that fill the
// cache from a slower source take a Token first and fill with SetIfUnchanged,
// so a value read before a removal is never cached after it.
type Cache struct {
	mu        sync.RWMutex
	ttl       time.Duration
	now       func() time.Time
	gen       uint64
	nextSweep time.Time
	m         map[string]map[string]entry
}

type entry struct {
	val string
	exp time.Time
}

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &Cache{
		ttl: ttl,
		now: time.Now,
		m:   make(map[string]map[string]entry),
	}
}

func (c *Cache) Get(namespace, key string) (string, bool) {
	now := c.now()

	c.mu.RLock()
	e, ok := c.m[namespace][key]
	c.mu.RUnlock()

	if !ok || now.After(e.exp) {
		return "", false
	}

	return e.val, true
}

// Token snapshots the removal generation for a later SetIfUnchanged.
func (c *Cache) Token() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// SetIfUnchanged stores val only if nothing was removed since token was taken.
func (c *Cache) SetIfUnchanged(namespace, key, val string, token uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != token {
		return false
	}
	c.setLocked(namespace, key, val)
	return true
}

func (c *Cache) Set(namespace, key, val string) {
	c.mu.Lock()
	c.setLocked(namespace, key, val)
	c.mu.Unlock()
}

func (c *Cache) Delete(namespace, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.deleteLocked(namespace, key)
}

func (c *Cache) DropNamespace(namespace string) {
	c.mu.Lock()
	c.gen++
	delete(c.m, namespace)
	c.mu.Unlock()
}

// Len counts stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, ns := range c.m {
		n += len(ns)
	}
	return n
}

// setLocked also sweeps expired entries, at most once per TTL.
func (c *Cache) setLocked(namespace, key, val string) {
	now := c.now()

	if now.After(c.nextSweep) {
		c.sweepLocked(now)
		c.nextSweep = now.Add(c.ttl)
	}

	ns, ok := c.m[namespace]
	if !ok {
		ns = make(map[string]entry)
		c.m[namespace] = ns
	}
	ns[key] = entry{val: val, exp: now.Add(c.ttl)}
}

func (c *Cache) sweepLocked(now time.Time) {
	for name, ns := range c.m {
		for key, e := range ns {
			if now.After(e.exp) {
				delete(ns, key)
			}
		}
		if len(ns) == 0 {
			delete(c.m, name)
		}
	}
}

func (c *Cache) deleteLocked(namespace, key string) {
	ns, ok := c.m[namespace]
	if !ok {
		return
	}
	delete(ns, key)
	if len(ns) == 0 {
		delete(c.m, namespace)
	}
}

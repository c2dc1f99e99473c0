package anubis

import (
	"sync"
	"time"
)

// DefaultCookieTTL applies when the pass response sets no expiry.
const DefaultCookieTTL = 7 * 24 * time.Hour

type cachedCookie struct {
	value     string
	expiresAt time.Time
}

// CookieCache keeps one pass cookie per host in memory.
type CookieCache struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]cachedCookie
}

func NewCookieCache() *CookieCache {
	return &CookieCache{now: time.Now, entries: make(map[string]cachedCookie)}
}

// Get returns the cookie for host, or "" when missing or expired.
func (c *CookieCache) Get(host string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[host]
	if !ok {
		return ""
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, host)
		return ""
	}
	return entry.value
}

func (c *CookieCache) Set(host, value string, expiresAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[host] = cachedCookie{value: value, expiresAt: expiresAt}
}

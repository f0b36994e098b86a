// Package scopecache provides the client-lookup cache used while a
// single organization's data is on screen. The cache is an explicit
// object owned by its caller (constructed, passed, and reset on scope
// change) rather than ambient package state.
package scopecache

import (
	"sync"

	"github.com/evergreenpantry/pantryledger/internal/model"
)

// ClientCache holds client records keyed by ID for one scope at a time.
// Safe for concurrent use.
type ClientCache struct {
	mu      sync.Mutex
	scopeID string
	byID    map[string]model.Client
}

// New returns an empty cache bound to no scope.
func New() *ClientCache {
	return &ClientCache{byID: make(map[string]model.Client)}
}

// Scope returns the scope the cache currently holds records for.
func (c *ClientCache) Scope() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scopeID
}

// Reset clears the cache and binds it to a new scope. Resetting to the
// current scope clears it as well (a forced refresh).
func (c *ClientCache) Reset(scopeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scopeID = scopeID
	c.byID = make(map[string]model.Client)
}

// Put stores the given clients under their IDs.
func (c *ClientCache) Put(clients []model.Client) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cl := range clients {
		if cl.ID != "" {
			c.byID[cl.ID] = cl
		}
	}
}

// Get looks up one client.
func (c *ClientCache) Get(id string) (model.Client, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cl, ok := c.byID[id]
	return cl, ok
}

// Len returns the number of cached records.
func (c *ClientCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byID)
}

// Snapshot returns a copy of the lookup map, safe to hand to pure
// consumers like the row pipeline.
func (c *ClientCache) Snapshot() map[string]model.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]model.Client, len(c.byID))
	for id, cl := range c.byID {
		out[id] = cl
	}
	return out
}

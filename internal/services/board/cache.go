package board

import (
	"sync"

	"github.com/mcoot/dotsgame/internal/model"
)

// Cache holds the last derived board per game, tagged with the number of moves it was
// built from. A lookup with a different move count misses, so entries go stale on their
// own when another process appends a move. All methods are safe on a nil Cache.
type Cache struct {
	mu      sync.RWMutex
	entries map[model.GameID]cacheEntry
}

type cacheEntry struct {
	version int
	board   *model.Board
}

// NewCache creates an empty board cache
func NewCache() *Cache {
	return &Cache{entries: make(map[model.GameID]cacheEntry)}
}

// Get returns the cached board if it was built from exactly version moves
func (c *Cache) Get(gameID model.GameID, version int) (*model.Board, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[gameID]
	if !ok || e.version != version {
		return nil, false
	}
	return e.board, true
}

// Put stores a board built from version moves
func (c *Cache) Put(gameID model.GameID, version int, b *model.Board) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[gameID] = cacheEntry{version: version, board: b}
}

// Delete drops the entry for a game
func (c *Cache) Delete(gameID model.GameID) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, gameID)
}

// Len returns the number of cached games
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

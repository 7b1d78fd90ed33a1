package store

import (
	"sync"

	"animal-chess/internal/room"
)

type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]*room.Game
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: map[string]*room.Game{},
	}
}

func (m *MemoryStore) GetGame(id string) (*room.Game, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	return g, ok
}

func (m *MemoryStore) SaveGame(g *room.Game) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

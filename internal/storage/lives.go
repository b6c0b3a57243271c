package storage

import (
	"context"
	"sync"
)

// LivesStorage provides in-memory storage for life counters by player ID.
type LivesStorage struct {
	mu    sync.RWMutex
	lives map[string]int
}

// NewLivesStorage creates a new LivesStorage.
func NewLivesStorage() *LivesStorage {
	return &LivesStorage{
		lives: make(map[string]int),
	}
}

// GetLives retrieves the life counter of a player.
func (s *LivesStorage) GetLives(_ context.Context, playerID string) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lives, ok := s.lives[playerID]
	return lives, ok, nil
}

// SaveLives stores the life counter of a player.
func (s *LivesStorage) SaveLives(_ context.Context, playerID string, lives int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lives[playerID] = lives
	return nil
}

// Delete removes the counter of a player.
func (s *LivesStorage) Delete(_ context.Context, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.lives, playerID)
	return nil
}

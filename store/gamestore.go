package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/minaorangina/concentration/engine"
)

var (
	ErrUnknownGameID   = errors.New("unknown game ID")
	ErrDuplicateGameID = errors.New("duplicate game ID")
)

type GameStore interface {
	FindGame(gameID string) (engine.GameEngine, error)
	AddGame(ge engine.GameEngine) error
	RemoveGame(gameID string) error
	GameIDs() []string
}

// InMemoryGameStore maps game id to game engine
type InMemoryGameStore struct {
	mu    sync.RWMutex
	games map[string]engine.GameEngine
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		games: map[string]engine.GameEngine{},
	}
}

func (s *InMemoryGameStore) FindGame(gameID string) (engine.GameEngine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ge, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGameID, gameID)
	}

	return ge, nil
}

func (s *InMemoryGameStore) AddGame(ge engine.GameEngine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[ge.ID()]; exists {
		return fmt.Errorf("%w %q", ErrDuplicateGameID, ge.ID())
	}

	s.games[ge.ID()] = ge
	return nil
}

// RemoveGame stops the game and forgets it
func (s *InMemoryGameStore) RemoveGame(gameID string) error {
	s.mu.Lock()
	ge, ok := s.games[gameID]
	delete(s.games, gameID)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownGameID, gameID)
	}

	ge.Stop()
	return nil
}

// GameIDs returns the id of every stored game, sorted
func (s *InMemoryGameStore) GameIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

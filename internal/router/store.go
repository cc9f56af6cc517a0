package router

import (
	"fmt"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
)

// Store maps a room to at most one active game.
// It is owned by the router loop and is not safe for concurrent use.
type Store struct {
	games map[string]Game
}

func NewStore() *Store {
	return &Store{games: make(map[string]Game)}
}

// Create registers the game for the room unless the room already has one.
func (that *Store) Create(roomID string, game Game) error {
	if existing, ok := that.games[roomID]; ok {
		return fmt.Errorf("%w: room %s already runs %s", apperror.ErrGameAlreadyExists, roomID, existing.Kind())
	}

	that.games[roomID] = game

	return nil
}

func (that *Store) Lookup(roomID string) (Game, error) {
	game, ok := that.games[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: room %s", apperror.ErrSessionNotFound, roomID)
	}

	return game, nil
}

// Delete discards the room's game. It reports whether a game was present.
func (that *Store) Delete(roomID string) bool {
	_, ok := that.games[roomID]
	delete(that.games, roomID)
	return ok
}

func (that *Store) Len() int {
	return len(that.games)
}

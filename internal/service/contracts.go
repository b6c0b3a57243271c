package service

import (
	"context"

	"github.com/aliskhannn/quiz-engine/internal/domain/entities"
)

// ItemRepository provides the decks that can be played.
type ItemRepository interface {
	GetDeck(ctx context.Context, name string) (entities.Deck, error)
	GetAll(ctx context.Context) ([]entities.Deck, error)
}

// LivesRepository persists life counters by player.
type LivesRepository interface {
	GetLives(ctx context.Context, playerID string) (lives int, ok bool, err error)
	SaveLives(ctx context.Context, playerID string, lives int) error
	Delete(ctx context.Context, playerID string) error
}

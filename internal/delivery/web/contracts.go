package web

import (
	"context"

	"github.com/aliskhannn/quiz-engine/internal/domain/entities"
	"github.com/aliskhannn/quiz-engine/internal/engine"
	"github.com/aliskhannn/quiz-engine/internal/service"
)

type GameService interface {
	Decks(ctx context.Context) ([]entities.Deck, error)
	Deck(ctx context.Context, name string) (entities.Deck, error)
	Start(ctx context.Context, playerID, deckName string, presenter engine.Presenter, hooks service.Hooks) (*service.Session, error)
	Answer(ctx context.Context, playerID, option string) (entities.Verdict, error)
	Session(playerID string) (*service.Session, bool)
	End(playerID string)
}

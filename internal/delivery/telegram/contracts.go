package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quiz-engine/internal/domain/entities"
	"github.com/aliskhannn/quiz-engine/internal/engine"
	"github.com/aliskhannn/quiz-engine/internal/service"
)

// Bot is the part of the Telegram API the presenter needs.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// UpdatesBot is a Bot that also delivers updates.
type UpdatesBot interface {
	Bot
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type GameService interface {
	Decks(ctx context.Context) ([]entities.Deck, error)
	Deck(ctx context.Context, name string) (entities.Deck, error)
	Start(ctx context.Context, playerID, deckName string, presenter engine.Presenter, hooks service.Hooks) (*service.Session, error)
	Answer(ctx context.Context, playerID, option string) (entities.Verdict, error)
	Lives(ctx context.Context, playerID string) (int, error)
	ResetLives(ctx context.Context, playerID string) error
}

package telegram

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-engine/internal/domain/entities"
	"github.com/aliskhannn/quiz-engine/internal/repository"
	"github.com/aliskhannn/quiz-engine/internal/service"
)

// decksHandler sends the deck menu, preceded by intro when it is not empty.
func (h *Handler) decksHandler(intro string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		decks, err := h.games.Decks(ctx)
		if err != nil {
			return fmt.Errorf("get decks: %w", err)
		}

		if len(decks) == 0 {
			h.send(newHTMLMessage(chatID, msgNoDecks))
			return nil
		}

		text := formatDecks(decks)
		if intro != "" {
			text = intro
		}

		msg := newHTMLMessage(chatID, text)
		msg.ReplyMarkup = buildDecksKeyboard(decks)
		h.send(msg)
		return nil
	}
}

// playHandler starts a new game of deck for the user.
func (h *Handler) playHandler(userID int64, deckName string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		deck, err := h.games.Deck(ctx, deckName)
		if errors.Is(err, repository.ErrDeckNotFound) {
			h.sendError(chatID, msgDeckNotFound)
			return h.decksHandler("")(ctx, chatID)
		}
		if err != nil {
			return fmt.Errorf("get deck %q: %w", deckName, err)
		}

		player := playerID(userID)
		p := NewPresenter(h.bot, chatID, deck, h.assetsDir, h.logger)
		h.setPresenter(player, p)

		_, err = h.games.Start(ctx, player, deck.Name, p, service.Hooks{
			OnComplete: func(s *service.Session) {
				h.logger.Info("quiz completed",
					zap.String("player_id", s.PlayerID),
					zap.String("deck", s.Deck.Name),
				)
			},
			OnGameOver: func(s *service.Session) {
				h.logger.Info("quiz lost",
					zap.String("player_id", s.PlayerID),
					zap.String("deck", s.Deck.Name),
				)
			},
			OnEnd: func(s *service.Session) {
				h.dropPresenter(s.PlayerID, p)
				p.Close()
			},
		})
		if err != nil {
			h.dropPresenter(player, p)
			p.Close()
			return fmt.Errorf("start game: %w", err)
		}
		return nil
	}
}

// livesHandler sends the lives the user has left.
func (h *Handler) livesHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		lives, err := h.games.Lives(ctx, playerID(userID))
		if err != nil {
			return fmt.Errorf("get lives: %w", err)
		}

		msg := newHTMLMessage(chatID, fmt.Sprintf(msgLives, hearts(lives)))
		msg.ReplyMarkup = buildLivesKeyboard()
		h.send(msg)
		return nil
	}
}

// resetLivesHandler restores the user's lives.
func (h *Handler) resetLivesHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.games.ResetLives(ctx, playerID(userID)); err != nil {
			return err
		}

		h.send(newHTMLMessage(chatID, fmt.Sprintf(msgLivesReset, hearts(entities.MaxLives))))
		return nil
	}
}

package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-engine/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)
	text := ""

	switch data.Action {
	case actionAnswer:
		text = h.handleAnswerCallback(ctx, cb.From.ID, data)

	case actionPlay:
		if len(data.Params) != 1 {
			h.logger.Warn("invalid play callback data", zap.String("data", data.Raw))
			break
		}
		_ = h.withErrorHandling("play", h.playHandler(cb.From.ID, data.Params[0]))(ctx, chatID)

	case actionMenu:
		_ = h.withErrorHandling("menu", h.decksHandler(""))(ctx, chatID)

	case actionLives:
		if len(data.Params) == 1 && data.Params[0] == livesReset {
			_ = h.withErrorHandling("lives_reset", h.resetLivesHandler(cb.From.ID))(ctx, chatID)
		}

	default:
		h.logger.Warn("unknown callback action", zap.String("data", data.Raw))
	}

	// Remove the user's "clock".
	h.answerCallback(cb.ID, text)
}

// handleAnswerCallback submits the option behind the pressed button and returns
// the text to show to the user.
func (h *Handler) handleAnswerCallback(ctx context.Context, userID int64, data callbackData) string {
	seq, index, ok := data.answerParams()
	if !ok {
		h.logger.Warn("invalid answer callback data", zap.String("data", data.Raw))
		return ""
	}

	player := playerID(userID)
	p, ok := h.presenter(player)
	if !ok {
		return msgNoSession
	}

	option, ok := p.Option(seq, index)
	if !ok {
		return msgStaleQuestion
	}

	verdict, err := h.games.Answer(ctx, player, option)
	if errors.Is(err, service.ErrSessionNotFound) {
		return msgNoSession
	}
	if err != nil {
		h.logger.Error("failed to answer", zap.String("player_id", player), zap.Error(err))
		return msgInternalError
	}

	return verdictText(verdict)
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}

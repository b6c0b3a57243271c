package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// HandlerFunc serves a command or a button of one chat.
type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs a failed handler under its name and tells the user that
// something went wrong. Handlers cancelled by shutdown are not reported to the user.
func (h *Handler) withErrorHandling(name string, fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		if errors.Is(err, context.Canceled) {
			h.logger.Debug("handler cancelled",
				zap.String("handler", name),
				zap.Int64("chat_id", chatID),
			)
			return nil
		}

		h.logger.Error("handle error",
			zap.String("handler", name),
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return nil
	}
}

package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot       UpdatesBot
	logger    *zap.Logger
	games     GameService
	assetsDir string

	mu         sync.Mutex
	presenters map[string]*Presenter // by player ID
}

func NewHandler(
	bot UpdatesBot,
	logger *zap.Logger,
	games GameService,
	assetsDir string,
) *Handler {
	return &Handler{
		bot:        bot,
		logger:     logger,
		games:      games,
		assetsDir:  assetsDir,
		presenters: make(map[string]*Presenter),
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	if !update.Message.IsCommand() {
		h.send(newHTMLMessage(chatID, msgUseButtons))
		return
	}

	switch update.Message.Command() {
	case "start":
		_ = h.withErrorHandling("start", h.decksHandler(msgWelcome))(ctx, chatID)

	case "play":
		deck := update.Message.CommandArguments()
		if deck == "" {
			_ = h.withErrorHandling("decks", h.decksHandler(""))(ctx, chatID)
			return
		}
		_ = h.withErrorHandling("play", h.playHandler(userID, deck))(ctx, chatID)

	case "decks":
		_ = h.withErrorHandling("decks", h.decksHandler(""))(ctx, chatID)

	case "lives":
		_ = h.withErrorHandling("lives", h.livesHandler(userID))(ctx, chatID)

	case "help":
		h.send(newHTMLMessage(chatID, msgHelp))

	default:
		h.send(newHTMLMessage(chatID, msgUnknownCommand))
	}
}

// presenter returns the presenter of the player's latest game.
func (h *Handler) presenter(player string) (*Presenter, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	p, ok := h.presenters[player]
	return p, ok
}

func (h *Handler) setPresenter(player string, p *Presenter) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.presenters[player] = p
}

// dropPresenter forgets p unless a newer game replaced it already.
func (h *Handler) dropPresenter(player string, p *Presenter) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.presenters[player] == p {
		delete(h.presenters, player)
	}
}

func (h *Handler) sendError(chatID int64, err string) {
	h.send(newHTMLMessage(chatID, err))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

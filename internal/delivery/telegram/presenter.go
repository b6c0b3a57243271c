package telegram

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-engine/internal/domain/entities"
)

// outboxSize bounds the Telegram calls waiting to be made for one chat.
const outboxSize = 64

// Presenter renders one quiz session into a Telegram chat. Every question is a
// message with an inline keyboard; marks and lives are edited into that message.
//
// The engine calls the presenter under its lock, so API calls are queued and
// made in order by a sender goroutine.
type Presenter struct {
	bot       Bot
	chatID    int64
	deck      entities.Deck
	assetsDir string
	logger    *zap.Logger

	mu          sync.Mutex
	seq         int // number of the question on screen, starts at 1
	promptImage string
	promptText  string
	reveal      string
	options     []string
	marks       map[string]entities.OptionMark
	lives       [entities.MaxLives]entities.LifeState
	ended       bool // a popup replaced the question
	closed      bool
	outbox      chan func()
	stopped     chan struct{}

	// Owned by the sender goroutine.
	messageID int  // 0 when no question message is on screen
	isPhoto   bool // the question message carries a photo
}

// NewPresenter creates a presenter of deck for chatID and starts its sender.
// Close stops the sender once the queued calls are made.
func NewPresenter(bot Bot, chatID int64, deck entities.Deck, assetsDir string, logger *zap.Logger) *Presenter {
	p := &Presenter{
		bot:       bot,
		chatID:    chatID,
		deck:      deck,
		assetsDir: assetsDir,
		logger:    logger,
		marks:     make(map[string]entities.OptionMark),
		outbox:    make(chan func(), outboxSize),
		stopped:   make(chan struct{}),
	}
	go p.run()
	return p
}

// Close stops accepting updates. Queued calls are still made.
func (p *Presenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	close(p.outbox)
}

// Option returns the option behind a keyboard button. It fails for buttons of
// questions that are no longer on screen.
func (p *Presenter) Option(seq, index int) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if seq != p.seq || p.ended || index < 0 || index >= len(p.options) {
		return "", false
	}
	return p.options[index], true
}

func (p *Presenter) SetPromptImage(src string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.promptImage = src
}

func (p *Presenter) SetPromptText(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.promptText = text
}

// ShowRevealImage remembers the reveal image; it is sent on Crossfade.
func (p *Presenter) ShowRevealImage(src string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reveal = src
}

func (p *Presenter) HideRevealImage() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reveal = ""
}

// Crossfade replaces the photo of the question message with the reveal image,
// or sends the reveal image when the question has no photo.
func (p *Presenter) Crossfade() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.reveal == "" || p.ended {
		return
	}

	file := fileData(p.assetsDir, p.reveal)

	media := tgbotapi.NewInputMediaPhoto(file)
	media.Caption = p.captionLocked()
	media.ParseMode = tgbotapi.ModeHTML
	kb := p.keyboardLocked()

	p.enqueueLocked(func() {
		if p.messageID == 0 {
			return
		}
		if !p.isPhoto {
			p.send(tgbotapi.NewPhoto(p.chatID, file))
			return
		}
		p.request(tgbotapi.EditMessageMediaConfig{
			BaseEdit: tgbotapi.BaseEdit{
				ChatID:      p.chatID,
				MessageID:   p.messageID,
				ReplyMarkup: &kb,
			},
			Media: media,
		})
	})
}

// SetOptionList sends the question message. It is the last call of a question load.
func (p *Presenter) SetOptionList(options []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.seq++
	p.options = options
	p.marks = make(map[string]entities.OptionMark)
	p.ended = false

	caption := p.captionLocked()
	kb := p.keyboardLocked()
	isPhoto := p.promptImage != ""

	var c tgbotapi.Chattable
	if isPhoto {
		photo := tgbotapi.NewPhoto(p.chatID, fileData(p.assetsDir, p.promptImage))
		photo.Caption = caption
		photo.ParseMode = tgbotapi.ModeHTML
		photo.ReplyMarkup = kb
		c = photo
	} else {
		msg := newHTMLMessage(p.chatID, caption)
		msg.ReplyMarkup = kb
		c = msg
	}

	p.enqueueLocked(func() {
		sent, ok := p.send(c)
		if !ok {
			p.messageID = 0
			return
		}
		p.messageID = sent.MessageID
		p.isPhoto = isPhoto
	})
}

func (p *Presenter) MarkOption(option string, mark entities.OptionMark) {
	p.mu.Lock()
	defer p.mu.Unlock()

	current, ok := p.marks[option]
	if !ok {
		current = entities.MarkNone
	}
	if current == mark {
		return
	}
	if mark == entities.MarkNone {
		delete(p.marks, option)
	} else {
		p.marks[option] = mark
	}

	kb := p.keyboardLocked()
	p.enqueueLocked(func() {
		if p.messageID == 0 {
			return
		}
		p.request(tgbotapi.NewEditMessageReplyMarkup(p.chatID, p.messageID, kb))
	})
}

func (p *Presenter) SetLifeIcon(index int, state entities.LifeState) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index < 0 || index >= len(p.lives) || p.lives[index] == state {
		return
	}
	p.lives[index] = state

	caption := p.captionLocked()
	kb := p.keyboardLocked()
	p.enqueueLocked(func() {
		if p.messageID == 0 {
			return
		}

		if p.isPhoto {
			edit := tgbotapi.NewEditMessageCaption(p.chatID, p.messageID, caption)
			edit.ParseMode = tgbotapi.ModeHTML
			edit.ReplyMarkup = &kb
			p.request(edit)
			return
		}

		edit := tgbotapi.NewEditMessageTextAndMarkup(p.chatID, p.messageID, caption, kb)
		edit.ParseMode = tgbotapi.ModeHTML
		p.request(edit)
	})
}

// ShowPopup ends the game on screen. Buttons of the last question stop working.
func (p *Presenter) ShowPopup(kind entities.PopupKind) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ended = true

	msg := newHTMLMessage(p.chatID, formatPopup(kind, p.deck.DisplayTitle()))
	msg.ReplyMarkup = buildPopupKeyboard(p.deck.Name)
	p.enqueueLocked(func() {
		p.send(msg)
		p.messageID = 0
	})
}

func (p *Presenter) captionLocked() string {
	return formatQuestion(p.seq, len(p.deck.Items), p.lives, p.promptText)
}

func (p *Presenter) keyboardLocked() tgbotapi.InlineKeyboardMarkup {
	return buildOptionsKeyboard(p.seq, p.options, p.marks)
}

// enqueueLocked never blocks: the caller may hold the engine lock.
func (p *Presenter) enqueueLocked(call func()) {
	if p.closed {
		return
	}

	select {
	case p.outbox <- call:
	default:
		p.logger.Warn("telegram outbox full, update dropped",
			zap.Int64("chat_id", p.chatID),
			zap.Int("seq", p.seq),
		)
	}
}

func (p *Presenter) run() {
	defer close(p.stopped)

	for call := range p.outbox {
		call()
	}
}

func (p *Presenter) send(c tgbotapi.Chattable) (tgbotapi.Message, bool) {
	msg, err := p.bot.Send(c)
	if err != nil {
		p.logger.Error("failed to send telegram message",
			zap.Int64("chat_id", p.chatID),
			zap.Error(err),
		)
		return msg, false
	}
	return msg, true
}

func (p *Presenter) request(c tgbotapi.Chattable) {
	if _, err := p.bot.Request(c); err != nil {
		p.logger.Warn("failed to edit telegram message",
			zap.Int64("chat_id", p.chatID),
			zap.Int("message_id", p.messageID),
			zap.Error(err),
		)
	}
}

package telegram

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-engine/internal/domain/entities"
)

type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	nextID   int
	failSend bool
	gate     chan struct{} // when set, Send waits for it
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if b.gate != nil {
		<-b.gate
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failSend {
		return tgbotapi.Message{}, errors.New("network down")
	}
	b.sent = append(b.sent, c)
	b.nextID++
	return tgbotapi.Message{MessageID: b.nextID}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) messages() []tgbotapi.Chattable {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.sent)
}

func (b *fakeBot) edits() []tgbotapi.Chattable {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.requests)
}

// flush waits until the calls queued so far are made.
func (p *Presenter) flush() {
	done := make(chan struct{})

	p.mu.Lock()
	p.enqueueLocked(func() { close(done) })
	p.mu.Unlock()

	select {
	case <-done:
	case <-p.stopped:
	}
}

func newTestPresenter(t *testing.T, bot Bot) *Presenter {
	t.Helper()

	p := NewPresenter(bot, 42, testDeck(), "assets", zap.NewNop())
	t.Cleanup(p.Close)
	return p
}

func testDeck() entities.Deck {
	return entities.Deck{
		Name:  "logos",
		Title: "Logos",
		Items: []entities.Item{
			{PromptImage: "img/a.png", PromptText: "Which brand?", RevealImage: "img/a-full.png", Options: []string{"A", "B"}, Correct: "A"},
			{PromptText: "Capital of France?", Options: []string{"Paris", "Rome"}, Correct: "Paris"},
		},
	}
}

func TestPresenterSendsQuestionOnOptionList(t *testing.T) {
	bot := &fakeBot{}
	p := newTestPresenter(t, bot)

	p.SetLifeIcon(0, entities.LifeFull)
	p.SetLifeIcon(1, entities.LifeFull)
	p.SetPromptImage("img/a.png")
	p.HideRevealImage()
	p.SetPromptText("Which brand?")
	p.SetOptionList([]string{"B", "A"})
	p.flush()

	sent := bot.messages()
	if len(sent) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(sent))
	}
	if edits := bot.edits(); len(edits) != 0 {
		t.Errorf("Expected no edits before the question is on screen, got %d", len(edits))
	}

	photo, ok := sent[0].(tgbotapi.PhotoConfig)
	if !ok {
		t.Fatalf("Expected a photo, got %T", sent[0])
	}
	if !strings.Contains(photo.Caption, "Question 1/2") || !strings.Contains(photo.Caption, "Which brand?") {
		t.Errorf("Unexpected caption %q", photo.Caption)
	}
	if !strings.Contains(photo.Caption, "❤️❤️") {
		t.Errorf("Expected two full hearts in %q", photo.Caption)
	}

	kb, ok := photo.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok || len(kb.InlineKeyboard) != 2 {
		t.Fatalf("Expected a keyboard with 2 rows, got %#v", photo.ReplyMarkup)
	}
	if kb.InlineKeyboard[0][0].Text != "B" {
		t.Errorf("Expected options in the given order, got %q first", kb.InlineKeyboard[0][0].Text)
	}

	option, ok := p.Option(1, 1)
	if !ok || option != "A" {
		t.Errorf("Expected option A, got %q (ok=%v)", option, ok)
	}
}

func TestPresenterTextQuestion(t *testing.T) {
	bot := &fakeBot{}
	p := newTestPresenter(t, bot)

	p.SetPromptImage("")
	p.SetPromptText("Capital of <France>?")
	p.SetOptionList([]string{"Paris", "Rome"})
	p.flush()

	sent := bot.messages()
	if len(sent) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(sent))
	}
	msg, ok := sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("Expected a text message, got %T", sent[0])
	}
	if !strings.Contains(msg.Text, "Capital of &lt;France&gt;?") {
		t.Errorf("Expected escaped prompt, got %q", msg.Text)
	}
	if msg.ParseMode != tgbotapi.ModeHTML {
		t.Errorf("Expected HTML parse mode, got %q", msg.ParseMode)
	}
}

func TestPresenterOptionRejectsStaleButtons(t *testing.T) {
	bot := &fakeBot{}
	p := newTestPresenter(t, bot)

	p.SetOptionList([]string{"A", "B"})
	p.SetOptionList([]string{"Paris", "Rome"})

	if _, ok := p.Option(1, 0); ok {
		t.Error("Expected button of the previous question to be rejected")
	}
	if _, ok := p.Option(2, 5); ok {
		t.Error("Expected out of range index to be rejected")
	}
	if option, ok := p.Option(2, 0); !ok || option != "Paris" {
		t.Errorf("Expected Paris, got %q (ok=%v)", option, ok)
	}

	p.ShowPopup(entities.PopupCompleted)
	if _, ok := p.Option(2, 0); ok {
		t.Error("Expected buttons to stop working after the popup")
	}
}

func TestPresenterMarksAndLivesEditMessage(t *testing.T) {
	bot := &fakeBot{}
	p := newTestPresenter(t, bot)

	p.SetLifeIcon(0, entities.LifeFull)
	p.SetLifeIcon(1, entities.LifeFull)
	p.SetPromptText("Capital of France?")
	p.SetOptionList([]string{"Paris", "Rome"})

	p.MarkOption("Rome", entities.MarkIncorrect)
	p.SetLifeIcon(1, entities.LifeLost)
	p.SetLifeIcon(0, entities.LifeFull) // unchanged, no edit
	p.MarkOption("Rome", entities.MarkNone)
	p.flush()

	edits := bot.edits()
	if len(edits) != 3 {
		t.Fatalf("Expected 3 edits, got %d", len(edits))
	}

	mark, ok := edits[0].(tgbotapi.EditMessageReplyMarkupConfig)
	if !ok {
		t.Fatalf("Expected a markup edit, got %T", edits[0])
	}
	if mark.MessageID != 1 {
		t.Errorf("Expected the question message to be edited, got message %d", mark.MessageID)
	}
	if got := mark.ReplyMarkup.InlineKeyboard[1][0].Text; got != "❌ Rome" {
		t.Errorf("Expected marked option, got %q", got)
	}

	text, ok := edits[1].(tgbotapi.EditMessageTextConfig)
	if !ok {
		t.Fatalf("Expected a text edit, got %T", edits[1])
	}
	if !strings.Contains(text.Text, "❤️🖤") {
		t.Errorf("Expected one heart lost in %q", text.Text)
	}

	unmark := edits[2].(tgbotapi.EditMessageReplyMarkupConfig)
	if got := unmark.ReplyMarkup.InlineKeyboard[1][0].Text; got != "Rome" {
		t.Errorf("Expected mark to be cleared, got %q", got)
	}
}

func TestPresenterCrossfadeReplacesPhoto(t *testing.T) {
	bot := &fakeBot{}
	p := newTestPresenter(t, bot)

	p.SetPromptImage("img/a.png")
	p.SetOptionList([]string{"A", "B"})
	p.ShowRevealImage("https://example.com/a-full.png")
	p.Crossfade()
	p.flush()

	edits := bot.edits()
	if len(edits) != 1 {
		t.Fatalf("Expected 1 edit, got %d", len(edits))
	}
	edit, ok := edits[0].(tgbotapi.EditMessageMediaConfig)
	if !ok {
		t.Fatalf("Expected a media edit, got %T", edits[0])
	}
	media := edit.Media.(tgbotapi.InputMediaPhoto)
	if media.Media != tgbotapi.FileURL("https://example.com/a-full.png") {
		t.Errorf("Unexpected media %#v", media.Media)
	}

	p.HideRevealImage()
	p.Crossfade()
	p.flush()
	if n := len(bot.edits()); n != 1 {
		t.Errorf("Expected no edit without a reveal image, got %d", n)
	}
}

func TestPresenterPopup(t *testing.T) {
	bot := &fakeBot{}
	p := newTestPresenter(t, bot)

	p.ShowPopup(entities.PopupGameOver)
	p.flush()

	sent := bot.messages()
	if len(sent) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(sent))
	}
	msg := sent[0].(tgbotapi.MessageConfig)
	if !strings.Contains(msg.Text, "Game over") || !strings.Contains(msg.Text, "Logos") {
		t.Errorf("Unexpected popup %q", msg.Text)
	}
	kb := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if data := *kb.InlineKeyboard[0][0].CallbackData; data != "play:logos" {
		t.Errorf("Expected play again button, got %q", data)
	}
}

func TestPresenterSendFailure(t *testing.T) {
	bot := &fakeBot{failSend: true}
	p := newTestPresenter(t, bot)

	p.SetOptionList([]string{"A", "B"})
	p.MarkOption("A", entities.MarkCorrect)
	p.SetLifeIcon(0, entities.LifeLost)
	p.flush()

	if edits := bot.edits(); len(edits) != 0 {
		t.Errorf("Expected no edits of an undelivered message, got %d", len(edits))
	}
}

func TestPresenterDoesNotWaitForTelegram(t *testing.T) {
	bot := &fakeBot{gate: make(chan struct{})}
	p := newTestPresenter(t, bot)

	returned := make(chan struct{})
	go func() {
		p.SetPromptText("Capital of France?")
		p.SetOptionList([]string{"Paris", "Rome"})
		p.MarkOption("Rome", entities.MarkIncorrect)
		p.ShowPopup(entities.PopupGameOver)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(5 * time.Second):
		t.Fatal("Presenter calls waited for a Telegram call")
	}

	close(bot.gate)
	p.flush()

	sent := bot.messages()
	if len(sent) != 2 {
		t.Fatalf("Expected question and popup, got %d messages", len(sent))
	}
	if _, ok := sent[0].(tgbotapi.MessageConfig); !ok {
		t.Errorf("Expected the question first, got %T", sent[0])
	}
	if msg := sent[1].(tgbotapi.MessageConfig); !strings.Contains(msg.Text, "Game over") {
		t.Errorf("Expected the popup last, got %q", msg.Text)
	}

	edits := bot.edits()
	if len(edits) != 1 {
		t.Fatalf("Expected 1 edit, got %d", len(edits))
	}
	if mark := edits[0].(tgbotapi.EditMessageReplyMarkupConfig); mark.MessageID != 1 {
		t.Errorf("Expected the edit to target the delivered question, got message %d", mark.MessageID)
	}
}

func TestPresenterCloseDrainsQueue(t *testing.T) {
	bot := &fakeBot{}
	p := NewPresenter(bot, 42, testDeck(), "assets", zap.NewNop())

	p.SetOptionList([]string{"A", "B"})
	p.ShowPopup(entities.PopupCompleted)
	p.Close()
	p.Close()

	select {
	case <-p.stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Sender did not stop after Close")
	}
	if n := len(bot.messages()); n != 2 {
		t.Errorf("Expected queued messages to be sent, got %d", n)
	}

	p.SetOptionList([]string{"A", "B"})
	p.flush()
	if n := len(bot.messages()); n != 2 {
		t.Errorf("Expected nothing to be sent after Close, got %d messages", n)
	}
}

func TestFileData(t *testing.T) {
	if got := fileData("assets", "https://example.com/x.png"); got != tgbotapi.FileURL("https://example.com/x.png") {
		t.Errorf("Expected URL to be kept, got %#v", got)
	}
	if got := fileData("assets", "img/x.png"); got != tgbotapi.FilePath("assets/img/x.png") {
		t.Errorf("Expected path in assets dir, got %#v", got)
	}
}

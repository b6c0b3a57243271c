// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quiz-engine/internal/domain/entities"
)

// Error messages.
const (
	msgInternalError  = "Something went wrong. Please try again later."
	msgDeckNotFound   = "There is no such deck. Pick one from the list:"
	msgNoDecks        = "There are no decks to play yet."
	msgNoSession      = "This game is over. Start a new one with /play."
	msgStaleQuestion  = "This question has already been answered."
	msgUnknownCommand = "Unknown command. Available commands:\n\n/play — pick a deck and play\n/decks — list decks\n/lives — show remaining lives\n/help — how to play"
	msgUseButtons     = "Use the buttons under the question to answer."
)

// Informational messages.
const (
	msgWelcome = "<b>Welcome to the quiz!</b>\n\nEach question has several options and only one is correct. " +
		"A wrong answer costs a life and you have only two of them.\n\nPick a deck to start:"
	msgHelp = "<b>How to play</b>\n\nTap the option you think is correct. " +
		"A correct answer moves you to the next question, a wrong one costs a life.\n\n" +
		"/play — pick a deck and play\n/play &lt;deck&gt; — play a deck right away\n/decks — list decks\n/lives — show remaining lives"
	msgPickDeck   = "Pick a deck:"
	msgCompleted  = "🎉 <b>Well done!</b>\n\nYou answered every question of <b>%s</b>."
	msgGameOver   = "💀 <b>Game over</b>\n\nYou ran out of lives in <b>%s</b>."
	msgLives      = "Lives: %s"
	msgLivesReset = "Lives restored. Your next game starts with %s"
	msgCorrect    = "✅ Correct!"
	msgIncorrect  = "❌ Wrong!"
)

// hearts renders the life counter.
func hearts(lives int) string {
	var b strings.Builder
	for i := 0; i < entities.MaxLives; i++ {
		if i < lives {
			b.WriteString("❤️")
		} else {
			b.WriteString("🖤")
		}
	}
	return b.String()
}

// formatQuestion renders the caption of a question message.
func formatQuestion(number, total int, lives [entities.MaxLives]entities.LifeState, prompt string) string {
	n := 0
	for _, s := range lives {
		if s == entities.LifeFull {
			n++
		}
	}

	text := fmt.Sprintf("Question %d/%d   %s", number, total, hearts(n))
	if prompt != "" {
		text += "\n\n<b>" + html.EscapeString(prompt) + "</b>"
	}
	return text
}

// formatPopup renders the end of game message.
func formatPopup(kind entities.PopupKind, title string) string {
	if kind == entities.PopupGameOver {
		return fmt.Sprintf(msgGameOver, html.EscapeString(title))
	}
	return fmt.Sprintf(msgCompleted, html.EscapeString(title))
}

// formatDecks renders the deck list.
func formatDecks(decks []entities.Deck) string {
	var b strings.Builder
	b.WriteString(msgPickDeck)
	b.WriteString("\n")
	for _, d := range decks {
		fmt.Fprintf(&b, "\n• <b>%s</b> — %d questions, /play %s", html.EscapeString(d.DisplayTitle()), len(d.Items), d.Name)
	}
	return b.String()
}

// verdictText returns the callback answer shown for a verdict.
func verdictText(v entities.Verdict) string {
	switch v {
	case entities.VerdictCorrect:
		return msgCorrect
	case entities.VerdictIncorrect:
		return msgIncorrect
	default:
		return ""
	}
}

// newHTMLMessage creates a message with HTML parse mode.
func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

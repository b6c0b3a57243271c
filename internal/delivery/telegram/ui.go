package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quiz-engine/internal/domain/entities"
)

// buildOptionsKeyboard builds one button per option, marked with its current state.
func buildOptionsKeyboard(seq int, options []string, marks map[string]entities.OptionMark) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options))
	for i, opt := range options {
		label := opt
		switch marks[opt] {
		case entities.MarkCorrect:
			label = "✅ " + opt
		case entities.MarkIncorrect:
			label = "❌ " + opt
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildAnswerCallback(seq, i)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildDecksKeyboard builds the deck menu.
func buildDecksKeyboard(decks []entities.Deck) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(decks))
	for _, d := range decks {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 "+d.DisplayTitle(), buildPlayCallback(d.Name)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildPopupKeyboard builds the keyboard shown when a game ends.
func buildPopupKeyboard(deck string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Play again", buildPlayCallback(deck)),
			tgbotapi.NewInlineKeyboardButtonData("📚 Decks", buildMenuCallback()),
		),
	)
}

// buildLivesKeyboard builds the keyboard of the lives screen.
func buildLivesKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❤️ Restore lives", buildLivesResetCallback()),
		),
	)
}

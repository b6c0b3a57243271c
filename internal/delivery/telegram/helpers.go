package telegram

import (
	"path/filepath"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// playerID returns the game service player ID of a Telegram user.
func playerID(userID int64) string {
	return "tg:" + strconv.FormatInt(userID, 10)
}

// fileData returns a remote URL as is and resolves anything else against the assets directory.
func fileData(assetsDir, src string) tgbotapi.RequestFileData {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return tgbotapi.FileURL(src)
	}
	return tgbotapi.FilePath(filepath.Join(assetsDir, filepath.FromSlash(src)))
}

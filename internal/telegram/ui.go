package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"breedlens/internal/breed"
)

func helpText() string {
	return "Send me a photo of a cow and I will identify its breed.\n" +
		"Commands:\n" +
		"/engine - show or switch the recognition engine\n" +
		"/health - check that the bot is alive\n" +
		"/help - this message"
}

// breedCard renders a successful identification for Telegram Markdown.
func breedCard(res breed.Result) string {
	var b strings.Builder
	b.WriteString("🐄 *")
	b.WriteString(esc(res.Breed))
	b.WriteString("*\n\n")
	if s := strings.TrimSpace(res.Description); s != "" {
		b.WriteString(esc(s))
		b.WriteString("\n\n")
	}
	b.WriteString(fmt.Sprintf("Confidence: %.0f%%", res.Confidence*100))
	return b.String()
}

// Engine picker buttons, one row per engine.
func makeEngineKeyboard(names []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(names))
	for _, n := range names {
		btn := tgbotapi.NewInlineKeyboardButtonData(n, "engine:"+n)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// light Markdown escaping
func esc(s string) string {
	s = strings.ReplaceAll(s, "`", "'")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "[", "\\[")
	return s
}

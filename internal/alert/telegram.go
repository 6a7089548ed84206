package alert

import (
	"encoding/json"
	"strings"
)

// telegramEscapeChars is the exact MarkdownV2 metacharacter set Telegram's
// Bot API requires escaping.
const telegramEscapeChars = "_*[]()~`>#+-=|{}.!"

type telegramPayload struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// TelegramFormatter builds a Telegram Bot API sendMessage payload with
// MarkdownV2 escaping applied to the rendered text.
type TelegramFormatter struct {
	ChatID string
}

func (f TelegramFormatter) Format(p Payload) ([]byte, string, error) {
	var b strings.Builder
	b.WriteString(escapeMarkdownV2(p.Severity.Tag() + " " + p.Title))
	b.WriteString("\n")
	b.WriteString(escapeMarkdownV2(p.Message))
	for _, field := range p.Fields {
		b.WriteString("\n")
		b.WriteString(escapeMarkdownV2(field.Name + ": " + field.Value))
	}
	body, err := json.Marshal(telegramPayload{
		ChatID:    f.ChatID,
		Text:      b.String(),
		ParseMode: "MarkdownV2",
	})
	return body, "application/json", err
}

// escapeMarkdownV2 backslash-escapes every MarkdownV2 metacharacter in s.
func escapeMarkdownV2(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(telegramEscapeChars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

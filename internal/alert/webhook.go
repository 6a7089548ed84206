package alert

import "strings"

// Service identifies which webhook wire format to use, detected from the
// target URL.
type Service int

const (
	ServiceGeneric Service = iota
	ServiceDiscord
	ServiceTelegram
)

// DetectService inspects url and returns the matching Service, falling
// back to ServiceGeneric for anything that doesn't match a known host.
func DetectService(url string) Service {
	switch {
	case strings.Contains(url, "discord.com/api/webhooks"), strings.Contains(url, "discordapp.com/api/webhooks"):
		return ServiceDiscord
	case strings.Contains(url, "api.telegram.org/bot"):
		return ServiceTelegram
	default:
		return ServiceGeneric
	}
}

// Formatter converts a Payload into the bytes to POST, plus the
// Content-Type header to send with them.
type Formatter interface {
	Format(p Payload) (body []byte, contentType string, err error)
}

// FormatterFor returns the Formatter appropriate for svc. telegramChatID
// is only used by the Telegram formatter.
func FormatterFor(svc Service, telegramChatID string) Formatter {
	switch svc {
	case ServiceTelegram:
		return TelegramFormatter{ChatID: telegramChatID}
	default:
		// Generic targets reuse the Discord embed shape, per spec.
		return DiscordFormatter{}
	}
}

package alert_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/hydepwns/phos-go/internal/alert"
)

func TestDetectService(t *testing.T) {
	cases := map[string]alert.Service{
		"https://discord.com/api/webhooks/123/abc":    alert.ServiceDiscord,
		"https://discordapp.com/api/webhooks/123/abc": alert.ServiceDiscord,
		"https://api.telegram.org/bot123:abc/sendMessage": alert.ServiceTelegram,
		"https://example.com/hooks/generic":           alert.ServiceGeneric,
	}
	for url, want := range cases {
		assert.Equal(t, alert.DetectService(url), want, url)
	}
}

func TestFormatterForTelegramAndFallback(t *testing.T) {
	_, ok := alert.FormatterFor(alert.ServiceTelegram, "123").(alert.TelegramFormatter)
	assert.Assert(t, ok)

	_, ok = alert.FormatterFor(alert.ServiceGeneric, "").(alert.DiscordFormatter)
	assert.Assert(t, ok, "generic targets should reuse the Discord embed shape")
}

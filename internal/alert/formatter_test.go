package alert_test

import (
	"encoding/json"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/hydepwns/phos-go/internal/alert"
)

func TestDiscordFormatterShape(t *testing.T) {
	p := alert.NewPayload("Disk full", "ERROR: no space left", alert.Critical).
		WithProgram("devops.docker").
		WithField("mount", "/var")

	body, contentType, err := alert.DiscordFormatter{}.Format(p)
	assert.NilError(t, err)
	assert.Equal(t, contentType, "application/json")

	var decoded struct {
		Embeds []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Footer      struct {
				Text string `json:"text"`
			} `json:"footer"`
			Fields []struct {
				Name  string `json:"name"`
				Value string `json:"value"`
			} `json:"fields"`
		} `json:"embeds"`
	}
	assert.NilError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, len(decoded.Embeds), 1)
	assert.Assert(t, strings.Contains(decoded.Embeds[0].Title, "Disk full"))
	assert.Assert(t, strings.Contains(decoded.Embeds[0].Description, "no space left"))
	assert.Equal(t, decoded.Embeds[0].Footer.Text, "Source: devops.docker")
	assert.Equal(t, len(decoded.Embeds[0].Fields), 1)
}

func TestTelegramFormatterEscapesMarkdown(t *testing.T) {
	p := alert.NewPayload("Title.", "line with *star* and [bracket]", alert.Warning)
	body, contentType, err := alert.TelegramFormatter{ChatID: "123"}.Format(p)
	assert.NilError(t, err)
	assert.Equal(t, contentType, "application/json")

	var decoded struct {
		ChatID    string `json:"chat_id"`
		Text      string `json:"text"`
		ParseMode string `json:"parse_mode"`
	}
	assert.NilError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, decoded.ChatID, "123")
	assert.Equal(t, decoded.ParseMode, "MarkdownV2")
	assert.Assert(t, strings.Contains(decoded.Text, `\*star\*`))
	assert.Assert(t, strings.Contains(decoded.Text, `\[bracket\]`))
}

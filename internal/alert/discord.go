package alert

import (
	"encoding/json"
	"fmt"
)

const (
	discordTitleMax       = 250
	discordDescriptionMax = 4000
	discordMaxFields      = 25
)

type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Color       int            `json:"color"`
	Fields      []discordField `json:"fields,omitempty"`
	Footer      *discordFooter `json:"footer,omitempty"`
}

type discordField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type discordFooter struct {
	Text string `json:"text"`
}

type discordPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

// DiscordFormatter builds a Discord webhook embed payload. It is also
// used, per spec, as the fallback formatter for any webhook target that
// isn't recognized as Discord or Telegram.
type DiscordFormatter struct{}

func (DiscordFormatter) Format(p Payload) ([]byte, string, error) {
	embed := discordEmbed{
		Title:       truncate(fmt.Sprintf("%s %s", p.Severity.Tag(), p.Title), discordTitleMax),
		Description: truncate("```\n"+p.Message+"\n```", discordDescriptionMax),
		Color:       p.Severity.DiscordColor(),
	}
	for i, f := range p.Fields {
		if i >= discordMaxFields {
			break
		}
		embed.Fields = append(embed.Fields, discordField{Name: f.Name, Value: f.Value})
	}
	if p.Program != "" {
		embed.Footer = &discordFooter{Text: "Source: " + p.Program}
	}
	body, err := json.Marshal(discordPayload{Embeds: []discordEmbed{embed}})
	return body, "application/json", err
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

package message

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"build-notifier/internal/domain/model"
	"build-notifier/internal/domain/ports"
)

// Discord renders builds as Discord webhook embeds.
type Discord struct {
	opts Options
}

var _ ports.MessageBuilder = (*Discord)(nil)

// NewDiscord creates a Discord message builder.
func NewDiscord(opts Options) *Discord {
	return &Discord{opts: opts}
}

type discordPayload struct {
	Username string         `json:"username"`
	Content  string         `json:"content"`
	Embeds   []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
	Color       int    `json:"color"`
}

// Build serializes the message for a build to a Discord webhook body.
func (d *Discord) Build(build model.Build) (string, error) {
	payload := discordPayload{
		Username: d.opts.username(),
		Content:  "",
		Embeds: []discordEmbed{
			{
				Title:       truncate(Title(build), 256),
				Description: truncate(Text(d.opts, build), 4096),
				URL:         embedURL(absoluteURL(d.opts, build)),
				Color:       hexColor(Color(build.Result)),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal discord payload: %w", err)
	}
	return string(body), nil
}

// embedURL drops relative links, which Discord rejects in the embed url field.
func embedURL(link string) string {
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	return ""
}

func hexColor(hex string) int {
	n, err := strconv.ParseInt(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		return 0
	}
	return int(n)
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	cut := limit - 3
	for cut > 0 && !utf8.RuneStart(value[cut]) {
		cut--
	}
	return strings.TrimSpace(value[:cut]) + "..."
}

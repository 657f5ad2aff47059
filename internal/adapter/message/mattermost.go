package message

import (
	"encoding/json"
	"fmt"

	"build-notifier/internal/domain/model"
	"build-notifier/internal/domain/ports"
)

// Mattermost renders builds as Mattermost (Slack compatible) attachment messages.
type Mattermost struct {
	opts Options
}

var _ ports.MessageBuilder = (*Mattermost)(nil)

// NewMattermost creates a Mattermost message builder.
func NewMattermost(opts Options) *Mattermost {
	return &Mattermost{opts: opts}
}

// Payload assembles the structured message for a build.
func (m *Mattermost) Payload(build model.Build) model.Payload {
	return model.Payload{
		Username: m.opts.username(),
		Attachments: []model.Attachment{
			{
				Text:  Text(m.opts, build),
				Color: Color(build.Result),
				Title: Title(build),
			},
		},
	}
}

// Build serializes the message for a build to JSON.
func (m *Mattermost) Build(build model.Build) (string, error) {
	body, err := json.Marshal(m.Payload(build))
	if err != nil {
		return "", fmt.Errorf("marshal mattermost payload: %w", err)
	}
	return string(body), nil
}

package message

import (
	"fmt"
	"sort"
	"strings"

	"build-notifier/internal/domain/notifyerr"
	"build-notifier/internal/domain/ports"
)

// Factory creates a message builder from options.
type Factory func(opts Options) ports.MessageBuilder

var factories = map[string]Factory{
	"mattermost": func(opts Options) ports.MessageBuilder { return NewMattermost(opts) },
	"discord":    func(opts Options) ports.MessageBuilder { return NewDiscord(opts) },
}

// DefaultFormat is the builder used when no format is configured.
const DefaultFormat = "mattermost"

// New returns the message builder registered under name.
func New(name string, opts Options) (ports.MessageBuilder, error) {
	if name == "" {
		name = DefaultFormat
	}
	factory, ok := factories[strings.ToLower(name)]
	if !ok {
		return nil, notifyerr.ConfigError(
			fmt.Sprintf("unknown message format %q (available: %s)", name, strings.Join(Formats(), ", ")), nil)
	}
	return factory(opts), nil
}

// Formats returns the registered format names in sorted order.
func Formats() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

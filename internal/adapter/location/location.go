// Package location resolves the public root URL of the CI server.
package location

import (
	"os"
	"strings"

	"build-notifier/internal/domain/ports"
)

// Static is a fixed base URL. The zero value resolves to "".
type Static string

var _ ports.BaseURLProvider = Static("")

// BaseURL returns the configured URL, or "" when unset.
func (s Static) BaseURL() string {
	return strings.TrimSpace(string(s))
}

// Env reads the base URL from the first non-empty environment variable.
type Env []string

var _ ports.BaseURLProvider = Env(nil)

// BaseURL returns the first non-empty value among the variables, or "".
func (e Env) BaseURL() string {
	for _, key := range e {
		if val := strings.TrimSpace(os.Getenv(key)); val != "" {
			return val
		}
	}
	return ""
}

// Chain tries providers in order and returns the first non-empty base URL.
type Chain []ports.BaseURLProvider

var _ ports.BaseURLProvider = Chain(nil)

// BaseURL returns the first non-empty URL from the chain, or "".
func (c Chain) BaseURL() string {
	for _, p := range c {
		if p == nil {
			continue
		}
		if url := p.BaseURL(); url != "" {
			return url
		}
	}
	return ""
}

// Trimmed strips a trailing slash from the wrapped provider, so the base
// joins cleanly with root-relative build URLs like "/job/app/5/".
type Trimmed struct {
	Provider ports.BaseURLProvider
}

var _ ports.BaseURLProvider = Trimmed{}

// BaseURL returns the wrapped URL without a trailing slash, or "".
func (t Trimmed) BaseURL() string {
	if t.Provider == nil {
		return ""
	}
	return strings.TrimSuffix(t.Provider.BaseURL(), "/")
}

// Package webhook delivers chat payloads over plain HTTP webhooks.
package webhook

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"build-notifier/internal/adapter/logging"
	"build-notifier/internal/domain/notifyerr"
	"build-notifier/internal/domain/ports"
)

const (
	defaultTimeout = 30 * time.Second

	// maxLoggedBody caps how much of the response body ends up in the logs.
	maxLoggedBody = 512

	deliveryIDHeader = "X-Notification-Id"
)

// Sender posts JSON payloads to a webhook URL.
type Sender struct {
	httpClient *http.Client
	logger     ports.Logger
}

var _ ports.Sender = (*Sender)(nil)

// NewSender creates a webhook sender. A non-positive timeout falls back to 30s.
func NewSender(timeout time.Duration, logger ports.Logger) *Sender {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return NewSenderWithClient(&http.Client{Timeout: timeout}, logger)
}

// NewSenderWithClient creates a webhook sender using the given HTTP client.
func NewSenderWithClient(client *http.Client, logger ports.Logger) *Sender {
	if logger == nil {
		logger = logging.Discard{}
	}
	return &Sender{httpClient: client, logger: logger}
}

// Send posts the payload to endpoint. It returns true on 200, false on 400
// and 429, and a *notifyerr.Error for every other outcome.
func (s *Sender) Send(ctx context.Context, endpoint, payload string) (bool, error) {
	if strings.TrimSpace(endpoint) == "" {
		return false, notifyerr.ConfigError("webhook URL is empty", nil)
	}

	target, err := parseEndpoint(endpoint)
	if err != nil {
		s.logger.Error(ctx, "error while constructing webhook URL", "error", err)
		return false, notifyerr.InvalidEndpoint("error while constructing webhook URL", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), strings.NewReader(payload))
	if err != nil {
		return false, notifyerr.InvalidEndpoint("could not create webhook request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if id := logging.DeliveryID(ctx); id != "" {
		req.Header.Set(deliveryIDHeader, id)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false, notifyerr.TransportFailure("could not POST to webhook API", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return false, notifyerr.TransportFailure("could not read response body from webhook API", err)
		}
		s.logger.Info(ctx, "webhook accepted notification", "host", target.Host, "response", clip(string(body)))
		return true, nil
	case http.StatusTooManyRequests:
		s.logger.Warn(ctx, "too many requests", "host", target.Host)
		return false, nil
	case http.StatusBadRequest:
		s.logger.Warn(ctx, "bad request on message", "host", target.Host, "payload", payload)
		return false, nil
	default:
		return false, notifyerr.UnexpectedStatus(resp.StatusCode)
	}
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("missing host")
	}
	return u, nil
}

func clip(s string) string {
	if len(s) <= maxLoggedBody {
		return s
	}
	cut := maxLoggedBody
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

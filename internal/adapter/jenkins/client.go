// Package jenkins reads build descriptors from a Jenkins server's JSON API.
package jenkins

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"build-notifier/internal/domain/model"
	"build-notifier/internal/domain/ports"
)

// Client fetches builds from Jenkins.
type Client struct {
	baseURL    string
	username   string
	apiToken   string
	httpClient *http.Client
	logger     ports.Logger
	now        func() time.Time
}

var _ ports.BuildSource = (*Client)(nil)

// NewClient creates a Jenkins client. Credentials are optional; when a user
// is given, requests use basic auth with the API token.
func NewClient(baseURL, username, apiToken string, timeout time.Duration, logger ports.Logger) (*Client, error) {
	if err := validateBaseURL(baseURL); err != nil {
		return nil, fmt.Errorf("invalid jenkins URL: %w", err)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		username:   username,
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		now:        time.Now,
	}, nil
}

// BaseURL returns the Jenkins root URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// LastCompletedBuild returns the most recent finished build of job.
func (c *Client) LastCompletedBuild(ctx context.Context, job string) (*model.Build, error) {
	return c.fetch(ctx, job, "lastCompletedBuild")
}

// Build returns a specific build of job.
func (c *Client) Build(ctx context.Context, job string, number int) (*model.Build, error) {
	if number <= 0 {
		return nil, fmt.Errorf("build number must be positive, got %d", number)
	}
	return c.fetch(ctx, job, fmt.Sprintf("%d", number))
}

func (c *Client) fetch(ctx context.Context, job, selector string) (*model.Build, error) {
	jobPath, err := jobPath(job)
	if err != nil {
		return nil, fmt.Errorf("invalid job name: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/%s/api/json", c.baseURL, jobPath, selector)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.username != "" {
		req.SetBasicAuth(c.username, c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get build info: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("build %s of job %s not found", selector, job)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jenkins returned status %d", resp.StatusCode)
	}

	var info buildInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode build info: %w", err)
	}

	build := c.toBuild(job, info)
	if c.logger != nil {
		c.logger.Debug(ctx, "fetched jenkins build", "job", job, "number", build.Number, "result", build.Result.String())
	}
	return &build, nil
}

// relativeURL strips the Jenkins root from an absolute build URL.
func (c *Client) relativeURL(absolute string) string {
	if strings.HasPrefix(absolute, c.baseURL) {
		return strings.TrimPrefix(absolute, c.baseURL)
	}
	if u, err := url.Parse(absolute); err == nil && u.IsAbs() {
		return u.Path
	}
	return absolute
}

func validateBaseURL(baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("only http and https are allowed")
	}
	if u.Hostname() == "" {
		return fmt.Errorf("URL has no hostname")
	}
	return nil
}

// jobPath turns "folder/job" into "job/folder/job/job", escaping each segment.
func jobPath(job string) (string, error) {
	job = strings.TrimSpace(job)
	if job == "" {
		return "", fmt.Errorf("job name cannot be empty")
	}
	if strings.HasPrefix(job, "/") || strings.HasPrefix(job, "\\") {
		return "", fmt.Errorf("job name cannot be absolute")
	}
	lower := strings.ToLower(job)
	if strings.Contains(lower, "%2e") || strings.Contains(lower, "%2f") {
		return "", fmt.Errorf("job name cannot contain URL-encoded dots or slashes")
	}

	segments := strings.Split(job, "/")
	parts := make([]string, 0, len(segments)*2)
	for _, seg := range segments {
		if seg == "" || seg == "." || seg == ".." || strings.ContainsAny(seg, "\\\x00") {
			return "", fmt.Errorf("job name segment %q is invalid", seg)
		}
		parts = append(parts, "job", url.PathEscape(seg))
	}
	return strings.Join(parts, "/"), nil
}

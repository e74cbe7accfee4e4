// Package fetch provides the HTTP client for the upstream data service.
// It centralizes endpoint path construction, identifier encoding, and the
// bounded retry loop shared by every upstream read.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/cv-orchestrator/internal/config"
)

// StatusError represents a non-success HTTP status from an upstream call.
// The body is kept for logging but deliberately left out of the message so
// raw upstream error text never leaks into client-facing envelopes.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Error represents a failure to reach or decode an upstream response.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client fetches JSON documents from the data service.
type Client struct {
	baseURL   string
	endpoints config.DataEndpoints
	retries   int
	http      *http.Client
	logger    *zap.SugaredLogger
}

// NewClient builds a data-service client from the loaded settings.
func NewClient(cfg *config.Settings, logger *zap.SugaredLogger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.DataAPIBaseURL, "/"),
		endpoints: cfg.DataEndpoints,
		retries:   cfg.MaxRetries,
		http:      &http.Client{Timeout: cfg.HTTPTimeout},
		logger:    logger,
	}
}

// EncodeID makes an identifier safe for use as a path segment. Only the
// fragment delimiter needs escaping; everything else upstream accepts as-is.
func EncodeID(id string) string {
	return strings.ReplaceAll(id, "#", "%23")
}

// expand substitutes the identifier into the endpoint's path template.
func expand(template, id string) string {
	open := strings.IndexByte(template, '{')
	end := strings.IndexByte(template, '}')
	if open < 0 || end < open {
		return template
	}
	return template[:open] + EncodeID(id) + template[end+1:]
}

// StudentProfile retrieves the full student profile document.
func (c *Client) StudentProfile(ctx context.Context, studentID string) (map[string]any, error) {
	return c.getJSON(ctx, expand(c.endpoints.StudentFullProfile, studentID))
}

// RoleTaxonomy retrieves the role taxonomy document. An empty id means the
// caller did not request a role and no call is made.
func (c *Client) RoleTaxonomy(ctx context.Context, roleID string) (map[string]any, error) {
	if roleID == "" {
		return nil, nil
	}
	return c.getJSON(ctx, expand(c.endpoints.RoleTaxonomy, roleID))
}

// JDTaxonomy retrieves the job-description taxonomy document. An empty id
// means the caller did not request a job description and no call is made.
func (c *Client) JDTaxonomy(ctx context.Context, jdID string) (map[string]any, error) {
	if jdID == "" {
		return nil, nil
	}
	return c.getJSON(ctx, expand(c.endpoints.JDTaxonomy, jdID))
}

// TemplateInfo retrieves metadata for a CV template.
func (c *Client) TemplateInfo(ctx context.Context, templateID string) (map[string]any, error) {
	return c.getJSON(ctx, expand(c.endpoints.TemplateInfo, templateID))
}

// getJSON performs a GET with a bounded retry budget. Each attempt's failure
// is logged with its ordinal; once the budget is exhausted the last error is
// returned unchanged so callers see exactly what the final attempt saw.
func (c *Client) getJSON(ctx context.Context, path string) (map[string]any, error) {
	url := c.baseURL + path
	attempts := c.retries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		doc, err := c.doGet(ctx, url)
		if err == nil {
			return doc, nil
		}
		lastErr = err
		c.logger.Warnw("upstream fetch failed",
			"url", url,
			"attempt", attempt,
			"max_attempts", attempts,
			"error", err,
		)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) doGet(ctx context.Context, url string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{URL: url, Message: "building request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Message: "performing request", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: url, Message: "reading response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &Error{URL: url, Message: "decoding JSON response", Cause: err}
	}
	return doc, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

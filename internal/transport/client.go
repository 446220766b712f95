// Package transport delivers command records to the SeanStash snippet API.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/seanstash/seanstash-cli/internal/config"
	"github.com/seanstash/seanstash-cli/internal/filter"
)

const (
	titleMaxLen  = 50
	categoryTag  = "terminal-commands"
	pingTimeout  = 5 * time.Second
	fragmentFile = "command.sh"
)

// RejectedError reports a per-item non-2xx response. Rejections are soft
// failures: the caller records them and moves on to the next item.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("rejected with status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("rejected with status %d", e.Status)
}

// snippet is the SeanStash v2 API payload for one command.
type snippet struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Categories  []string   `json:"categories"`
	IsPublic    bool       `json:"isPublic"`
	Locked      bool       `json:"locked"`
	Fragments   []fragment `json:"fragments"`
}

type fragment struct {
	FileName string `json:"file_name"`
	Code     string `json:"code"`
	Language string `json:"language"`
	Position int    `json:"position"`
}

// Client sends command records to the snippet API, one call per record.
type Client struct {
	url        string
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Client for the configured API endpoint. A missing
// timeout falls back to the default.
func NewClient(cfg config.APIConfig, logger *zap.Logger) *Client {
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 10
	}
	return &Client{
		url:        strings.TrimRight(cfg.BaseURL, "/") + cfg.Endpoint,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		timeout:    cfg.Timeout(),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// URL returns the full snippet endpoint URL.
func (c *Client) URL() string {
	return c.url
}

// Send delivers one record. A 200 or 201 response is success. Any other
// status returns a *RejectedError; 401 rejections omit response detail so
// repeated auth failures do not flood the output. Connection-level failures
// return ordinary errors and are fatal to the run.
func (c *Client) Send(ctx context.Context, record filter.Record) error {
	body, err := json.Marshal(newSnippet(record))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending snippet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		return nil
	}

	rejection := &RejectedError{Status: resp.StatusCode}
	if resp.StatusCode != http.StatusUnauthorized {
		var detail struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&detail); err == nil {
			rejection.Message = detail.Message
		}
	}
	c.logger.Debug("snippet rejected", zap.Int("status", resp.StatusCode))
	return rejection
}

// Ping probes the API base URL and returns the HTTP status. Used by the
// status command for a connectivity check.
func (c *Client) Ping(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

func newSnippet(record filter.Record) snippet {
	title := record.Text
	if runes := []rune(title); len(runes) > titleMaxLen {
		title = string(runes[:titleMaxLen]) + "..."
	}

	dir := record.WorkingDir
	if dir == "" {
		dir = "unknown directory"
	}

	return snippet{
		Title:       "Terminal: " + title,
		Description: fmt.Sprintf("Command executed on %s in %s", record.CapturedAt.Format("2006-01-02"), dir),
		Categories:  []string{categoryTag},
		Fragments: []fragment{{
			FileName: fragmentFile,
			Code:     record.Text,
			Language: "shell",
			Position: 0,
		}},
	}
}

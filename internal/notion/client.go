package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cour/internal/mapper"
	"cour/internal/services"
)

const (
	// DefaultBaseURL is the Notion REST API root.
	DefaultBaseURL = "https://api.notion.com/v1"
	// DefaultVersion is the Notion-Version header sent with every request.
	DefaultVersion = "2022-06-28"
)

// createdStatus is the status Notion documents for a successful page create.
const createdStatus = http.StatusOK

// Outcome reports the result of one create-page request.
type Outcome struct {
	Title        string `json:"title"`
	Succeeded    bool   `json:"succeeded"`
	StatusCode   int    `json:"status_code"`
	ResponseBody string `json:"response_body"`
}

// Writer defines the destination operations used by the transfer pipeline.
type Writer interface {
	CreatePage(ctx context.Context, databaseID string, record mapper.Record) Outcome
}

// HTTPDoer describes the HTTP client used by the Notion client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client creates pages in a Notion database.
type Client struct {
	token      string
	baseURL    string
	version    string
	properties Properties
	httpClient HTTPDoer
	logger     *slog.Logger
}

var _ Writer = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithVersion overrides the Notion-Version header.
func WithVersion(version string) Option {
	return func(c *Client) {
		if version = strings.TrimSpace(version); version != "" {
			c.version = version
		}
	}
}

// WithProperties overrides the destination property names.
func WithProperties(props Properties) Option {
	return func(c *Client) {
		c.properties = props
	}
}

// WithTimeout sets the request timeout on the default HTTP client. Zero keeps
// the client default of no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Notion client authenticated with the given integration token.
func New(token string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, services.Wrap(services.ErrConfiguration, "notion", "", "integration token required", nil)
	}
	client := &Client{
		token:      token,
		baseURL:    DefaultBaseURL,
		version:    DefaultVersion,
		properties: DefaultProperties(),
		httpClient: http.DefaultClient,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Properties returns the property names this client writes.
func (c *Client) Properties() Properties {
	return c.properties
}

// CreatePage sends one create-page request for record. It never fails:
// transport errors yield an outcome with status 0 and the error text as body.
func (c *Client) CreatePage(ctx context.Context, databaseID string, record mapper.Record) Outcome {
	outcome := Outcome{Title: record.Title}

	body, err := json.Marshal(BuildPayload(databaseID, record, c.properties))
	if err != nil {
		outcome.ResponseBody = fmt.Sprintf("encode payload: %v", err)
		return outcome
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pages", bytes.NewReader(body))
	if err != nil {
		outcome.ResponseBody = fmt.Sprintf("build request: %v", err)
		return outcome
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("Content-Type", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		outcome.ResponseBody = fmt.Sprintf("execute request (latency=%v): %v", latency, err)
		return outcome
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	outcome.StatusCode = resp.StatusCode
	outcome.ResponseBody = string(raw)
	if err != nil {
		outcome.ResponseBody += fmt.Sprintf("\nread body: %v", err)
	}
	outcome.Succeeded = resp.StatusCode == createdStatus

	c.logger.Debug("notion page create finished",
		slog.String("title", record.Title),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", latency),
	)
	return outcome
}

package annict

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

	"cour/internal/catalog"
	"cour/internal/services"
)

// DefaultEndpoint is the Annict GraphQL endpoint.
const DefaultEndpoint = "https://api.annict.com/graphql"

// DefaultExcludedMedium is the medium dropped from fetched works unless the
// caller opts out.
const DefaultExcludedMedium = "WEB"

// seasonWorksQuery is the only query this client issues. Results come back
// ordered by watcher count, most watched first.
const seasonWorksQuery = `query SeasonWorks($seasons: [String!]) {
  searchWorks(seasons: $seasons, orderBy: {field: WATCHERS_COUNT, direction: DESC}) {
    nodes {
      title
      seasonName
      seasonYear
      episodesCount
      officialSiteUrl
      media
      image {
        recommendedImageUrl
      }
      staffs {
        nodes {
          roleText
          name
        }
      }
      casts {
        nodes {
          name
          character {
            name
          }
        }
      }
    }
  }
}`

// Fetcher defines the catalog operations used by the transfer pipeline.
type Fetcher interface {
	FetchSeason(ctx context.Context, seasonToken string, opts FetchOptions) ([]catalog.Work, error)
}

// HTTPDoer describes the HTTP client used by the Annict client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// FetchOptions controls post-fetch filtering.
type FetchOptions struct {
	// ExcludeMedium drops works whose medium equals this value exactly.
	// Empty keeps every work.
	ExcludeMedium string
}

// DefaultFetchOptions returns the canonical options: WEB works excluded.
func DefaultFetchOptions() FetchOptions {
	return FetchOptions{ExcludeMedium: DefaultExcludedMedium}
}

// Client provides access to the Annict GraphQL API.
type Client struct {
	token      string
	endpoint   string
	httpClient HTTPDoer
	logger     *slog.Logger
}

var _ Fetcher = (*Client)(nil)

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

// WithEndpoint overrides the GraphQL endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
			c.endpoint = endpoint
		}
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

// New creates an Annict client authenticated with the given bearer token.
func New(token string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, services.Wrap(services.ErrConfiguration, "annict", "", "api token required", nil)
	}
	client := &Client{
		token:      token,
		endpoint:   DefaultEndpoint,
		httpClient: http.DefaultClient,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FetchSeason queries the works airing in seasonToken ("2025-spring"). The
// token is passed through unvalidated; a malformed token yields no works.
//
// On failure the returned slice is empty and the error is either
// ErrResponseUnparseable or an *APIError.
func (c *Client) FetchSeason(ctx context.Context, seasonToken string, opts FetchOptions) ([]catalog.Work, error) {
	body, err := json.Marshal(map[string]any{
		"query":     seasonWorksQuery,
		"variables": map[string]any{"seasons": []string{seasonToken}},
	})
	if err != nil {
		return []catalog.Work{}, fmt.Errorf("encode annict query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return []catalog.Work{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return []catalog.Work{}, fmt.Errorf("%w: execute request (latency=%v): %w", ErrResponseUnparseable, latency, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return []catalog.Work{}, fmt.Errorf("%w: read body (status=%d): %w", ErrResponseUnparseable, resp.StatusCode, err)
	}

	var payload graphQLResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return []catalog.Work{}, fmt.Errorf("%w: decode body (status=%d): %w", ErrResponseUnparseable, resp.StatusCode, err)
	}
	if len(payload.Errors) > 0 {
		message := strings.TrimSpace(payload.Errors[0].Message)
		if message == "" {
			message = defaultErrorMessage
		}
		return []catalog.Work{}, &APIError{Message: message}
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return []catalog.Work{}, &APIError{Message: fmt.Sprintf("annict returned %d", resp.StatusCode)}
	}

	var nodes []rawWork
	if payload.Data != nil && payload.Data.SearchWorks != nil {
		nodes = payload.Data.SearchWorks.Nodes
	}
	works := make([]catalog.Work, 0, len(nodes))
	for _, node := range nodes {
		works = append(works, node.normalize())
	}
	filtered := catalog.FilterMedium(works, opts.ExcludeMedium)

	c.logger.Debug("annict season fetched",
		slog.String("season", seasonToken),
		slog.Int("works", len(works)),
		slog.Int("excluded", len(works)-len(filtered)),
		slog.Duration("latency", latency),
	)
	return filtered, nil
}

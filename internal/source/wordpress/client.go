package wordpress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"wpsync/internal/domain"
)

// DefaultBaseURL is the public WordPress.com REST API endpoint.
const DefaultBaseURL = "https://public-api.wordpress.com/rest/v1.1/"

var (
	// ErrNotFound means the requested object does not exist remotely.
	ErrNotFound = errors.New("wordpress: not found")
	// ErrAuthRequired means the request needs a valid auth token, e.g. when
	// listing non-public statuses without one.
	ErrAuthRequired = errors.New("wordpress: authentication required")
)

// statusError is a non-OK HTTP response. Only rate-limit and server-side
// codes are retried.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.code)
}

func (e *statusError) retryable() bool {
	return e.code == http.StatusTooManyRequests || e.code >= 500
}

// Config holds remote client configuration.
type Config struct {
	BaseURL        string
	AuthToken      string
	PageSize       int
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Client talks to the WordPress REST API for one site. It retries transient
// failures with bounded exponential backoff and has no side effects beyond
// network I/O.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	authToken      string
	pageSize       int
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

// New creates a WordPress API client.
func New(cfg Config, logger *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	logger = logger.With("component", "wordpress")
	if cfg.AuthToken == "" {
		logger.Warn("no auth token configured, only public content is available")
	}
	return &Client{
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		baseURL:        baseURL,
		authToken:      cfg.AuthToken,
		pageSize:       cfg.PageSize,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger,
	}
}

// PostFilter narrows a posts listing.
type PostFilter struct {
	Type          domain.ContentType
	Status        domain.Status
	ModifiedAfter *time.Time
}

// PostsPage is one page of a posts listing. NextCursor is empty on the last
// page; otherwise it is the opaque page handle for the next fetch.
type PostsPage struct {
	Posts      []Post
	NextCursor string
}

// FetchPostsPage fetches one page of posts of the given type and status.
// Pass an empty cursor for the first page.
func (c *Client) FetchPostsPage(ctx context.Context, siteID int64, filter PostFilter, cursor string) (*PostsPage, error) {
	params := url.Values{}
	params.Set("number", strconv.Itoa(c.pageSize))
	params.Set("type", string(filter.Type))
	if filter.Status != "" {
		params.Set("status", string(filter.Status))
	}
	if filter.ModifiedAfter != nil {
		params.Set("modified_after", filter.ModifiedAfter.UTC().Format(time.RFC3339))
	}
	if cursor != "" {
		params.Set("page_handle", cursor)
	}

	var resp PostsResponse
	if err := c.get(ctx, fmt.Sprintf("sites/%d/posts", siteID), params, &resp); err != nil {
		return nil, err
	}
	return &PostsPage{Posts: resp.Posts, NextCursor: resp.Meta.NextPage}, nil
}

// FetchPost fetches a single post by its remote ID. Returns ErrNotFound if
// the post does not exist remotely.
func (c *Client) FetchPost(ctx context.Context, siteID, postID int64) (*Post, error) {
	var post Post
	if err := c.get(ctx, fmt.Sprintf("sites/%d/posts/%d", siteID, postID), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// FetchCategoriesPage fetches one page of categories. Pages are 1-based.
func (c *Client) FetchCategoriesPage(ctx context.Context, siteID int64, page int) ([]Category, error) {
	params := url.Values{}
	params.Set("number", strconv.Itoa(c.pageSize))
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}

	var resp CategoriesResponse
	if err := c.get(ctx, fmt.Sprintf("sites/%d/categories", siteID), params, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// FetchTagsPage fetches one page of tags. Pages are 1-based.
func (c *Client) FetchTagsPage(ctx context.Context, siteID int64, page int) ([]Tag, error) {
	params := url.Values{}
	params.Set("number", strconv.Itoa(c.pageSize))
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}

	var resp TagsResponse
	if err := c.get(ctx, fmt.Sprintf("sites/%d/tags", siteID), params, &resp); err != nil {
		return nil, err
	}
	return resp.Tags, nil
}

// FetchAuthorsPage fetches one page of site users. The users endpoint has no
// page parameter, so paging is by row offset.
func (c *Client) FetchAuthorsPage(ctx context.Context, siteID int64, offset int) ([]Author, error) {
	params := url.Values{}
	params.Set("number", strconv.Itoa(c.pageSize))
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}

	var resp UsersResponse
	if err := c.get(ctx, fmt.Sprintf("sites/%d/users", siteID), params, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// FetchMediaPage fetches one page of media entries uploaded after the given
// time. The media endpoint cannot filter on modification date, so callers
// widen the window instead. Pages are 1-based.
func (c *Client) FetchMediaPage(ctx context.Context, siteID int64, page int, after *time.Time) ([]Media, error) {
	params := url.Values{}
	params.Set("number", strconv.Itoa(c.pageSize))
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}
	if after != nil {
		params.Set("after", after.UTC().Format(time.RFC3339))
	}

	var resp MediaResponse
	if err := c.get(ctx, fmt.Sprintf("sites/%d/media", siteID), params, &resp); err != nil {
		return nil, err
	}
	return resp.Media, nil
}

// get performs a GET with bounded retries and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var err error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		err = c.doRequest(ctx, reqURL, out)
		if err == nil {
			return nil
		}

		var se *statusError
		if errors.As(err, &se) && !se.retryable() {
			return c.classify(se)
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if attempt == c.maxAttempts {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("request failed, retrying",
			"url", reqURL,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("after %d attempts: %w", c.maxAttempts, err)
}

func (c *Client) doRequest(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "wpsync/1.0")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &statusError{code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// classify maps terminal HTTP statuses onto the client's error taxonomy.
func (c *Client) classify(se *statusError) error {
	switch se.code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthRequired
	case http.StatusNotFound:
		return ErrNotFound
	}
	return se
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}

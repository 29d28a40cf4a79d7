// Package contentapi reads content from the platform's blog post REST API.
package contentapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/okian/lexrec/internal/domain/model"
	"github.com/okian/lexrec/pkg/logger"
)

const (
	blogPostsPath = "/api/blog-posts"
	maxErrorBody  = 512
)

// Client fetches pages of blog posts over HTTP.
type Client struct {
	base         *url.URL
	http         *http.Client
	activeStatus string
	log          logger.Logger
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBase, baseURL)
	}
	c := &Client{
		base:         u,
		http:         &http.Client{Timeout: DefaultTimeout},
		activeStatus: DefaultActiveStatus,
		log:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// blogPost is the upstream wire shape of a post.
type blogPost struct {
	ContentID       flexID `json:"content_id"`
	Title           string `json:"title"`
	Summary         string `json:"summary"`
	Content         string `json:"content"`
	Category        string `json:"category"`
	Tags            string `json:"tags"`
	Status          string `json:"status"`
	AuthorName      string `json:"author_name"`
	Views           int    `json:"views"`
	Likes           int    `json:"likes"`
	Shares          int    `json:"shares"`
	CommentCount    int    `json:"comment_count"`
	PublicationDate string `json:"publication_date"`
	CreatedAt       string `json:"created_at"`
}

type blogPostsResponse struct {
	BlogPosts []blogPost `json:"blog_posts"`
	Total     int        `json:"total"`
}

// flexID accepts numeric or string identifiers.
type flexID string

func (id *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}
	if string(b) == "null" {
		*id = ""
		return nil
	}
	*id = flexID(b)
	return nil
}

// Fetch implements recommend.ContentFetcher.
func (c *Client) Fetch(ctx context.Context, q model.Query) (model.Page, error) {
	if err := q.Validate(); err != nil {
		return model.Page{}, err
	}

	reqURL := c.queryURL(q)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return model.Page{}, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if id := logger.RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return model.Page{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return model.Page{}, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload blogPostsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.Page{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	items := make([]model.ContentItem, 0, len(payload.BlogPosts))
	for _, p := range payload.BlogPosts {
		items = append(items, c.toItem(ctx, p))
	}
	// Some deployments ignore the limit parameter.
	if q.Limit > 0 && len(items) > q.Limit {
		items = items[:q.Limit]
	}
	return model.Page{Items: items, Total: payload.Total}, nil
}

func (c *Client) queryURL(q model.Query) string {
	params := url.Values{}
	params.Set("sort_by", string(q.SortBy))
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Status != "" {
		params.Set("status", c.upstreamStatus(q.Status))
	}
	if q.Category != "" {
		params.Set("practice_area", q.Category)
	}
	return c.base.String() + blogPostsPath + "?" + params.Encode()
}

func (c *Client) upstreamStatus(s string) string {
	if s == model.StatusActive {
		return c.activeStatus
	}
	return s
}

func (c *Client) toItem(ctx context.Context, p blogPost) model.ContentItem {
	status := p.Status
	if strings.EqualFold(status, c.activeStatus) || strings.EqualFold(status, model.StatusActive) {
		status = model.StatusActive
	}

	published, ok := parseTime(p.PublicationDate)
	if !ok {
		published, ok = parseTime(p.CreatedAt)
	}
	if !ok && (p.PublicationDate != "" || p.CreatedAt != "") {
		c.log.Debug(ctx, "unparseable publication date",
			logger.String("content_id", string(p.ContentID)),
			logger.String("publication_date", p.PublicationDate))
	}

	return model.ContentItem{
		ID:           string(p.ContentID),
		Title:        p.Title,
		Summary:      p.Summary,
		Body:         p.Content,
		Category:     p.Category,
		Tags:         p.Tags,
		Status:       status,
		AuthorName:   p.AuthorName,
		Views:        p.Views,
		Likes:        p.Likes,
		Shares:       p.Shares,
		CommentCount: p.CommentCount,
		PublishedAt:  published,
	}
}

var timeLayouts = []string{ //nolint:gochecknoglobals // fixed lookup table
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

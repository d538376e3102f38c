// Package posts is a thin client for the JSONPlaceholder posts resource.
//
// The three lookup operations translate HTTP-status failures into a nil
// result rather than an error, so callers treat nil as "not found or
// upstream failure". Transport and decoding failures are returned as errors.
package posts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public JSONPlaceholder API.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

const (
	opGetPost          = "get_post"
	opGetUserPosts     = "get_user_posts"
	opGetPostValidated = "get_post_validated"
	opListPosts        = "list_posts"
)

// Doer performs a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues GET requests against the posts API. It holds no per-call
// state and is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	doer    Doer
	log     zerolog.Logger
}

// New constructs a Client pointed at DefaultBaseURL unless overridden.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     zerolog.Nop(),
	}

	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.doer == nil {
		c.doer = c.http
	}
	return c, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// GetPostByID fetches /posts/{postID}. No local validation is performed.
func (c *Client) GetPostByID(ctx context.Context, postID int) (Post, error) {
	return c.getPost(ctx, opGetPost, postID)
}

// GetPostsByUserID fetches /posts?userId={userID}. A successful response
// with no posts yields an empty, non-nil slice.
func (c *Client) GetPostsByUserID(ctx context.Context, userID int) ([]Post, error) {
	q := url.Values{}
	q.Set("userId", strconv.Itoa(userID))

	var out []Post
	if err := c.get(ctx, opGetUserPosts, "/posts", q, &out); err != nil {
		return nil, c.recoverStatus(err)
	}
	if out == nil {
		out = []Post{}
	}
	return out, nil
}

// GetPostByIDWithValidation rejects postID <= 0 with ErrInvalidPostID before
// any request is made, then behaves like GetPostByID.
func (c *Client) GetPostByIDWithValidation(ctx context.Context, postID int) (Post, error) {
	if postID <= 0 {
		observe(opGetPostValidated, outcomeInvalid)
		return nil, ErrInvalidPostID
	}
	return c.getPost(ctx, opGetPostValidated, postID)
}

// ListPosts fetches the whole /posts collection. Unlike the lookups above,
// a non-2xx response is returned as *StatusError.
func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	var out []Post
	if err := c.get(ctx, opListPosts, "/posts", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Post{}
	}
	return out, nil
}

func (c *Client) getPost(ctx context.Context, op string, postID int) (Post, error) {
	var p Post
	if err := c.get(ctx, op, "/posts/"+strconv.Itoa(postID), nil, &p); err != nil {
		return nil, c.recoverStatus(err)
	}
	return p, nil
}

// recoverStatus drops HTTP-status errors, leaving every other error intact.
func (c *Client) recoverStatus(err error) error {
	var se *StatusError
	if errors.As(err, &se) {
		c.log.Warn().
			Str("op", se.Op).
			Str("url", se.URL).
			Int("status", se.StatusCode).
			Msg("upstream returned non-2xx")
		return nil
	}
	return err
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.doer.Do(req)
	if err != nil {
		observe(op, outcomeTransportError)
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		observe(op, outcomeHTTPError)
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Op: op, URL: u, StatusCode: resp.StatusCode, Body: string(body)}
	}

	// Numbers stay json.Number so large ids survive the round trip.
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		observe(op, outcomeDecodeError)
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	observe(op, outcomeOK)
	return nil
}

func trimBaseURL(s string) string {
	return strings.TrimRight(s, "/")
}

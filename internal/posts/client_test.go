package posts

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDoer records request URLs and replies with a canned response.
type fakeDoer struct {
	mu     sync.Mutex
	urls   []string
	status int
	body   string
	err    error
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	f.urls = append(f.urls, req.URL.String())
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func (f *fakeDoer) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.urls...)
}

func newTestClient(t *testing.T, d Doer) *Client {
	t.Helper()
	c, err := New(WithDoer(d))
	require.NoError(t, err)
	return c
}

func TestGetPostByID_Success(t *testing.T) {
	d := &fakeDoer{status: http.StatusOK, body: `{"id": 1, "title": "Test Post"}`}
	c := newTestClient(t, d)

	got, err := c.GetPostByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, Post{"id": json.Number("1"), "title": "Test Post"}, got)
	assert.Equal(t, []string{"https://jsonplaceholder.typicode.com/posts/1"}, d.calls())
}

func TestGetPostByID_HTTPError(t *testing.T) {
	d := &fakeDoer{status: http.StatusNotFound, body: `{}`}
	c := newTestClient(t, d)

	got, err := c.GetPostByID(context.Background(), 999)

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetPostByID_ServerErrorIsSwallowed(t *testing.T) {
	d := &fakeDoer{status: http.StatusInternalServerError, body: "boom"}
	c := newTestClient(t, d)

	got, err := c.GetPostByID(context.Background(), 3)

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetPostByID_PassesBodyThrough(t *testing.T) {
	d := &fakeDoer{status: http.StatusOK, body: `{"id": 7, "title": "t", "userId": 2, "extra": {"nested": [1, 2]}}`}
	c := newTestClient(t, d)

	got, err := c.GetPostByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 7, got.ID())
	assert.Equal(t, 2, got.UserID())
	assert.Equal(t, "t", got.Title())
	assert.Equal(t, map[string]any{"nested": []any{json.Number("1"), json.Number("2")}}, got["extra"])
}

func TestGetPostByID_LargeIntegersUnchanged(t *testing.T) {
	d := &fakeDoer{status: http.StatusOK, body: `{"id": 9007199254740993, "title": "big", "score": 1.5}`}
	c := newTestClient(t, d)

	got, err := c.GetPostByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, json.Number("9007199254740993"), got["id"])
	assert.Equal(t, json.Number("1.5"), got["score"])

	out, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 9007199254740993, "title": "big", "score": 1.5}`, string(out))
	assert.Contains(t, string(out), "9007199254740993")
}

func TestGetPostByID_TransportErrorPropagates(t *testing.T) {
	d := &fakeDoer{err: errors.New("connection refused")}
	c := newTestClient(t, d)

	got, err := c.GetPostByID(context.Background(), 1)

	require.Error(t, err)
	assert.Nil(t, got)
	assert.False(t, IsStatusError(err))
}

func TestGetPostByID_DecodeErrorPropagates(t *testing.T) {
	d := &fakeDoer{status: http.StatusOK, body: `{not json`}
	c := newTestClient(t, d)

	_, err := c.GetPostByID(context.Background(), 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestGetPostsByUserID_Success(t *testing.T) {
	d := &fakeDoer{status: http.StatusOK, body: `[{"id": 1, "userId": 1, "title": "User's Post"}]`}
	c := newTestClient(t, d)

	got, err := c.GetPostsByUserID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, []Post{{"id": json.Number("1"), "userId": json.Number("1"), "title": "User's Post"}}, got)
	assert.Equal(t, []string{"https://jsonplaceholder.typicode.com/posts?userId=1"}, d.calls())
}

func TestGetPostsByUserID_Empty(t *testing.T) {
	d := &fakeDoer{status: http.StatusOK, body: `[]`}
	c := newTestClient(t, d)

	got, err := c.GetPostsByUserID(context.Background(), 42)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetPostsByUserID_HTTPError(t *testing.T) {
	d := &fakeDoer{status: http.StatusServiceUnavailable}
	c := newTestClient(t, d)

	got, err := c.GetPostsByUserID(context.Background(), 999)

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetPostsByUserID_ObjectInsteadOfArray(t *testing.T) {
	d := &fakeDoer{status: http.StatusOK, body: `{"not":"an array"}`}
	c := newTestClient(t, d)

	_, err := c.GetPostsByUserID(context.Background(), 1)
	require.Error(t, err)
}

func TestGetPostByIDWithValidation_Success(t *testing.T) {
	d := &fakeDoer{status: http.StatusOK, body: `{"id": 2, "title": "Validated Post"}`}
	c := newTestClient(t, d)

	got, err := c.GetPostByIDWithValidation(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, Post{"id": json.Number("2"), "title": "Validated Post"}, got)
	assert.Equal(t, []string{"https://jsonplaceholder.typicode.com/posts/2"}, d.calls())
}

func TestGetPostByIDWithValidation_InvalidID(t *testing.T) {
	for _, id := range []int{0, -1, -1000} {
		d := &fakeDoer{status: http.StatusOK, body: `{}`}
		c := newTestClient(t, d)

		got, err := c.GetPostByIDWithValidation(context.Background(), id)

		require.ErrorIs(t, err, ErrInvalidPostID, "id %d", id)
		assert.EqualError(t, err, "post_id must be greater than 0")
		assert.Nil(t, got)
		assert.Empty(t, d.calls(), "no request expected for id %d", id)
	}
}

func TestGetPostByIDWithValidation_HTTPError(t *testing.T) {
	d := &fakeDoer{status: http.StatusNotFound}
	c := newTestClient(t, d)

	got, err := c.GetPostByIDWithValidation(context.Background(), 999)

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListPosts_StatusErrorIsReturned(t *testing.T) {
	d := &fakeDoer{status: http.StatusBadGateway, body: "upstream err"}
	c := newTestClient(t, d)

	_, err := c.ListPosts(context.Background())

	require.Error(t, err)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Equal(t, "https://jsonplaceholder.typicode.com/posts", se.URL)
}

func TestClient_AgainstHTTPServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		switch {
		case r.URL.Path == "/posts/5":
			_, _ = w.Write([]byte(`{"id":5,"title":"five"}`))
		case r.URL.Path == "/posts" && r.URL.Query().Get("userId") == "3":
			_, _ = w.Write([]byte(`[{"id":21,"userId":3,"title":"x"},{"id":22,"userId":3,"title":"y"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c, err := New(WithBaseURL(srv.URL + "/"))
	require.NoError(t, err)
	ctx := context.Background()

	p, err := c.GetPostByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "five", p.Title())

	list, err := c.GetPostsByUserID(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	missing, err := c.GetPostByID(ctx, 6)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestClient_CanceledContext(t *testing.T) {
	d := &fakeDoer{status: http.StatusOK, body: `{}`}
	c := newTestClient(t, d)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetPostByID(ctx, 1)

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, d.calls())
}

func TestClient_ConcurrentCalls(t *testing.T) {
	d := &fakeDoer{status: http.StatusOK, body: `{"id": 1, "title": "same"}`}
	c := newTestClient(t, d)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := c.GetPostByID(context.Background(), 1)
			assert.NoError(t, err)
			assert.Equal(t, "same", p.Title())
		}()
	}
	wg.Wait()
	assert.Len(t, d.calls(), 16)
}

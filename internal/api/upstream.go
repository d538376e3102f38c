package api

import (
	"context"

	"github.com/renix-codex/posts/internal/posts"
)

// UpstreamPost fetches one post live. With validate set, ids below 1 fail
// with posts.ErrInvalidPostID before any request. A nil post with a nil error
// means the upstream answered with a non-2xx status.
func (a *API) UpstreamPost(ctx context.Context, postID int, validate bool) (posts.Post, error) {
	if validate {
		return a.upstream.GetPostByIDWithValidation(ctx, postID)
	}
	return a.upstream.GetPostByID(ctx, postID)
}

// UpstreamUserPosts fetches a user's posts live; nil means upstream failure.
func (a *API) UpstreamUserPosts(ctx context.Context, userID int) ([]posts.Post, error) {
	return a.upstream.GetPostsByUserID(ctx, userID)
}

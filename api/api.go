// Package api talks to posts backends: a remote JSON API through Client,
// an in-process Memory store, and Handler which serves any Backend over
// HTTP.
package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/pthm/postboard/posts"
)

// ErrNotFound is returned when a post does not exist.
var ErrNotFound = errors.New("api: post not found")

// Backend is a posts store.
type Backend interface {
	ListPosts(ctx context.Context) ([]posts.Post, error)
	GetPost(ctx context.Context, id string) (posts.Post, error)
	CreatePost(ctx context.Context, v posts.Values) (posts.Post, error)
	DeletePost(ctx context.Context, id string) error
}

// StatusError is a non-2xx response other than 404.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: %s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

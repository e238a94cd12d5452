// Package actions implements the posts capabilities against a Backend.
//
// Writes run inside the caller's request and report success only by
// invoking onComplete. Fetches return immediately; their results land in
// the store.
package actions

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pthm/postboard/api"
	"github.com/pthm/postboard/posts"
	"github.com/pthm/postboard/store"
)

// Dispatcher is the posts.Actions implementation.
type Dispatcher struct {
	backend api.Backend
	store   *store.Store
	logger  *slog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger failures are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithTimeout bounds every backend call.
func WithTimeout(t time.Duration) Option {
	return func(d *Dispatcher) { d.timeout = t }
}

// New returns a Dispatcher writing fetched posts into s.
func New(b api.Backend, s *store.Store, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		backend: b,
		store:   s,
		logger:  slog.Default(),
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var _ posts.Actions = (*Dispatcher)(nil)

// CreatePost writes v and calls onComplete once it is stored. Failures are
// logged and onComplete is not called.
func (d *Dispatcher) CreatePost(ctx context.Context, v posts.Values, onComplete func()) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	p, err := d.backend.CreatePost(ctx, v)
	if err != nil {
		d.logger.Error("create post failed", "title", v.Title, "error", err)
		return
	}
	d.store.Dispatch(store.PostFetched{Post: p})
	d.logger.Info("post created", "id", p.ID)
	complete(onComplete)
}

// DeletePost removes id and calls onComplete once it is gone.
func (d *Dispatcher) DeletePost(ctx context.Context, id string, onComplete func()) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.backend.DeletePost(ctx, id); err != nil {
		d.logger.Error("delete post failed", "id", id, "error", err)
		return
	}
	d.store.Dispatch(store.PostDeleted{ID: id})
	d.logger.Info("post deleted", "id", id)
	complete(onComplete)
}

// FetchPost loads id into the store in the background. A missing post
// leaves the state unchanged.
func (d *Dispatcher) FetchPost(ctx context.Context, id string) {
	d.background(ctx, func(ctx context.Context) {
		p, err := d.backend.GetPost(ctx, id)
		if err != nil {
			d.logger.Error("fetch post failed", "id", id, "error", err)
			return
		}
		d.store.Dispatch(store.PostFetched{Post: p})
	})
}

// FetchPosts loads every post into the store in the background.
func (d *Dispatcher) FetchPosts(ctx context.Context) {
	d.background(ctx, func(ctx context.Context) {
		ps, err := d.backend.ListPosts(ctx)
		if err != nil {
			d.logger.Error("fetch posts failed", "error", err)
			return
		}
		d.store.Dispatch(store.PostsFetched{Posts: ps})
	})
}

// Wait blocks until background fetches finish.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// background runs fn detached from the request's cancellation.
func (d *Dispatcher) background(ctx context.Context, fn func(context.Context)) {
	ctx = context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()
		fn(ctx)
	}()
}

func complete(fn func()) {
	if fn != nil {
		fn()
	}
}

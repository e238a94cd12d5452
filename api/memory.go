package api

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/pthm/postboard/posts"
)

// Memory is an in-process Backend. Values are stored as given.
type Memory struct {
	mu    sync.RWMutex
	posts map[string]posts.Post
	newID func() string
}

// NewMemory returns an empty Memory backend seeded with seed.
func NewMemory(seed ...posts.Post) *Memory {
	m := &Memory{
		posts: make(map[string]posts.Post, len(seed)),
		newID: uuid.NewString,
	}
	for _, p := range seed {
		if p.ID == "" {
			p.ID = m.newID()
		}
		m.posts[p.ID] = p
	}
	return m
}

// ListPosts returns every post ordered by id.
func (m *Memory) ListPosts(ctx context.Context) ([]posts.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]posts.Post, 0, len(m.posts))
	for _, p := range m.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetPost returns the post with id or an error wrapping ErrNotFound.
func (m *Memory) GetPost(ctx context.Context, id string) (posts.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.posts[id]
	if !ok {
		return posts.Post{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p, nil
}

// CreatePost stores v under a fresh id.
func (m *Memory) CreatePost(ctx context.Context, v posts.Values) (posts.Post, error) {
	if err := ctx.Err(); err != nil {
		return posts.Post{}, err
	}
	p := posts.Post{
		ID:         m.newID(),
		Title:      v.Title,
		Categories: v.Categories,
		Content:    v.Content,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts[p.ID] = p
	return p, nil
}

// DeletePost removes the post with id or returns an error wrapping ErrNotFound.
func (m *Memory) DeletePost(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.posts, id)
	return nil
}

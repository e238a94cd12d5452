// Package store is the in-process state container. State changes only
// through Dispatch; readers get copies.
package store

import (
	"sync"

	"github.com/pthm/postboard/posts"
)

// Action is a state transition.
type Action interface {
	isAction()
}

// PostsFetched replaces the whole collection.
type PostsFetched struct {
	Posts []posts.Post
}

// PostFetched inserts or replaces one post.
type PostFetched struct {
	Post posts.Post
}

// PostDeleted removes one post.
type PostDeleted struct {
	ID string
}

func (PostsFetched) isAction() {}
func (PostFetched) isAction()  {}
func (PostDeleted) isAction()  {}

// Reduce returns the state after a. s is not modified.
func Reduce(s posts.State, a Action) posts.State {
	switch a := a.(type) {
	case PostsFetched:
		next := make(map[string]posts.Post, len(a.Posts))
		for _, p := range a.Posts {
			next[p.ID] = p
		}
		return posts.State{ByID: next, Listed: true}
	case PostFetched:
		next := clone(s.ByID)
		next[a.Post.ID] = a.Post
		return posts.State{ByID: next, Listed: s.Listed}
	case PostDeleted:
		if _, ok := s.ByID[a.ID]; !ok {
			return s
		}
		next := clone(s.ByID)
		delete(next, a.ID)
		return posts.State{ByID: next, Listed: s.Listed}
	}
	return s
}

// Store holds the current state.
type Store struct {
	mu    sync.RWMutex
	state posts.State
}

// New returns an empty store.
func New() *Store {
	return &Store{state: posts.State{ByID: map[string]posts.Post{}}}
}

// State returns a copy of the current state.
func (s *Store) State() posts.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return posts.State{ByID: clone(s.state.ByID), Listed: s.state.Listed}
}

// Dispatch applies a.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
}

func clone(m map[string]posts.Post) map[string]posts.Post {
	out := make(map[string]posts.Post, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

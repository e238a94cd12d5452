// Package components holds postboard's page components: the create form,
// the post detail view and the index.
//
// Components receive a read-only state accessor and the capabilities they
// need at construction. They never write state themselves.
package components

import (
	"time"

	"github.com/pthm/postboard/hxcmp"
	"github.com/pthm/postboard/posts"
)

// Options tune component behavior.
type Options struct {
	// Poll is how often a view waiting on fetched state re-renders.
	Poll time.Duration
	// GuardDuplicateSubmits disables submit and delete controls while their
	// request is in flight.
	GuardDuplicateSubmits bool
}

func (o Options) poll() time.Duration {
	if o.Poll <= 0 {
		return time.Second
	}
	return o.Poll
}

// Set is every page component.
type Set struct {
	New   *PostsNew
	Show  *PostsShow
	Index *PostsIndex
}

// Init builds the components and registers them with reg.
func Init(reg *hxcmp.Registry, state posts.StateReader, actions posts.Actions, opts Options) *Set {
	s := &Set{
		New:   NewPostsNew(actions, opts),
		Show:  NewPostsShow(state, actions, actions, opts),
		Index: NewPostsIndex(state, actions, opts),
	}
	reg.Add(s.New, s.Show, s.Index)
	return s
}

package hxcmp

import "sync"

// Navigator is the navigation capability handed to completion callbacks.
type Navigator interface {
	Push(path string)
}

// Navigation records navigation requested while a request is handled.
//
// Handlers create one per request and pass it into capability callbacks;
// Follow turns the recorded push into the response:
//
//	nav := hxcmp.NewNavigation()
//	c.creator.CreatePost(ctx, values, func() { nav.Push("/") })
//	return hxcmp.Follow(props, nav)
//
// Push is safe to call from any goroutine.
type Navigation struct {
	mu     sync.Mutex
	pushes []string
}

// NewNavigation returns an empty Navigation.
func NewNavigation() *Navigation {
	return &Navigation{}
}

// Push records a navigation to path.
func (n *Navigation) Push(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushes = append(n.pushes, path)
}

// Pushed returns every recorded path in order.
func (n *Navigation) Pushed() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.pushes))
	copy(out, n.pushes)
	return out
}

// Location returns the first recorded path and whether one exists.
func (n *Navigation) Location() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.pushes) == 0 {
		return "", false
	}
	return n.pushes[0], true
}

// Follow redirects to the first pushed location, or re-renders props when
// nothing navigated.
func Follow[P any](props P, nav *Navigation) Result[P] {
	if loc, ok := nav.Location(); ok {
		return Redirect[P](loc)
	}
	return OK(props)
}

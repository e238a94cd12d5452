package components

import (
	"context"
	"net/http"
	"net/url"

	"github.com/a-h/templ"

	"github.com/pthm/postboard/hxcmp"
	"github.com/pthm/postboard/posts"
)

// IndexProps carry no state of their own; the list is read on hydrate.
type IndexProps struct {
	Posts  []posts.Post `msgpack:"-"`
	Listed bool         `msgpack:"-"`
}

// PostsIndex lists every post.
type PostsIndex struct {
	*hxcmp.Component[IndexProps]
	state  posts.StateReader
	lister posts.Lister
	opts   Options
}

// NewPostsIndex returns the index reading from state.
func NewPostsIndex(state posts.StateReader, lister posts.Lister, opts Options) *PostsIndex {
	return &PostsIndex{
		Component: hxcmp.New[IndexProps]("postsindex"),
		state:     state,
		lister:    lister,
		opts:      opts,
	}
}

// Mount requests the list and renders the current state.
func (c *PostsIndex) Mount(ctx context.Context) templ.Component {
	c.lister.FetchPosts(ctx)
	var p IndexProps
	_ = c.Hydrate(ctx, &p)
	return c.Render(ctx, p)
}

// Hydrate projects the list from the state.
func (c *PostsIndex) Hydrate(ctx context.Context, p *IndexProps) error {
	s := c.state.State()
	p.Posts = posts.SelectPosts(s)
	p.Listed = s.Listed
	return nil
}

// Render produces the list.
func (c *PostsIndex) Render(ctx context.Context, p IndexProps) templ.Component {
	return postsIndexTemplate(c, p)
}

// HXServeHTTP serves the index's render route.
func (c *PostsIndex) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.Serve(w, r, c)
}

// listAttrs poll the render route until the list has been fetched.
func (c *PostsIndex) listAttrs(p IndexProps) templ.Attributes {
	attrs := templ.Attributes{"class": "posts-index"}
	if p.Listed {
		return attrs
	}
	poll := c.Refresh(IndexProps{}).Every(c.opts.poll())
	return hxcmp.Merge(poll.Attrs(), attrs)
}

func postPath(id string) string {
	return "/posts/" + url.PathEscape(id)
}

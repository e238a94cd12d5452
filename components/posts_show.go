package components

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/pthm/postboard/hxcmp"
	"github.com/pthm/postboard/posts"
)

// ShowProps are the detail view's props. Post is nil until the fetched post
// reaches the state.
type ShowProps struct {
	ID string `msgpack:"id"`

	Post *posts.Post `msgpack:"-"`
}

// PostsShow is the post detail view.
type PostsShow struct {
	*hxcmp.Component[ShowProps]
	state   posts.StateReader
	fetcher posts.Fetcher
	deleter posts.Deleter
	opts    Options
}

// NewPostsShow returns the detail view reading from state.
func NewPostsShow(state posts.StateReader, fetcher posts.Fetcher, deleter posts.Deleter, opts Options) *PostsShow {
	c := &PostsShow{
		Component: hxcmp.New[ShowProps]("postsshow"),
		state:     state,
		fetcher:   fetcher,
		deleter:   deleter,
		opts:      opts,
	}
	c.Action("delete", c.handleDelete).Method(http.MethodDelete)
	return c
}

// Delete deletes the post and navigates to the index.
func (c *PostsShow) Delete(id string) *hxcmp.Action {
	return c.Call("delete", ShowProps{ID: id})
}

// Mount requests the post once and renders whatever the state holds now.
// Until the post arrives the view polls its render route, which reads the
// state without fetching again.
func (c *PostsShow) Mount(ctx context.Context, id string) templ.Component {
	c.fetcher.FetchPost(ctx, id)
	p := ShowProps{ID: id}
	_ = c.Hydrate(ctx, &p)
	return c.Render(ctx, p)
}

// Hydrate projects the post from the state.
func (c *PostsShow) Hydrate(ctx context.Context, p *ShowProps) error {
	p.Post = posts.SelectPost(c.state.State(), p.ID)
	return nil
}

// Render produces the loading block or the post.
func (c *PostsShow) Render(ctx context.Context, p ShowProps) templ.Component {
	return postsShowTemplate(c, p)
}

// handleDelete navigates to the index once the delete has succeeded.
func (c *PostsShow) handleDelete(ctx context.Context, p ShowProps, r *http.Request) hxcmp.Result[ShowProps] {
	nav := hxcmp.NewNavigation()
	c.deleter.DeletePost(ctx, p.ID, func() { nav.Push("/") })
	return hxcmp.Follow(p, nav)
}

// HXServeHTTP serves the detail view's render and delete routes.
func (c *PostsShow) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.Serve(w, r, c)
}

// loadingAttrs poll the plain render route until the post is in the state.
func (c *PostsShow) loadingAttrs(id string) templ.Attributes {
	poll := c.Refresh(ShowProps{ID: id}).Every(c.opts.poll())
	return hxcmp.Merge(poll.Attrs(), templ.Attributes{"class": "post-loading"})
}

func (c *PostsShow) deleteAttrs(id string) templ.Attributes {
	del := c.Delete(id).TargetClosest(".post-show")
	if c.opts.GuardDuplicateSubmits {
		del.DisabledElt("this")
	}
	return hxcmp.Merge(del.Attrs(), templ.Attributes{"class": "btn btn-danger pull-xs-right"})
}

package hxcmp

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
)

// Hydrater reconstructs server-side data from the lean, encoded props.
// It runs once per request before any handler, including plain renders, so
// handlers always see fully populated props.
//
//	func (c *PostsShow) Hydrate(ctx context.Context, props *ShowProps) error {
//	    props.Post = posts.SelectPost(c.state.State(), props.ID)
//	    return nil
//	}
type Hydrater[P any] interface {
	Hydrate(ctx context.Context, props *P) error
}

// Renderer produces the component's markup. Render should be pure: it reads
// props and writes HTML without side effects.
type Renderer[P any] interface {
	Render(ctx context.Context, props P) templ.Component
}

// Lifecycle combines Hydrater and Renderer. Serve drives both.
type Lifecycle[P any] interface {
	Hydrater[P]
	Renderer[P]
}

// HXComponent is what the registry mounts.
//
// Application components get HXPrefix from the embedded *Component[P] and
// implement HXServeHTTP by delegating to Serve:
//
//	func (c *PostsShow) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    c.Serve(w, r, c)
//	}
type HXComponent interface {
	HXPrefix() string
	HXServeHTTP(w http.ResponseWriter, r *http.Request)
}

// Registrable is an HXComponent that embeds *Component[P]. The unexported
// method can only be satisfied through embedding.
type Registrable interface {
	HXComponent
	attach(enc *Encoder, onError ErrorHandler)
}

// Package hxcmp is the component runtime behind postboard's pages.
//
// A component is a Go type that embeds *Component[P], where P is a props
// struct carried between requests. Props hold only identifiers and UI state;
// everything else is rebuilt in Hydrate from injected dependencies.
//
//	type PostsShow struct {
//	    *hxcmp.Component[ShowProps]
//	    state   posts.StateReader
//	    deleter posts.Deleter
//	}
//
// # Lifecycle
//
// Every request runs the same pipeline (see Serve):
//
//  1. decode props from the "p" parameter (signed by default, encrypted for
//     Sensitive components)
//  2. Hydrate(ctx, *P)
//  3. dispatch "METHOD /action" to the registered handler, or render for
//     "GET /"
//  4. apply the returned Result: error, redirect or render
//
// # Actions
//
// Handlers are registered by semantic name and return a Result:
//
//	c.Action("submit", c.handleSubmit)
//	c.Action("delete", c.handleDelete).Method(http.MethodDelete)
//
// Templates reference them with Call, which produces the HTMX attributes:
//
//	c.Call("delete", props).TargetClosest(".post-show").Attrs()
//
// # Navigation
//
// Capabilities signal completion through callbacks. A per-request Navigation
// records the navigation a callback asks for and Follow turns it into an
// HX-Redirect:
//
//	nav := hxcmp.NewNavigation()
//	c.deleter.DeletePost(ctx, props.ID, func() { nav.Push("/") })
//	return hxcmp.Follow(props, nav)
//
// # Security
//
// Props are HMAC-signed or AES-GCM encrypted by the registry's key.
// Mutating requests must carry HX-Request: true, which a cross-origin form
// post cannot set.
package hxcmp

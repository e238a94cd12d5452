package hxcmp

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"path/filepath"
	"runtime"
)

// HandlerFunc handles a named action. Props arrive decoded and hydrated.
type HandlerFunc[P any] func(ctx context.Context, props P, r *http.Request) Result[P]

// ErrorHandler writes the response for a failed request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// actionDef holds metadata about a registered action.
type actionDef[P any] struct {
	name    string
	method  string
	handler HandlerFunc[P]
}

// Component is the base type embedded by application components.
// P is the props type carried between requests.
//
//	type PostsShow struct {
//	    *hxcmp.Component[ShowProps]
//	    state posts.StateReader
//	}
//
//	func NewPostsShow(state posts.StateReader) *PostsShow {
//	    c := &PostsShow{Component: hxcmp.New[ShowProps]("postsshow"), state: state}
//	    c.Action("delete", c.handleDelete).Method(http.MethodDelete)
//	    return c
//	}
//
// Each instance receives a deterministic URL prefix derived from its name and
// the source location of the New call.
type Component[P any] struct {
	name      string
	prefix    string
	sensitive bool
	actions   map[string]*actionDef[P]
	encoder   *Encoder
	onError   ErrorHandler
}

// New creates a component with the given name. Props are signed by default;
// call Sensitive to encrypt them instead.
func New[P any](name string) *Component[P] {
	return &Component[P]{
		name:    name,
		prefix:  "/_c/" + name + "-" + componentHash(name, 1),
		actions: make(map[string]*actionDef[P]),
	}
}

// Sensitive switches the component to encrypted props.
func (c *Component[P]) Sensitive() *Component[P] {
	c.sensitive = true
	return c
}

// Name returns the component's name.
func (c *Component[P]) Name() string {
	return c.name
}

// HXPrefix returns the URL prefix all actions are mounted under.
func (c *Component[P]) HXPrefix() string {
	return c.prefix
}

// Encoder returns the encoder assigned at registration, or nil.
func (c *Component[P]) Encoder() *Encoder {
	return c.encoder
}

// Action registers a named action handler. The method defaults to POST:
//
//	c.Action("submit", c.handleSubmit)
//	c.Action("delete", c.handleDelete).Method(http.MethodDelete)
func (c *Component[P]) Action(name string, handler HandlerFunc[P]) *ActionBuilder {
	def := &actionDef[P]{name: name, method: http.MethodPost, handler: handler}
	c.actions[name] = def
	return &ActionBuilder{method: &def.method}
}

// Refresh returns an action for the component's plain render route.
func (c *Component[P]) Refresh(props P) *Action {
	return NewAction(c.prefix+"/", http.MethodGet, c.encode(props))
}

// Call returns an action builder for a registered action. It panics on an
// unknown name, the same way registration panics on a prefix collision:
// both are programming errors.
func (c *Component[P]) Call(name string, props P) *Action {
	def, ok := c.actions[name]
	if !ok {
		panic(fmt.Sprintf("hxcmp: %s has no action %q", c.name, name))
	}
	return NewAction(c.prefix+"/"+name, def.method, c.encode(props))
}

// attach wires the registry's encoder and error handler.
func (c *Component[P]) attach(enc *Encoder, onError ErrorHandler) {
	c.encoder = enc
	c.onError = onError
}

func (c *Component[P]) encode(props P) string {
	if c.encoder == nil {
		return ""
	}
	encoded, err := c.encoder.Encode(props, c.sensitive)
	if err != nil {
		return ""
	}
	return encoded
}

// componentHash derives a short hash from the caller's file:line and name.
func componentHash(name string, skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	input := name
	if ok {
		input = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, name)
	}
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:4])
}

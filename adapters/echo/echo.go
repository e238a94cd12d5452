// Package hxcmpecho mounts postboard's component registry on Echo.
//
//	e := echo.New()
//	reg := hxcmpecho.Mount(e, hxcmpecho.WithKey(key))
//	reg.Add(components...)
//
// Component routes live under /_c/, behind e's middleware.
package hxcmpecho

import (
	"crypto/rand"
	"fmt"
	"log/slog"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/pthm/postboard/hxcmp"
)

// Path is where component routes are mounted.
const Path = "/_c/"

// Option configures Mount.
type Option func(*options)

type options struct {
	key    []byte
	logger *slog.Logger
}

// WithKey sets the props key. Without it a random key is generated, so
// props do not survive a restart.
func WithKey(key []byte) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithLogger sets the logger failed component requests are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Mount creates a registry and serves it on e.
func Mount(e *echo.Echo, opts ...Option) *hxcmp.Registry {
	reg := newRegistry(opts)
	e.Any(Path+"*", echo.WrapHandler(reg.Handler()))
	return reg
}

func newRegistry(opts []Option) *hxcmp.Registry {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	key := o.key
	if key == nil {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("hxcmpecho: failed to generate random key: %v", err))
		}
	}

	reg := hxcmp.NewRegistry(key)
	if o.logger != nil {
		reg.SetLogger(o.logger)
	}
	return reg
}

// Render writes a templ component to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return hxcmpecho.Render(c, page)
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}

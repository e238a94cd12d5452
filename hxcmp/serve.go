package hxcmp

import (
	"fmt"
	"net/http"
	"strings"
)

// Serve runs the request lifecycle for a component: decode props, Hydrate,
// route to the action handler (or plain render for "GET /"), then apply the
// Result.
func (c *Component[P]) Serve(w http.ResponseWriter, r *http.Request, lc Lifecycle[P]) {
	var props P
	if encoded := r.FormValue("p"); encoded != "" {
		if c.encoder == nil {
			c.fail(w, r, fmt.Errorf("%w: %s is not registered", ErrInvalidFormat, c.name))
			return
		}
		if err := c.encoder.Decode(encoded, c.sensitive, &props); err != nil {
			c.fail(w, r, wrapEncodingError(err))
			return
		}
	}

	if err := lc.Hydrate(r.Context(), &props); err != nil {
		c.fail(w, r, fmt.Errorf("%w: %v", ErrHydrationFailed, err))
		return
	}

	name := strings.Trim(strings.TrimPrefix(r.URL.Path, c.prefix), "/")
	if name == "" {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		c.render(w, r, lc, props)
		return
	}

	def, ok := c.actions[name]
	if !ok {
		c.fail(w, r, fmt.Errorf("%w: action %q", ErrNotFound, name))
		return
	}
	if def.method != r.Method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c.handleResult(w, r, lc, def.handler(r.Context(), props, r))
}

func (c *Component[P]) handleResult(w http.ResponseWriter, r *http.Request, lc Lifecycle[P], result Result[P]) {
	if err := result.GetErr(); err != nil {
		c.fail(w, r, err)
		return
	}
	if redirect := result.GetRedirect(); redirect != "" {
		w.Header().Set("HX-Redirect", redirect)
		w.WriteHeader(http.StatusOK)
		return
	}
	c.render(w, r, lc, result.GetProps())
}

func (c *Component[P]) render(w http.ResponseWriter, r *http.Request, lc Lifecycle[P], props P) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	// Headers are gone by now; a failed render can only be truncated.
	_ = lc.Render(r.Context(), props).Render(r.Context(), w)
}

func (c *Component[P]) fail(w http.ResponseWriter, r *http.Request, err error) {
	if c.onError != nil {
		c.onError(w, r, err)
		return
	}
	defaultOnError(w, r, err)
}

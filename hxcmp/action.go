package hxcmp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
)

// ActionBuilder configures an action at registration time.
type ActionBuilder struct {
	method *string
}

// Method overrides the default POST method:
//
//	c.Action("delete", c.handleDelete).Method(http.MethodDelete)
func (ab *ActionBuilder) Method(m string) *ActionBuilder {
	*ab.method = m
	return ab
}

// Action builds the HTMX attributes that invoke a component action.
//
// GET actions carry props in the query string (hx-get="/path?p=...");
// everything else sends them through hx-vals so HTMX merges them with any
// enclosing form values.
//
// Responses always replace the target element whole.
//
//	c.Call("delete", props).TargetClosest(".post-show").Attrs()
type Action struct {
	path        string
	method      string
	encoded     string
	target      string
	trigger     string
	disabledElt string
}

// NewAction creates an action for path and method with pre-encoded props.
func NewAction(path, method, encoded string) *Action {
	if method == "" {
		method = http.MethodGet
	}
	return &Action{path: path, method: method, encoded: encoded}
}

// Path returns the action path without props.
func (a *Action) Path() string {
	return a.path
}

// Method returns the HTTP method.
func (a *Action) Method() string {
	return a.method
}

// Encoded returns the encoded props, or "" when none are carried.
func (a *Action) Encoded() string {
	return a.encoded
}

// URL returns the path with props in the query string.
func (a *Action) URL() string {
	if a.encoded == "" {
		return a.path
	}
	return a.path + "?p=" + a.encoded
}

// Target sets hx-target.
func (a *Action) Target(selector string) *Action {
	a.target = selector
	return a
}

// TargetThis targets the element carrying the attributes.
func (a *Action) TargetThis() *Action {
	return a.Target("this")
}

// TargetClosest targets the closest ancestor matching selector.
func (a *Action) TargetClosest(selector string) *Action {
	return a.Target("closest " + selector)
}

// Trigger sets hx-trigger, replacing any earlier specification.
func (a *Action) Trigger(value string) *Action {
	a.trigger = value
	return a
}

// Every polls the action at interval d.
func (a *Action) Every(d time.Duration) *Action {
	return a.Trigger(fmt.Sprintf("every %dms", d.Milliseconds()))
}

// DisabledElt disables the matched elements while the request is in flight.
func (a *Action) DisabledElt(selector string) *Action {
	a.disabledElt = selector
	return a
}

// Attrs returns the attributes for use in markup.
func (a *Action) Attrs() templ.Attributes {
	attrs := templ.Attributes{}

	switch a.method {
	case http.MethodGet:
		attrs["hx-get"] = a.URL()
	case http.MethodPut:
		attrs["hx-put"] = a.path
	case http.MethodPatch:
		attrs["hx-patch"] = a.path
	case http.MethodDelete:
		attrs["hx-delete"] = a.path
	default:
		attrs["hx-post"] = a.path
	}
	if a.method != http.MethodGet && a.encoded != "" {
		data, _ := json.Marshal(map[string]string{"p": a.encoded})
		attrs["hx-vals"] = string(data)
	}

	attrs["hx-swap"] = "outerHTML"
	if a.target != "" {
		attrs["hx-target"] = a.target
	}
	if a.trigger != "" {
		attrs["hx-trigger"] = a.trigger
	}
	if a.disabledElt != "" {
		attrs["hx-disabled-elt"] = a.disabledElt
	}
	return attrs
}

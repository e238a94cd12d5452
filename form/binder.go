package form

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/a-h/templ"
)

// Wiring returns the attributes one field's input and wrapper carry,
// typically the HTMX change and blur actions.
type Wiring func(def FieldDef) (input, wrapper templ.Attributes)

// Binder adapts submitted form data to State[V] and State[V] to bound
// fields.
//
//	b := &form.Binder[posts.Values]{
//	    ID:       "post-new",
//	    Fields:   posts.FormFields,
//	    Parse:    posts.ParseValues,
//	    Validate: posts.Validate,
//	}
type Binder[V Record] struct {
	// ID prefixes the element ids of every field.
	ID       string
	Fields   []FieldDef
	Parse    func(url.Values) V
	Validate func(V) Errors
}

// Initial returns the state of a freshly mounted form: empty values,
// nothing touched, errors evaluated.
func (b *Binder[V]) Initial() State[V] {
	return b.eval(url.Values{})
}

// Load reads values and touched markers from r.
func (b *Binder[V]) Load(r *http.Request) (State[V], error) {
	if err := r.ParseForm(); err != nil {
		return State[V]{}, fmt.Errorf("parse form: %w", err)
	}
	return b.eval(r.Form), nil
}

func (b *Binder[V]) eval(data url.Values) State[V] {
	v := b.Parse(data)

	touched := Touched{}
	for _, name := range data[TouchedKey] {
		if b.has(name) {
			touched[name] = true
		}
	}

	errs := b.Validate(v)
	if errs == nil {
		errs = Errors{}
	}
	return State[V]{Values: v, Touched: touched, Errors: errs}
}

// Blur marks name touched.
func (b *Binder[V]) Blur(s State[V], name string) State[V] {
	if !b.has(name) {
		return s
	}
	s.Touched = s.Touched.with(name)
	return s
}

// Submit reports whether s may be submitted. When it may not, every field
// is marked touched so all errors show.
func (b *Binder[V]) Submit(s State[V]) (State[V], bool) {
	if s.Errors.Valid() {
		return s, true
	}
	for _, def := range b.Fields {
		s.Touched = s.Touched.with(def.Name)
	}
	return s, false
}

// Field binds the named field, ok is false for unknown names.
func (b *Binder[V]) Field(s State[V], name string, wire Wiring) (Field, bool) {
	for _, def := range b.Fields {
		if def.Name == name {
			return b.bind(s, def, wire), true
		}
	}
	return Field{}, false
}

// Bind binds every declared field in order.
func (b *Binder[V]) Bind(s State[V], wire Wiring) []Field {
	out := make([]Field, 0, len(b.Fields))
	for _, def := range b.Fields {
		out = append(out, b.bind(s, def, wire))
	}
	return out
}

// InputID is the element id of a field's input.
func (b *Binder[V]) InputID(name string) string {
	return b.ID + "-" + name
}

// WrapperID is the element id of a field's wrapper.
func (b *Binder[V]) WrapperID(name string) string {
	return b.ID + "-" + name + "-field"
}

func (b *Binder[V]) bind(s State[V], def FieldDef, wire Wiring) Field {
	var input, wrapper templ.Attributes
	if wire != nil {
		input, wrapper = wire(def)
	}
	if wrapper == nil {
		wrapper = templ.Attributes{}
	}
	wrapper["id"] = b.WrapperID(def.Name)

	return Field{
		Label: def.Label,
		Input: Input{
			Name:  def.Name,
			ID:    b.InputID(def.Name),
			Value: s.Values.Field(def.Name),
			Attrs: input,
		},
		Meta: Meta{
			Touched: s.Touched[def.Name],
			Error:   s.Errors[def.Name],
		},
		Attrs: wrapper,
	}
}

func (b *Binder[V]) has(name string) bool {
	for _, def := range b.Fields {
		if def.Name == name {
			return true
		}
	}
	return false
}

// with returns a copy of t with name set, leaving t untouched.
func (t Touched) with(name string) Touched {
	out := make(Touched, len(t)+1)
	for k, v := range t {
		out[k] = v
	}
	out[name] = true
	return out
}

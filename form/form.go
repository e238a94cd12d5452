// Package form binds submitted HTML forms to typed values, tracks which
// fields the user has visited and renders bound fields.
//
// The browser's form is the storage: every change, blur and submit request
// carries the current values plus one hidden TouchedKey input per visited
// field, and Binder.Load rebuilds the State from them.
package form

import "github.com/a-h/templ"

// TouchedKey is the form key carrying visited field names.
const TouchedKey = "_touched"

// Errors maps a field name to its validation message. Only invalid fields
// have entries.
type Errors map[string]string

// Valid reports whether there are no errors.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Touched marks the fields the user has left at least once.
type Touched map[string]bool

// Record is a typed value set a form binds to.
type Record interface {
	// Field returns the current value of the named field, "" if unknown.
	Field(name string) string
}

// FieldDef declares one field of a form.
type FieldDef struct {
	Name  string
	Label string
}

// Meta is the per-field interaction metadata.
type Meta struct {
	Touched bool
	Error   string
}

// Input is what a field's <input> needs.
type Input struct {
	Name  string
	ID    string
	Value string
	Attrs templ.Attributes
}

// Field is a bound field descriptor, built per render.
type Field struct {
	Label string
	Input Input
	Meta  Meta
	// Attrs go on the wrapping element; they include its id.
	Attrs templ.Attributes
}

// State is a form's values, touched set and current errors.
type State[V Record] struct {
	Values  V
	Touched Touched
	Errors  Errors
}

// ClassName is "form-group has-danger" when the field is touched and
// invalid, "form-group" otherwise.
func ClassName(m Meta) string {
	if m.Touched && m.Error != "" {
		return "form-group has-danger"
	}
	return "form-group"
}

// HelpText is the text-help slot content: the error once touched.
func HelpText(m Meta) string {
	if m.Touched {
		return m.Error
	}
	return ""
}

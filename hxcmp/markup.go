package hxcmp

import "github.com/a-h/templ"

// Merge returns a new attribute set with later sets overriding earlier ones.
func Merge(sets ...templ.Attributes) templ.Attributes {
	out := templ.Attributes{}
	for _, set := range sets {
		for k, v := range set {
			out[k] = v
		}
	}
	return out
}

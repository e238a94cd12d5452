package form

import (
	"github.com/a-h/templ"

	"github.com/pthm/postboard/hxcmp"
)

// wrapperAttrs are the field wrapper's wiring plus its validation class.
func wrapperAttrs(f Field) templ.Attributes {
	return hxcmp.Merge(f.Attrs, templ.Attributes{"class": ClassName(f.Meta)})
}

// inputAttrs are the input's wiring with the fixed text-input attributes
// taking precedence.
func inputAttrs(in Input) templ.Attributes {
	return hxcmp.Merge(in.Attrs, templ.Attributes{
		"type":  "text",
		"class": "form-control",
		"id":    in.ID,
		"name":  in.Name,
		"value": in.Value,
	})
}

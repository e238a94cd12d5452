package hxcmp

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func TestMerge(t *testing.T) {
	base := templ.Attributes{"class": "a", "id": "x"}
	got := Merge(base, templ.Attributes{"class": "b"}, nil)

	if got["class"] != "b" || got["id"] != "x" {
		t.Errorf("Merge() = %v", got)
	}
	if base["class"] != "a" {
		t.Error("Merge mutated its input")
	}
}

func TestMergeRendersSorted(t *testing.T) {
	attrs := Merge(templ.Attributes{"name": "title", "hidden": false}, templ.Attributes{"disabled": true})

	var b strings.Builder
	if err := templ.RenderAttributes(context.Background(), &b, attrs); err != nil {
		t.Fatalf("RenderAttributes() error = %v", err)
	}
	if want := ` disabled name="title"`; b.String() != want {
		t.Errorf("RenderAttributes() = %q, want %q", b.String(), want)
	}
}

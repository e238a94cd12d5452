package posts

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pthm/postboard/form"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		in   Values
		want form.Errors
	}{
		{
			name: "all empty",
			in:   Values{},
			want: form.Errors{
				FieldTitle:   "Please enter a post title.",
				FieldContent: "Please enter post content.",
			},
		},
		{
			name: "valid without categories",
			in:   Values{Title: "Hi", Content: "Body"},
			want: form.Errors{},
		},
		{
			name: "missing content",
			in:   Values{Title: "Hi", Categories: "x"},
			want: form.Errors{FieldContent: "Please enter post content."},
		},
		{
			name: "missing title",
			in:   Values{Content: "Body"},
			want: form.Errors{FieldTitle: "Please enter a post title."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(got, Validate(tt.in)); diff != "" {
				t.Errorf("Validate() not deterministic:\n%s", diff)
			}
		})
	}
}

func TestValidateWhitespaceIsNotEmpty(t *testing.T) {
	if errs := Validate(Values{Title: " ", Content: " "}); !errs.Valid() {
		t.Errorf("Validate() = %v, want no errors", errs)
	}
}

func TestParseValues(t *testing.T) {
	got := ParseValues(url.Values{
		FieldTitle:   {"Hi"},
		FieldContent: {"Body"},
		"other":      {"x"},
	})
	want := Values{Title: "Hi", Content: "Body"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseValues() mismatch (-want +got):\n%s", diff)
	}
}

func TestValuesField(t *testing.T) {
	v := Values{Title: "T", Categories: "C", Content: "B"}
	for name, want := range map[string]string{
		FieldTitle:      "T",
		FieldCategories: "C",
		FieldContent:    "B",
		"nope":          "",
	} {
		if got := v.Field(name); got != want {
			t.Errorf("Field(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestSelectPost(t *testing.T) {
	s := State{ByID: map[string]Post{"42": {ID: "42", Title: "Hi"}}}

	got := SelectPost(s, "42")
	if diff := cmp.Diff(&Post{ID: "42", Title: "Hi"}, got); diff != "" {
		t.Errorf("SelectPost() mismatch (-want +got):\n%s", diff)
	}

	got.Title = "changed"
	if s.ByID["42"].Title != "Hi" {
		t.Error("SelectPost returned a reference into state")
	}

	if SelectPost(s, "7") != nil {
		t.Error("SelectPost() for absent id should be nil")
	}
	if SelectPost(State{}, "42") != nil {
		t.Error("SelectPost() on empty state should be nil")
	}
}

func TestSelectPosts(t *testing.T) {
	s := State{ByID: map[string]Post{
		"b": {ID: "b"},
		"a": {ID: "a"},
		"c": {ID: "c"},
	}}
	want := []Post{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	if diff := cmp.Diff(want, SelectPosts(s)); diff != "" {
		t.Errorf("SelectPosts() mismatch (-want +got):\n%s", diff)
	}
	if got := SelectPosts(State{}); len(got) != 0 {
		t.Errorf("SelectPosts(empty) = %v", got)
	}
}

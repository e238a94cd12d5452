// Package posts holds the post model, its form values and validation, the
// global state shape with its projections, and the capability interfaces
// components are built against.
package posts

import (
	"context"
	"net/url"
	"sort"

	"github.com/pthm/postboard/form"
)

// Field names.
const (
	FieldTitle      = "title"
	FieldCategories = "categories"
	FieldContent    = "content"
)

// Post is a stored post.
type Post struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Categories string `json:"categories"`
	Content    string `json:"content"`
}

// Values are the create form's values. Absent fields are empty.
type Values struct {
	Title      string `json:"title"`
	Categories string `json:"categories"`
	Content    string `json:"content"`
}

// Field implements form.Record.
func (v Values) Field(name string) string {
	switch name {
	case FieldTitle:
		return v.Title
	case FieldCategories:
		return v.Categories
	case FieldContent:
		return v.Content
	}
	return ""
}

// ParseValues reads Values from submitted form data.
func ParseValues(data url.Values) Values {
	return Values{
		Title:      data.Get(FieldTitle),
		Categories: data.Get(FieldCategories),
		Content:    data.Get(FieldContent),
	}
}

// FormFields are the create form's fields in display order.
var FormFields = []form.FieldDef{
	{Name: FieldTitle, Label: "Title"},
	{Name: FieldCategories, Label: "Categories"},
	{Name: FieldContent, Label: "Post Content"},
}

// Validate returns an entry for each invalid field. Categories are never
// validated.
func Validate(v Values) form.Errors {
	errs := form.Errors{}
	if v.Title == "" {
		errs[FieldTitle] = "Please enter a post title."
	}
	if v.Content == "" {
		errs[FieldContent] = "Please enter post content."
	}
	return errs
}

// State is the global posts state: posts keyed by id.
type State struct {
	ByID map[string]Post
	// Listed is set once the whole collection has been fetched.
	Listed bool
}

// StateReader returns the current state snapshot.
type StateReader interface {
	State() State
}

// SelectPost projects the post with id, nil when absent.
func SelectPost(s State, id string) *Post {
	p, ok := s.ByID[id]
	if !ok {
		return nil
	}
	return &p
}

// SelectPosts projects every post ordered by id.
func SelectPosts(s State) []Post {
	out := make([]Post, 0, len(s.ByID))
	for _, p := range s.ByID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Creator submits a new post. onComplete runs only after a successful
// write.
type Creator interface {
	CreatePost(ctx context.Context, v Values, onComplete func())
}

// Fetcher requests a post. The result arrives through the state, not a
// return value.
type Fetcher interface {
	FetchPost(ctx context.Context, id string)
}

// Lister requests every post into the state.
type Lister interface {
	FetchPosts(ctx context.Context)
}

// Deleter removes a post. onComplete runs only after a successful delete.
type Deleter interface {
	DeletePost(ctx context.Context, id string, onComplete func())
}

// Actions is the full capability set.
type Actions interface {
	Creator
	Fetcher
	Lister
	Deleter
}

package form

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	Subject string
	Body    string
}

func (n note) Field(name string) string {
	switch name {
	case "subject":
		return n.Subject
	case "body":
		return n.Body
	}
	return ""
}

func noteBinder() *Binder[note] {
	return &Binder[note]{
		ID:     "note",
		Fields: []FieldDef{{Name: "subject", Label: "Subject"}, {Name: "body", Label: "Body"}},
		Parse: func(v url.Values) note {
			return note{Subject: v.Get("subject"), Body: v.Get("body")}
		},
		Validate: func(n note) Errors {
			errs := Errors{}
			if n.Subject == "" {
				errs["subject"] = "Subject required"
			}
			return errs
		},
	}
}

func postForm(t *testing.T, data url.Values) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(data.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, c.Render(context.Background(), &b))
	return b.String()
}

func TestClassName(t *testing.T) {
	assert.Equal(t, "form-group", ClassName(Meta{}))
	assert.Equal(t, "form-group", ClassName(Meta{Error: "bad"}))
	assert.Equal(t, "form-group", ClassName(Meta{Touched: true}))
	assert.Equal(t, "form-group has-danger", ClassName(Meta{Touched: true, Error: "bad"}))
}

func TestHelpText(t *testing.T) {
	assert.Equal(t, "", HelpText(Meta{Error: "bad"}))
	assert.Equal(t, "bad", HelpText(Meta{Touched: true, Error: "bad"}))
	assert.Equal(t, "", HelpText(Meta{Touched: true}))
}

func TestBinderInitial(t *testing.T) {
	s := noteBinder().Initial()

	assert.Equal(t, note{}, s.Values)
	assert.Empty(t, s.Touched)
	assert.Equal(t, Errors{"subject": "Subject required"}, s.Errors)
}

func TestBinderLoad(t *testing.T) {
	b := noteBinder()
	r := postForm(t, url.Values{
		"subject":  {"Hi"},
		"body":     {"text"},
		TouchedKey: {"body", "unknown"},
	})

	s, err := b.Load(r)
	require.NoError(t, err)
	assert.Equal(t, note{Subject: "Hi", Body: "text"}, s.Values)
	assert.Equal(t, Touched{"body": true}, s.Touched)
	assert.True(t, s.Errors.Valid())
}

func TestBinderBlur(t *testing.T) {
	b := noteBinder()
	s := b.Initial()

	blurred := b.Blur(s, "subject")
	assert.True(t, blurred.Touched["subject"])
	assert.False(t, s.Touched["subject"], "Blur must not mutate its input")

	same := b.Blur(s, "nope")
	assert.Empty(t, same.Touched)
}

func TestBinderSubmit(t *testing.T) {
	b := noteBinder()

	s, ok := b.Submit(b.Initial())
	assert.False(t, ok)
	assert.Equal(t, Touched{"subject": true, "body": true}, s.Touched)

	valid := b.eval(url.Values{"subject": {"Hi"}})
	s, ok = b.Submit(valid)
	assert.True(t, ok)
	assert.Empty(t, s.Touched)
}

func TestBinderBind(t *testing.T) {
	b := noteBinder()
	s := b.Blur(b.Initial(), "subject")

	wire := func(def FieldDef) (templ.Attributes, templ.Attributes) {
		return templ.Attributes{"data-in": def.Name}, templ.Attributes{"data-wrap": def.Name}
	}
	fields := b.Bind(s, wire)
	require.Len(t, fields, 2)

	subject := fields[0]
	assert.Equal(t, "Subject", subject.Label)
	assert.Equal(t, Input{Name: "subject", ID: "note-subject", Value: "", Attrs: templ.Attributes{"data-in": "subject"}}, subject.Input)
	assert.Equal(t, Meta{Touched: true, Error: "Subject required"}, subject.Meta)
	assert.Equal(t, templ.Attributes{"data-wrap": "subject", "id": "note-subject-field"}, subject.Attrs)

	body, ok := b.Field(s, "body", nil)
	require.True(t, ok)
	assert.Equal(t, Meta{}, body.Meta)
	assert.Equal(t, "note-body-field", body.Attrs["id"])

	_, ok = b.Field(s, "missing", nil)
	assert.False(t, ok)
}

func TestRenderFieldUntouched(t *testing.T) {
	html := render(t, RenderField(Field{
		Label: "Title",
		Input: Input{Name: "title", ID: "f-title", Value: `a "quoted" <b>`},
		Meta:  Meta{Error: "Please enter a post title."},
		Attrs: templ.Attributes{"id": "f-title-field"},
	}))

	assert.Contains(t, html, `<div class="form-group" id="f-title-field">`)
	assert.Contains(t, html, `<label for="f-title">Title</label> <input`)
	assert.Contains(t, html, `value="a &#34;quoted&#34; &lt;b&gt;"`)
	assert.Contains(t, html, `<div class="text-help"></div>`)
	assert.NotContains(t, html, "Please enter a post title.")
	assert.NotContains(t, html, TouchedKey)
}

func TestRenderFieldTouchedWithError(t *testing.T) {
	html := render(t, RenderField(Field{
		Label: "Title",
		Input: Input{Name: "title", ID: "f-title"},
		Meta:  Meta{Touched: true, Error: "Please enter a post title."},
	}))

	assert.Contains(t, html, `class="form-group has-danger"`)
	assert.Contains(t, html, `<div class="text-help">Please enter a post title.</div>`)
	assert.Contains(t, html, `<input type="hidden" name="_touched" value="title">`)
}

func TestRenderFieldTouchedValid(t *testing.T) {
	html := render(t, RenderField(Field{
		Label: "Title",
		Input: Input{Name: "title", ID: "f-title", Value: "Hi"},
		Meta:  Meta{Touched: true},
	}))

	assert.Contains(t, html, `<div class="form-group">`)
	assert.Contains(t, html, `<div class="text-help"></div>`)
}

func TestRenderFieldInputAttrs(t *testing.T) {
	html := render(t, RenderField(Field{
		Input: Input{Name: "title", ID: "f-title", Attrs: templ.Attributes{"hx-post": "/x", "class": "ignored"}},
	}))

	assert.Contains(t, html, `<input class="form-control" hx-post="/x" id="f-title" name="title" type="text" value="">`)
}

func TestRenderFieldIsPure(t *testing.T) {
	f := Field{Label: "Body", Input: Input{Name: "body", ID: "b"}, Meta: Meta{Touched: true, Error: "x"}}
	assert.Equal(t, render(t, RenderField(f)), render(t, RenderField(f)))
}

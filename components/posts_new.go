package components

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/pthm/postboard/form"
	"github.com/pthm/postboard/hxcmp"
	"github.com/pthm/postboard/posts"
)

// NewProps are the create form's props. Field names the single field block
// a change or blur re-renders; empty means the whole form.
type NewProps struct {
	Field string `msgpack:"f,omitempty"`

	State form.State[posts.Values] `msgpack:"-"`
}

// PostsNew is the create-post form.
type PostsNew struct {
	*hxcmp.Component[NewProps]
	creator posts.Creator
	binder  *form.Binder[posts.Values]
	opts    Options
}

// NewPostsNew returns the form, submitting through creator.
func NewPostsNew(creator posts.Creator, opts Options) *PostsNew {
	c := &PostsNew{
		Component: hxcmp.New[NewProps]("postsnew"),
		creator:   creator,
		binder: &form.Binder[posts.Values]{
			ID:       "post-new",
			Fields:   posts.FormFields,
			Parse:    posts.ParseValues,
			Validate: posts.Validate,
		},
		opts: opts,
	}
	c.Action("change", c.handleChange)
	c.Action("blur", c.handleBlur)
	c.Action("submit", c.handleSubmit)
	return c
}

// Change re-evaluates the form and re-renders field's block.
func (c *PostsNew) Change(field string) *hxcmp.Action {
	return c.Call("change", NewProps{Field: field})
}

// Blur marks field touched and re-renders its block.
func (c *PostsNew) Blur(field string) *hxcmp.Action {
	return c.Call("blur", NewProps{Field: field})
}

// Submit validates and, when valid, creates the post.
func (c *PostsNew) Submit() *hxcmp.Action {
	return c.Call("submit", NewProps{})
}

// Mount renders a fresh form.
func (c *PostsNew) Mount(ctx context.Context) templ.Component {
	var p NewProps
	_ = c.Hydrate(ctx, &p)
	return c.Render(ctx, p)
}

// Hydrate starts every request from an empty form; handlers replace the
// state with what the browser posted.
func (c *PostsNew) Hydrate(ctx context.Context, p *NewProps) error {
	p.State = c.binder.Initial()
	return nil
}

func (c *PostsNew) handleChange(ctx context.Context, p NewProps, r *http.Request) hxcmp.Result[NewProps] {
	s, err := c.binder.Load(r)
	if err != nil {
		return hxcmp.Err(p, err)
	}
	p.State = s
	return hxcmp.OK(p)
}

// handleBlur marks the field touched so its error shows.
func (c *PostsNew) handleBlur(ctx context.Context, p NewProps, r *http.Request) hxcmp.Result[NewProps] {
	s, err := c.binder.Load(r)
	if err != nil {
		return hxcmp.Err(p, err)
	}
	p.State = c.binder.Blur(s, p.Field)
	return hxcmp.OK(p)
}

// handleSubmit shows every error, or creates the post and navigates to the
// index once the write has succeeded.
func (c *PostsNew) handleSubmit(ctx context.Context, p NewProps, r *http.Request) hxcmp.Result[NewProps] {
	s, err := c.binder.Load(r)
	if err != nil {
		return hxcmp.Err(p, err)
	}
	s, ok := c.binder.Submit(s)
	p.Field = ""
	p.State = s
	if !ok {
		return hxcmp.OK(p)
	}

	nav := hxcmp.NewNavigation()
	c.creator.CreatePost(ctx, s.Values, func() { nav.Push("/") })
	return hxcmp.Follow(p, nav)
}

// Render produces the whole form, or a single field block after a change or
// blur.
func (c *PostsNew) Render(ctx context.Context, p NewProps) templ.Component {
	if p.Field != "" {
		if f, ok := c.binder.Field(p.State, p.Field, c.wire); ok {
			return form.RenderField(f)
		}
	}
	return postsNewTemplate(c, p)
}

// HXServeHTTP serves the form's actions.
func (c *PostsNew) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.Serve(w, r, c)
}

// formAttrs wire the form to submit, replacing itself with the response.
func (c *PostsNew) formAttrs() templ.Attributes {
	submit := c.Submit().TargetThis()
	if c.opts.GuardDuplicateSubmits {
		submit.DisabledElt("find button")
	}
	return hxcmp.Merge(submit.Attrs(), templ.Attributes{"id": c.binder.ID})
}

// wire attaches the change action to a field's input and the blur action to
// its wrapper.
func (c *PostsNew) wire(def form.FieldDef) (input, wrapper templ.Attributes) {
	input = c.Change(def.Name).
		Target("#" + c.binder.WrapperID(def.Name)).
		Trigger("keyup changed delay:300ms").
		Attrs()
	wrapper = c.Blur(def.Name).
		TargetThis().
		Trigger("focusout").
		Attrs()
	return input, wrapper
}

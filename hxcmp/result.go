package hxcmp

// Result is returned from action handlers to describe the response.
//
//	return hxcmp.OK(props)                      // re-render with props
//	return hxcmp.Err(props, err)                // hand err to OnError
//	return hxcmp.Redirect[Props]("/")           // HX-Redirect
//
// Serve applies the Result after the handler returns.
type Result[P any] struct {
	props    P
	err      error
	redirect string
}

// OK re-renders the component with props.
func OK[P any](props P) Result[P] {
	return Result[P]{props: props}
}

// Err passes err to the registry's OnError handler.
func Err[P any](props P, err error) Result[P] {
	return Result[P]{props: props, err: err}
}

// Redirect navigates the browser via the HX-Redirect header. Nothing is rendered.
func Redirect[P any](url string) Result[P] {
	return Result[P]{redirect: url}
}

// GetProps returns the props.
func (r Result[P]) GetProps() P {
	return r.props
}

// GetErr returns the error.
func (r Result[P]) GetErr() error {
	return r.err
}

// GetRedirect returns the redirect URL.
func (r Result[P]) GetRedirect() string {
	return r.redirect
}

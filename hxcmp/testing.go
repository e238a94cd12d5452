package hxcmp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

// TestResult is the recorded outcome of a component request.
type TestResult struct {
	HTML        string
	StatusCode  int
	Headers     http.Header
	RedirectURL string
}

// TestAction sends an HTMX request to comp and records the response.
// formData is sent as an urlencoded body for POST, PUT and PATCH and as
// query parameters otherwise, matching what HTMX does.
func TestAction(comp HXComponent, actionURL, method string, formData map[string]string) (*TestResult, error) {
	return TestActionWithContext(context.Background(), comp, actionURL, method, formData)
}

// TestActionWithContext is TestAction with a caller-supplied context.
func TestActionWithContext(ctx context.Context, comp HXComponent, actionURL, method string, formData map[string]string) (*TestResult, error) {
	form := url.Values{}
	for k, v := range formData {
		form.Set(k, v)
	}

	var body *strings.Reader
	if hasBody(method) {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
		if len(form) > 0 {
			u, err := url.Parse(actionURL)
			if err != nil {
				return nil, err
			}
			q := u.Query()
			for k, vs := range form {
				q[k] = vs
			}
			u.RawQuery = q.Encode()
			actionURL = u.String()
		}
	}

	req := httptest.NewRequest(method, actionURL, body).WithContext(ctx)
	req.Header.Set("HX-Request", "true")
	if hasBody(method) {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	rec := httptest.NewRecorder()
	comp.HXServeHTTP(rec, req)
	return record(rec), nil
}

// TestGet sends a GET request.
func TestGet(comp HXComponent, url string) (*TestResult, error) {
	return TestAction(comp, url, http.MethodGet, nil)
}

// TestPost sends a POST request with form data.
func TestPost(comp HXComponent, url string, formData map[string]string) (*TestResult, error) {
	return TestAction(comp, url, http.MethodPost, formData)
}

// TestCall invokes a built Action the way HTMX would, merging its props with
// formData.
//
//	result, _ := hxcmp.TestCall(comp, comp.Delete(props), nil)
func TestCall(comp HXComponent, action *Action, formData map[string]string) (*TestResult, error) {
	data := make(map[string]string, len(formData)+1)
	for k, v := range formData {
		data[k] = v
	}
	if action.Encoded() != "" {
		data["p"] = action.Encoded()
	}
	return TestAction(comp, action.Path(), action.Method(), data)
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

func record(rec *httptest.ResponseRecorder) *TestResult {
	return &TestResult{
		HTML:        rec.Body.String(),
		StatusCode:  rec.Code,
		Headers:     rec.Header(),
		RedirectURL: rec.Header().Get("HX-Redirect"),
	}
}

// HTMLContains checks if the HTML contains substr.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains every substring.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// WasRedirected checks if the response carried HX-Redirect.
func (r *TestResult) WasRedirected() bool {
	return r.RedirectURL != ""
}

// RedirectedTo checks the HX-Redirect target.
func (r *TestResult) RedirectedTo(url string) bool {
	return r.RedirectURL == url
}

// IsOK checks for a 200 status.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus checks the status code.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

package hxcmp

import (
	"io"
	"net/http"
	"testing"
)

// recordingComponent captures the last request it served.
type recordingComponent struct {
	handler func(w http.ResponseWriter, r *http.Request)
	last    *http.Request
	body    string
}

func (m *recordingComponent) HXPrefix() string {
	return "/_c/rec"
}

func (m *recordingComponent) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.last = r
	data, _ := io.ReadAll(r.Body)
	m.body = string(data)
	if m.handler != nil {
		m.handler(w, r)
	}
}

func TestTestActionGetUsesQuery(t *testing.T) {
	comp := &recordingComponent{}

	if _, err := TestAction(comp, "/_c/rec/?p=abc", http.MethodGet, map[string]string{"q": "go"}); err != nil {
		t.Fatalf("TestAction() error = %v", err)
	}
	if comp.last.Method != http.MethodGet {
		t.Errorf("method = %s, want GET", comp.last.Method)
	}
	if q := comp.last.URL.Query(); q.Get("p") != "abc" || q.Get("q") != "go" {
		t.Errorf("query = %v, want p and q", q)
	}
	if comp.body != "" {
		t.Errorf("GET body = %q, want empty", comp.body)
	}
}

func TestTestActionPostUsesForm(t *testing.T) {
	comp := &recordingComponent{}

	if _, err := TestPost(comp, "/_c/rec/submit", map[string]string{"title": "Hi"}); err != nil {
		t.Fatalf("TestPost() error = %v", err)
	}
	if comp.last.Header.Get("HX-Request") != "true" {
		t.Error("HX-Request header not set")
	}
	if ct := comp.last.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q", ct)
	}
	if comp.body != "title=Hi" {
		t.Errorf("body = %q, want title=Hi", comp.body)
	}
}

func TestTestActionRecordsResponse(t *testing.T) {
	comp := &recordingComponent{
		handler: func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("HX-Redirect", "/posts")
			w.WriteHeader(http.StatusAccepted)
			_, _ = io.WriteString(w, `<div class="post">Hello</div>`)
		},
	}

	result, err := TestGet(comp, "/_c/rec/")
	if err != nil {
		t.Fatalf("TestGet() error = %v", err)
	}
	if !result.HasStatus(http.StatusAccepted) || result.IsOK() {
		t.Errorf("status = %d, want 202", result.StatusCode)
	}
	if !result.WasRedirected() || !result.RedirectedTo("/posts") || result.RedirectedTo("/") {
		t.Errorf("redirect = %q, want /posts", result.RedirectURL)
	}
	if !result.HTMLContainsAll(`class="post"`, "Hello") || result.HTMLContains("Missing") {
		t.Errorf("HTML = %s", result.HTML)
	}
}

func TestTestCallCarriesProps(t *testing.T) {
	comp := &recordingComponent{}

	a := NewAction("/_c/rec/delete", http.MethodDelete, "enc")
	if _, err := TestCall(comp, a, map[string]string{"x": "1"}); err != nil {
		t.Fatalf("TestCall() error = %v", err)
	}
	if comp.last.Method != http.MethodDelete {
		t.Errorf("method = %s, want DELETE", comp.last.Method)
	}
	if q := comp.last.URL.Query(); q.Get("p") != "enc" || q.Get("x") != "1" {
		t.Errorf("query = %v, want props and form data", q)
	}
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pthm/postboard/posts"
)

// Client is a Backend over a remote posts API:
//
//	GET    {base}/posts?key=K
//	POST   {base}/posts?key=K
//	GET    {base}/posts/{id}?key=K
//	DELETE {base}/posts/{id}?key=K
type Client struct {
	base string
	key  string
	http *http.Client
}

// NewClient returns a client for base. A nil hc uses http.DefaultClient.
func NewClient(base, key string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(base, "/"), key: key, http: hc}
}

// ListPosts fetches GET posts.
func (c *Client) ListPosts(ctx context.Context) ([]posts.Post, error) {
	var out []posts.Post
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPost fetches GET posts/{id}. A 404 maps to ErrNotFound.
func (c *Client) GetPost(ctx context.Context, id string) (posts.Post, error) {
	var out posts.Post
	err := c.do(ctx, http.MethodGet, "/posts/"+url.PathEscape(id), nil, &out)
	return out, err
}

// CreatePost sends v as POST posts and returns the stored post.
func (c *Client) CreatePost(ctx context.Context, v posts.Values) (posts.Post, error) {
	var out posts.Post
	err := c.do(ctx, http.MethodPost, "/posts", v, &out)
	return out, err
}

// DeletePost sends DELETE posts/{id}. A 404 maps to ErrNotFound.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil, nil)
}

func (c *Client) endpoint(path string) string {
	u := c.base + path
	if c.key != "" {
		u += "?key=" + url.QueryEscape(c.key)
	}
	return u
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", method, path, err)
	}
	return nil
}

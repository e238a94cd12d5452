package actions

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pthm/postboard/api"
	"github.com/pthm/postboard/posts"
	"github.com/pthm/postboard/store"
)

// mockBackend implements api.Backend using testify/mock
type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) ListPosts(ctx context.Context) ([]posts.Post, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]posts.Post)
	return ps, args.Error(1)
}

func (m *mockBackend) GetPost(ctx context.Context, id string) (posts.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(posts.Post), args.Error(1)
}

func (m *mockBackend) CreatePost(ctx context.Context, v posts.Values) (posts.Post, error) {
	args := m.Called(ctx, v)
	return args.Get(0).(posts.Post), args.Error(1)
}

func (m *mockBackend) DeletePost(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newDispatcher(b api.Backend) (*Dispatcher, *store.Store, *bytes.Buffer) {
	var logs bytes.Buffer
	s := store.New()
	d := New(b, s,
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		WithTimeout(time.Second),
	)
	return d, s, &logs
}

func TestCreatePostCompletes(t *testing.T) {
	v := posts.Values{Title: "Hi", Content: "Body"}
	b := &mockBackend{}
	b.On("CreatePost", mock.Anything, v).Return(posts.Post{ID: "1", Title: "Hi", Content: "Body"}, nil).Once()

	d, s, _ := newDispatcher(b)
	calls := 0
	d.CreatePost(context.Background(), v, func() { calls++ })

	assert.Equal(t, 1, calls)
	assert.NotNil(t, posts.SelectPost(s.State(), "1"))
	b.AssertExpectations(t)
}

func TestCreatePostFailureSkipsCompletion(t *testing.T) {
	b := &mockBackend{}
	b.On("CreatePost", mock.Anything, mock.Anything).Return(posts.Post{}, errors.New("unreachable"))

	d, s, logs := newDispatcher(b)
	called := false
	d.CreatePost(context.Background(), posts.Values{Title: "Hi"}, func() { called = true })

	assert.False(t, called)
	assert.Empty(t, s.State().ByID)
	assert.Contains(t, logs.String(), "create post failed")
	assert.Contains(t, logs.String(), "unreachable")
}

func TestDeletePost(t *testing.T) {
	b := &mockBackend{}
	b.On("DeletePost", mock.Anything, "42").Return(nil).Twice()
	b.On("DeletePost", mock.Anything, "7").Return(api.ErrNotFound).Once()

	d, s, logs := newDispatcher(b)
	s.Dispatch(store.PostFetched{Post: posts.Post{ID: "42"}})

	calls := 0
	d.DeletePost(context.Background(), "42", func() { calls++ })
	assert.Equal(t, 1, calls)
	assert.Nil(t, posts.SelectPost(s.State(), "42"))

	d.DeletePost(context.Background(), "7", func() { calls++ })
	assert.Equal(t, 1, calls)
	assert.Contains(t, logs.String(), "delete post failed")

	d.DeletePost(context.Background(), "42", nil)
	b.AssertExpectations(t)
}

func TestFetchPostLandsInStore(t *testing.T) {
	b := &mockBackend{}
	b.On("GetPost", mock.Anything, "42").Return(posts.Post{ID: "42", Title: "Hi"}, nil).Once()

	d, s, _ := newDispatcher(b)
	d.FetchPost(context.Background(), "42")
	d.Wait()

	p := posts.SelectPost(s.State(), "42")
	require.NotNil(t, p)
	assert.Equal(t, "Hi", p.Title)
	b.AssertExpectations(t)
}

func TestFetchPostSurvivesRequestCancel(t *testing.T) {
	release := make(chan struct{})
	b := &mockBackend{}
	b.On("GetPost", mock.Anything, "42").
		Run(func(args mock.Arguments) {
			<-release
			ctx := args.Get(0).(context.Context)
			assert.NoError(t, ctx.Err())
		}).
		Return(posts.Post{ID: "42"}, nil)

	d, s, _ := newDispatcher(b)
	ctx, cancel := context.WithCancel(context.Background())
	d.FetchPost(ctx, "42")
	cancel()
	close(release)
	d.Wait()

	assert.NotNil(t, posts.SelectPost(s.State(), "42"))
}

func TestFetchPostNotFoundLeavesState(t *testing.T) {
	b := &mockBackend{}
	b.On("GetPost", mock.Anything, "nope").Return(posts.Post{}, api.ErrNotFound)

	d, s, logs := newDispatcher(b)
	d.FetchPost(context.Background(), "nope")
	d.Wait()

	assert.Empty(t, s.State().ByID)
	assert.Contains(t, logs.String(), "fetch post failed")
}

func TestFetchPosts(t *testing.T) {
	b := &mockBackend{}
	b.On("ListPosts", mock.Anything).Return([]posts.Post{{ID: "a"}, {ID: "b"}}, nil).Once()
	b.On("ListPosts", mock.Anything).Return(nil, errors.New("down")).Once()

	d, s, logs := newDispatcher(b)
	d.FetchPosts(context.Background())
	d.Wait()
	assert.Len(t, s.State().ByID, 2)

	d.FetchPosts(context.Background())
	d.Wait()
	assert.Len(t, s.State().ByID, 2, "failed fetch keeps previous state")
	assert.Contains(t, logs.String(), "fetch posts failed")
}

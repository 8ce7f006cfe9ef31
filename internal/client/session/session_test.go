package session

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/bridgehq/bridge/internal/client/models"
	"github.com/bridgehq/bridge/internal/common"
)

type fakeStore struct {
	data    map[string]string
	getErr  error
	setErr  error
	cleared bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}}
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return "", common.ErrNotFound
	}
	return v, nil
}

func (f *fakeStore) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func (f *fakeStore) Clear(ctx context.Context) error {
	f.cleared = true
	f.data = map[string]string{}
	return nil
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestEstablishAndAttach(t *testing.T) {
	store := newFakeStore()
	s := New(store)

	user := models.User{ID: "u1", FirstName: "Ada", Email: "ada@example.com"}
	require.NoError(t, s.Establish(context.Background(), "tok-1", user))
	require.True(t, s.Authenticated())
	require.Equal(t, user, s.User())

	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	s.Attach(req)
	require.Equal(t, "Bearer tok-1", req.Header.Get("Authorization"))

	// Persisted for the next run.
	require.Equal(t, "tok-1", store.data["token"])
	require.Contains(t, store.data["user"], `"id":"u1"`)
}

func TestAttach_NoopWhenUnauthenticated(t *testing.T) {
	s := New(nil)
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	s.Attach(req)
	require.Empty(t, req.Header.Get("Authorization"))
}

func TestInit_RestoresPersistedSession(t *testing.T) {
	store := newFakeStore()
	first := New(store)
	require.NoError(t, first.Establish(context.Background(), "tok-1",
		models.User{ID: "u1", FirstName: "Ada"}))

	second := New(store)
	require.NoError(t, second.Init(context.Background()))
	require.True(t, second.Authenticated())
	require.Equal(t, "u1", second.User().ID)
}

func TestInit_MissingSessionIsNotAnError(t *testing.T) {
	s := New(newFakeStore())
	require.NoError(t, s.Init(context.Background()))
	require.False(t, s.Authenticated())
}

func TestInit_StoreFailurePropagates(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("disk error")
	s := New(store)
	require.ErrorContains(t, s.Init(context.Background()), "load session")
}

func TestExpired(t *testing.T) {
	s := New(nil)
	require.True(t, s.Expired(), "no token counts as expired")

	require.NoError(t, s.Establish(context.Background(), signedToken(t, time.Now().Add(time.Hour)), models.User{}))
	require.False(t, s.Expired())

	require.NoError(t, s.Establish(context.Background(), signedToken(t, time.Now().Add(-time.Hour)), models.User{}))
	require.True(t, s.Expired())

	require.NoError(t, s.Establish(context.Background(), "not-a-jwt", models.User{}))
	require.True(t, s.Expired(), "unparseable token counts as expired")
}

func TestClear(t *testing.T) {
	store := newFakeStore()
	s := New(store)
	require.NoError(t, s.Establish(context.Background(), "tok-1", models.User{ID: "u1"}))

	require.NoError(t, s.Clear(context.Background()))
	require.False(t, s.Authenticated())
	require.Empty(t, s.User().ID)
	require.True(t, store.cleared)
}

package session

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forum-client/internal/api"
	"forum-client/internal/config"
	"forum-client/internal/models"
)

// fakeCreds doubles as the client's token source and the resolver's
// credential store.
type fakeCreds struct {
	token   string
	cleared bool
}

func (f *fakeCreds) Token() (string, bool) { return f.token, f.token != "" }
func (f *fakeCreds) ClearToken() error {
	f.token = ""
	f.cleared = true
	return nil
}

func newTestResolver(t *testing.T, handler http.Handler, creds *fakeCreds) (*Resolver, *int64) {
	t.Helper()

	var requests int64
	counting := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		handler.ServeHTTP(w, r)
	})

	srv := httptest.NewServer(counting)
	t.Cleanup(srv.Close)

	client, err := api.NewClient(&config.Config{
		BackendURL:  srv.URL,
		HTTPTimeout: 5 * time.Second,
	}, creds)
	require.NoError(t, err)

	return NewResolver(client, creds), &requests
}

func TestResolveActorGuestWithoutCredential(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{}`)
	})

	creds := &fakeCreds{}
	r, requests := newTestResolver(t, handler, creds)

	actor := r.ResolveActor(context.Background())
	assert.Equal(t, models.Guest(), actor)
	assert.False(t, actor.LoggedIn())
	assert.EqualValues(t, 0, atomic.LoadInt64(requests), "guest resolution must not hit the network")
}

func TestResolveActorWithCredential(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me/", r.URL.Path)
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"user":{"user_id":5,"username":"alice","role":"moderator"}}`)
	})

	creds := &fakeCreds{token: "tok123"}
	r, requests := newTestResolver(t, handler, creds)

	actor := r.ResolveActor(context.Background())
	assert.Equal(t, 5, actor.ID)
	assert.Equal(t, "alice", actor.Username)
	assert.Equal(t, models.RoleModerator, actor.Role)

	// Memoized: a second call costs nothing.
	r.ResolveActor(context.Background())
	assert.EqualValues(t, 1, atomic.LoadInt64(requests))
}

func TestResolveActorKeepsCredentialOnTransportFailure(t *testing.T) {
	// Grab a URL that refuses connections.
	srv := httptest.NewServer(http.NotFoundHandler())
	backendURL := srv.URL
	srv.Close()

	creds := &fakeCreds{token: "still-valid"}
	client, err := api.NewClient(&config.Config{
		BackendURL:  backendURL,
		HTTPTimeout: 2 * time.Second,
	}, creds)
	require.NoError(t, err)

	r := NewResolver(client, creds)

	actor := r.ResolveActor(context.Background())
	assert.Equal(t, models.Guest(), actor, "unreachable backend resolves to guest for this invocation")
	assert.False(t, creds.cleared, "a transport failure must not discard the credential")

	token, ok := creds.Token()
	assert.True(t, ok)
	assert.Equal(t, "still-valid", token)
}

func TestResolveActorClearsRejectedCredential(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail":"Not authenticated"}`)
	})

	creds := &fakeCreds{token: "expired"}
	r, _ := newTestResolver(t, handler, creds)

	actor := r.ResolveActor(context.Background())
	assert.Equal(t, models.Guest(), actor, "rejected credential resolves to guest, not an error")
	assert.True(t, creds.cleared, "rejected credential must be discarded")
}

func TestUserDetailsCaches(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/id/9/", r.URL.Path)
		fmt.Fprint(w, `{"user":{"user_id":9,"username":"bob","role":"user"}}`)
	})

	creds := &fakeCreds{}
	r, requests := newTestResolver(t, handler, creds)

	u, err := r.UserDetails(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)
	assert.Equal(t, models.RoleUser, u.Role)

	_, err = r.UserDetails(context.Background(), 9)
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt64(requests), "repeated lookups served from cache")
}

func TestUserDetailsGuestID(t *testing.T) {
	creds := &fakeCreds{}
	r, requests := newTestResolver(t, http.NotFoundHandler(), creds)

	u, err := r.UserDetails(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, models.RoleGuest, u.Role)
	assert.EqualValues(t, 0, atomic.LoadInt64(requests))
}

func TestUserDetailsFailureNotCached(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"user":{"user_id":9,"username":"bob","role":"user"}}`)
	})

	creds := &fakeCreds{}
	r, _ := newTestResolver(t, handler, creds)

	_, err := r.UserDetails(context.Background(), 9)
	require.Error(t, err)

	fail.Store(false)
	u, err := r.UserDetails(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)
}

func TestResolveActorSeedsCache(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"user":{"user_id":5,"username":"alice","role":"admin"}}`)
	})

	creds := &fakeCreds{token: "tok"}
	r, requests := newTestResolver(t, handler, creds)

	r.ResolveActor(context.Background())

	// The actor's own identity never needs a second fetch.
	u, err := r.UserDetails(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.EqualValues(t, 1, atomic.LoadInt64(requests))
}

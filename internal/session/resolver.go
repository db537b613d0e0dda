package session

import (
	"context"
	"errors"
	"sync"

	"forum-client/internal/api"
	"forum-client/internal/logger"
	"forum-client/internal/models"
)

// CredentialStore is the slice of the local store the resolver needs: read
// access to the credential plus the ability to discard an invalid one.
// Logout and invalidation here are the only writers of the credential.
type CredentialStore interface {
	Token() (string, bool)
	ClearToken() error
}

// Resolver determines the current actor and looks up other users' display
// identity. Construct one per command invocation and pass it down; lookups
// are cached per resolver so rendering a page never fetches the same user
// twice.
type Resolver struct {
	users *api.UserService
	creds CredentialStore

	mu    sync.Mutex
	actor *models.Actor
	cache map[int]models.User
}

// NewResolver builds a resolver over the given API client and credential
// store.
func NewResolver(client *api.Client, creds CredentialStore) *Resolver {
	return &Resolver{
		users: client.Users(),
		creds: creds,
		cache: make(map[int]models.User),
	}
}

// ResolveActor returns the identity behind the stored credential. Without
// a credential it returns the guest actor with no network call. A
// credential the backend rejects is cleared and also resolves to guest;
// that recovery is silent and never surfaces as an error.
func (r *Resolver) ResolveActor(ctx context.Context) models.Actor {
	r.mu.Lock()
	if r.actor != nil {
		a := *r.actor
		r.mu.Unlock()
		return a
	}
	r.mu.Unlock()

	actor := r.resolveActor(ctx)

	r.mu.Lock()
	r.actor = &actor
	if actor.ID != 0 {
		r.cache[actor.ID] = models.User{ID: actor.ID, Username: actor.Username, Role: actor.Role}
	}
	r.mu.Unlock()

	return actor
}

func (r *Resolver) resolveActor(ctx context.Context) models.Actor {
	if _, ok := r.creds.Token(); !ok {
		return models.Guest()
	}

	me, err := r.users.Me(ctx, "user_id", "username", "role")
	if err != nil {
		// Only a backend rejection means the credential is bad. A transport
		// failure keeps the token so an unreachable backend does not log
		// the user out.
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			logger.FromContext(ctx).Debug("credential rejected, falling back to guest", "error", err)
			if clearErr := r.creds.ClearToken(); clearErr != nil {
				logger.FromContext(ctx).Warn("failed to clear credential", "error", clearErr)
			}
		} else {
			logger.FromContext(ctx).Debug("actor resolution failed, continuing as guest", "error", err)
		}
		return models.Guest()
	}

	return models.Actor{ID: me.ID, Username: me.Username, Role: me.Role}
}

// UserDetails resolves another user's username and role. id 0 is the
// guest identity and costs no network call. Successful lookups are cached
// by id for the lifetime of the resolver.
func (r *Resolver) UserDetails(ctx context.Context, id int) (models.User, error) {
	if id == 0 {
		return models.User{Role: models.RoleGuest}, nil
	}

	r.mu.Lock()
	if u, ok := r.cache[id]; ok {
		r.mu.Unlock()
		return u, nil
	}
	r.mu.Unlock()

	u, err := r.users.ByID(ctx, id, "username", "role")
	if err != nil {
		return models.User{}, err
	}

	r.mu.Lock()
	r.cache[id] = *u
	r.mu.Unlock()

	return *u, nil
}

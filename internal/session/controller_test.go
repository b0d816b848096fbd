package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volunteerhub/webclient/internal/domain/auth"
	apperrors "github.com/volunteerhub/webclient/internal/errors"
)

type memStore struct {
	mu     sync.Mutex
	token  string
	saves  int
	clears int
	// loadErr overrides Load entirely when set.
	loadErr error
}

func (m *memStore) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return "", m.loadErr
	}
	if m.token == "" {
		return "", ErrNoToken
	}
	return m.token, nil
}

func (m *memStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.saves++
	return nil
}

func (m *memStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.clears++
	return nil
}

type fakeAPI struct {
	mu           sync.Mutex
	loginToken   string
	loginUser    auth.User
	loginErr     error
	currentUser  auth.User
	currentErr   error
	currentCalls int
	refreshToken string
	refreshErr   error
}

func (f *fakeAPI) Login(_ context.Context, _, _ string) (string, auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loginErr != nil {
		return "", auth.User{}, f.loginErr
	}
	return f.loginToken, f.loginUser, nil
}

func (f *fakeAPI) CurrentUser(context.Context) (auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.currentCalls++
	if f.currentErr != nil {
		return auth.User{}, f.currentErr
	}
	return f.currentUser, nil
}

func (f *fakeAPI) Refresh(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.refreshErr != nil {
		return "", f.refreshErr
	}
	return f.refreshToken, nil
}

func newTestController(store TokenStore, api AuthAPI) *Controller {
	c := NewController(store, slog.Default())
	c.SetAPI(api)
	return c
}

func TestBootstrapNoTokenSettlesAnonymousWithoutNetwork(t *testing.T) {
	store := &memStore{}
	api := &fakeAPI{}
	c := newTestController(store, api)

	require.Equal(t, PhaseBootstrapping, c.Snapshot().Phase)

	c.Bootstrap(context.Background())

	snap := c.Snapshot()
	assert.Equal(t, PhaseAnonymous, snap.Phase)
	assert.False(t, snap.TokenArmed)
	assert.Nil(t, snap.User)
	assert.Zero(t, api.currentCalls, "no token must mean no profile fetch")
}

func TestBootstrapValidTokenRestoresSession(t *testing.T) {
	store := &memStore{token: "tok-1"}
	api := &fakeAPI{currentUser: auth.User{ID: 7, Role: auth.RoleStudent}}
	c := newTestController(store, api)

	c.Bootstrap(context.Background())

	snap := c.Snapshot()
	assert.Equal(t, PhaseAuthenticated, snap.Phase)
	assert.True(t, snap.TokenArmed)
	require.NotNil(t, snap.User)
	assert.Equal(t, int64(7), snap.User.ID)
	assert.Equal(t, "tok-1", c.Token())
	assert.True(t, snap.Authenticated())
}

func TestBootstrapRejectedTokenIsCleared(t *testing.T) {
	store := &memStore{token: "stale"}
	api := &fakeAPI{currentErr: apperrors.Authentication("expired")}
	c := newTestController(store, api)

	c.Bootstrap(context.Background())

	snap := c.Snapshot()
	assert.Equal(t, PhaseAnonymous, snap.Phase)
	assert.False(t, snap.TokenArmed)
	assert.Equal(t, 1, store.clears)
	assert.Empty(t, c.Token())
}

func TestBootstrapStoreReadFailureSettlesAnonymous(t *testing.T) {
	store := &memStore{loadErr: errors.New("disk gone")}
	c := newTestController(store, &fakeAPI{})

	c.Bootstrap(context.Background())

	assert.Equal(t, PhaseAnonymous, c.Snapshot().Phase)
}

func TestBootstrapRunsOnce(t *testing.T) {
	store := &memStore{token: "tok"}
	api := &fakeAPI{currentUser: auth.User{ID: 1, Role: auth.RoleStaff}}
	c := newTestController(store, api)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Bootstrap(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, api.currentCalls)
}

func TestLoginPersistsAndArmsToken(t *testing.T) {
	store := &memStore{}
	api := &fakeAPI{loginToken: "tok-new", loginUser: auth.User{ID: 3, Role: auth.RoleStaff}}
	c := newTestController(store, api)
	c.Bootstrap(context.Background())

	user, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)

	snap := c.Snapshot()
	assert.Equal(t, PhaseAuthenticated, snap.Phase)
	assert.Equal(t, "tok-new", store.token)
	assert.Equal(t, "tok-new", c.Token())
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	store := &memStore{}
	api := &fakeAPI{loginErr: apperrors.Authentication("bad credentials")}
	c := newTestController(store, api)
	c.Bootstrap(context.Background())

	_, err := c.Login(context.Background(), "a@b.c", "nope")
	require.Error(t, err)

	snap := c.Snapshot()
	assert.Equal(t, PhaseAnonymous, snap.Phase)
	assert.False(t, snap.TokenArmed)
	assert.Zero(t, store.saves)
}

func TestLogoutIsIdempotent(t *testing.T) {
	store := &memStore{token: "tok"}
	api := &fakeAPI{currentUser: auth.User{ID: 1, Role: auth.RoleAdmin}}
	c := newTestController(store, api)
	c.Bootstrap(context.Background())

	require.NoError(t, c.Logout(context.Background()))
	require.NoError(t, c.Logout(context.Background()))

	snap := c.Snapshot()
	assert.Equal(t, PhaseAnonymous, snap.Phase)
	assert.Nil(t, snap.User)
	assert.Empty(t, c.Token())
	assert.Equal(t, 2, store.clears)
}

func TestSilentRefreshRotatesToken(t *testing.T) {
	store := &memStore{token: "old"}
	api := &fakeAPI{currentUser: auth.User{ID: 1, Role: auth.RoleStudent}, refreshToken: "rotated"}
	c := newTestController(store, api)
	c.Bootstrap(context.Background())

	token, err := c.SilentRefresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "rotated", token)
	assert.Equal(t, "rotated", c.Token())
	assert.Equal(t, "rotated", store.token)
	assert.Equal(t, PhaseAuthenticated, c.Snapshot().Phase)
}

func TestSilentRefreshFailureForcesLogout(t *testing.T) {
	store := &memStore{token: "old"}
	api := &fakeAPI{currentUser: auth.User{ID: 1, Role: auth.RoleStudent}, refreshErr: apperrors.Authentication("revoked")}
	c := newTestController(store, api)
	c.Bootstrap(context.Background())

	_, err := c.SilentRefresh(context.Background())
	require.Error(t, err)

	snap := c.Snapshot()
	assert.Equal(t, PhaseAnonymous, snap.Phase)
	assert.Nil(t, snap.User)
	assert.Empty(t, c.Token())
	assert.Empty(t, store.token)
}

func TestUpdateUserOnlyWhenAuthenticated(t *testing.T) {
	store := &memStore{}
	c := newTestController(store, &fakeAPI{})
	c.Bootstrap(context.Background())

	c.UpdateUser(auth.User{ID: 9, Role: auth.RoleStudent})
	assert.Nil(t, c.Snapshot().User, "anonymous sessions ignore profile updates")
}

func TestSnapshotCopiesUser(t *testing.T) {
	store := &memStore{token: "tok"}
	api := &fakeAPI{currentUser: auth.User{ID: 1, FirstName: "Ada", Role: auth.RoleStudent}}
	c := newTestController(store, api)
	c.Bootstrap(context.Background())

	snap := c.Snapshot()
	snap.User.FirstName = "changed"
	assert.Equal(t, "Ada", c.Snapshot().User.FirstName)
}

// Package session owns the authenticated-session lifecycle: bootstrap on
// startup, login, logout, and silent refresh. The Controller is the sole
// writer of the token store and of in-memory session state; everything else
// reads snapshots or requests mutation through it.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/volunteerhub/webclient/internal/domain/auth"
)

// AuthAPI is the slice of the platform client the controller drives.
type AuthAPI interface {
	// Login authenticates with credentials and returns the new bearer token
	// and the normalized user record.
	Login(ctx context.Context, email, password string) (string, auth.User, error)
	// CurrentUser fetches the profile for the currently armed token.
	CurrentUser(ctx context.Context) (auth.User, error)
	// Refresh rotates the bearer token using the existing session credential.
	Refresh(ctx context.Context) (string, error)
}

// Controller is the session state machine. It starts in PhaseBootstrapping
// and settles into PhaseAnonymous or PhaseAuthenticated after Bootstrap runs.
type Controller struct {
	store  TokenStore
	logger *slog.Logger

	mu    sync.Mutex
	api   AuthAPI
	phase Phase
	user  *auth.User
	token string

	bootstrapOnce sync.Once
}

// NewController creates a Controller in the bootstrapping phase.
// Call SetAPI before Bootstrap; the API client is wired afterwards because its
// transport needs the controller as its token source.
func NewController(store TokenStore, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:  store,
		logger: logger,
		phase:  PhaseBootstrapping,
	}
}

// SetAPI wires the platform client the controller drives.
func (c *Controller) SetAPI(api AuthAPI) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.api = api
}

// Snapshot returns an immutable view of the current session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{Phase: c.phase, TokenArmed: c.token != ""}
	if c.user != nil {
		u := *c.user
		snap.User = &u
	}
	return snap
}

// Token returns the currently armed bearer token, or "" when disarmed.
// It satisfies the transport's token source.
func (c *Controller) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Bootstrap runs the one-time session recovery. With no persisted token it
// settles to anonymous without any network call. With a token it arms the
// header first, then validates it by fetching the current user; any failure
// clears the token. The phase leaves PhaseBootstrapping exactly once, after
// the outcome is known.
func (c *Controller) Bootstrap(ctx context.Context) {
	c.bootstrapOnce.Do(func() { c.bootstrap(ctx) })
}

func (c *Controller) bootstrap(ctx context.Context) {
	token, err := c.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoToken) {
			c.logger.Warn("token store read failed, starting anonymous", "error", err)
		}
		c.settle(PhaseAnonymous, nil, "")
		return
	}

	// Arm the header before issuing the profile fetch.
	c.mu.Lock()
	c.token = token
	api := c.api
	c.mu.Unlock()

	user, err := api.CurrentUser(ctx)
	if err != nil {
		c.logger.Info("persisted token rejected, starting anonymous", "error", err)
		if clearErr := c.store.Clear(ctx); clearErr != nil {
			c.logger.Warn("token store clear failed", "error", clearErr)
		}
		c.settle(PhaseAnonymous, nil, "")
		return
	}

	c.settle(PhaseAuthenticated, &user, token)
	c.logger.Info("session restored", "user_id", user.ID, "role", string(user.Role))
}

// settle records the bootstrap outcome (also reused by login/logout once settled).
func (c *Controller) settle(phase Phase, user *auth.User, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = phase
	c.user = user
	c.token = token
}

// Login authenticates with credentials. On success the token is persisted and
// armed and the session becomes authenticated. On failure state is unchanged
// and the error is returned for the UI layer to display. Login never touches
// the readiness dimension.
func (c *Controller) Login(ctx context.Context, email, password string) (auth.User, error) {
	c.mu.Lock()
	api := c.api
	c.mu.Unlock()

	token, user, err := api.Login(ctx, email, password)
	if err != nil {
		return auth.User{}, err
	}

	if err := c.store.Save(ctx, token); err != nil {
		c.logger.Warn("token store write failed, session will not survive restart", "error", err)
	}

	c.mu.Lock()
	c.token = token
	c.user = &user
	// Login can only land in the authenticated phase once bootstrap settled;
	// the UI defers interactive actions until readiness, so a login during
	// bootstrap keeps the pending phase until bootstrap resolves.
	if c.phase != PhaseBootstrapping {
		c.phase = PhaseAuthenticated
	}
	c.mu.Unlock()

	c.logger.Info("login succeeded", "user_id", user.ID, "role", string(user.Role))
	return user, nil
}

// Logout clears the persisted token, disarms the header, and settles to
// anonymous. It is idempotent: logging out an anonymous session is a no-op.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.store.Clear(ctx); err != nil {
		c.logger.Warn("token store clear failed", "error", err)
	}

	c.mu.Lock()
	c.token = ""
	c.user = nil
	if c.phase != PhaseBootstrapping {
		c.phase = PhaseAnonymous
	}
	c.mu.Unlock()
	return nil
}

// SilentRefresh rotates the bearer token without user interaction. It is
// invoked only by the transport's 401 path. On success the new token is
// persisted and armed; on failure the session is forced to logout and the
// error is returned so the transport can propagate the original 401.
func (c *Controller) SilentRefresh(ctx context.Context) (string, error) {
	c.mu.Lock()
	api := c.api
	c.mu.Unlock()

	token, err := api.Refresh(ctx)
	if err != nil {
		c.logger.Info("silent refresh failed, forcing logout", "error", err)
		_ = c.Logout(ctx)
		return "", err
	}

	if err := c.store.Save(ctx, token); err != nil {
		c.logger.Warn("token store write failed after refresh", "error", err)
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	return token, nil
}

// UpdateUser replaces the in-memory user record after a profile update.
// The session must already be authenticated; an anonymous session is left as is.
func (c *Controller) UpdateUser(user auth.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseAuthenticated {
		c.user = &user
	}
}

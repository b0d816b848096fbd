package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/volunteerhub/webclient/internal/domain/auth"
	apperrors "github.com/volunteerhub/webclient/internal/errors"
)

// ListUsers lists all platform accounts (admin).
func (c *Client) ListUsers(ctx context.Context) ([]auth.User, error) {
	env, err := c.call(ctx, callParams{method: http.MethodGet, path: "/users"})
	if err != nil {
		return nil, err
	}
	wired, err := unwrap[[]wireUser](env, apperrors.ErrCodeTransport, "cannot list users")
	if err != nil {
		return nil, err
	}

	users := make([]auth.User, 0, len(wired))
	for _, wu := range wired {
		u, normErr := wu.normalize()
		if normErr != nil {
			return nil, normErr
		}
		users = append(users, u)
	}
	return users, nil
}

// SetBanStatus bans or unbans one account (admin) and returns the new record.
func (c *Client) SetBanStatus(ctx context.Context, id int64, banned bool) (auth.User, error) {
	env, err := c.call(ctx, callParams{
		method: http.MethodPatch,
		path:   fmt.Sprintf("/users/%d/ban", id),
		body:   map[string]bool{"is_banned": banned},
	})
	if err != nil {
		return auth.User{}, err
	}
	wu, err := unwrap[wireUser](env, apperrors.ErrCodeValidation, "ban update failed")
	if err != nil {
		return auth.User{}, err
	}
	return wu.normalize()
}

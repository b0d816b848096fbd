package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/volunteerhub/webclient/internal/observability/metrics"
)

// TokenSource yields the currently armed bearer token, or "" when disarmed.
type TokenSource interface {
	Token() string
}

// Refresher performs the silent token rotation used by the 401 path. On
// failure the implementation is expected to force a logout before returning.
type Refresher interface {
	SilentRefresh(ctx context.Context) (string, error)
}

// SessionHooks is the session controller surface the transport depends on.
// Keeping refresh-and-replay behind these hooks puts the single-refresh
// contract in one reviewable place instead of global client configuration.
type SessionHooks interface {
	TokenSource
	Refresher
}

// bearerTransport attaches the armed bearer token and a correlation id to
// every outgoing request, and records per-request metrics.
type bearerTransport struct {
	next   http.RoundTripper
	tokens TokenSource
}

func newBearerTransport(next http.RoundTripper, tokens TokenSource) *bearerTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &bearerTransport{next: next, tokens: tokens}
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("X-Request-Id", uuid.NewString())
	if token := t.tokens.Token(); token != "" {
		clone.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.next.RoundTrip(clone)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(statusClass(resp.StatusCode)).Inc()
	return resp, nil
}

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}

// replayedKey marks a request that has already been replayed once, so a 401
// on the replay propagates instead of looping.
type replayedKey struct{}

// refreshTransport watches for HTTP 401 responses. At most one refresh and
// one replay happen per original request; concurrent 401s share a single
// in-flight refresh through the singleflight group.
type refreshTransport struct {
	next    http.RoundTripper
	session SessionHooks
	group   singleflight.Group
}

func newRefreshTransport(next http.RoundTripper, session SessionHooks) *refreshTransport {
	return &refreshTransport{next: next, session: session}
}

func (t *refreshTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	// Already replayed once, or no session claimed: propagate the 401.
	if req.Context().Value(replayedKey{}) != nil || t.session.Token() == "" {
		return resp, nil
	}

	// The body cannot be resent; propagate rather than replay a mangled request.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	token, refreshErr, _ := t.group.Do("refresh", func() (any, error) {
		return t.session.SilentRefresh(req.Context())
	})
	if refreshErr != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failed").Inc()
		// Refresh failed; the session hook has already forced a logout.
		// The caller receives the original 401.
		return resp, nil
	}
	metrics.TokenRefreshesTotal.WithLabelValues("ok").Inc()
	_ = token // the bearer transport reads the re-armed token on replay

	replay := req.Clone(context.WithValue(req.Context(), replayedKey{}, true))
	if req.GetBody != nil {
		body, bodyErr := req.GetBody()
		if bodyErr != nil {
			return resp, nil
		}
		replay.Body = body
	}

	// The original response is superseded by the replay.
	discardBody(resp)
	metrics.RequestReplaysTotal.Inc()
	return t.next.RoundTrip(replay)
}

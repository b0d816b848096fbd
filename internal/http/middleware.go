package httpx

import (
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/volunteerhub/webclient/internal/guard"
	"github.com/volunteerhub/webclient/internal/observability/metrics"
	"github.com/volunteerhub/webclient/internal/session"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionReader is the slice of the session controller the guard consumes.
type SessionReader interface {
	Snapshot() session.Snapshot
}

// Guard returns the middleware that evaluates the route guard on every page
// navigation and interprets its decision: render, redirect, or the neutral
// pending page while bootstrap is still settling.
func Guard(sess SessionReader, table *guard.Table, renderer *TemplateRenderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap := sess.Snapshot()
			decision := guard.Decide(snap, r.URL.Path, table)
			metrics.GuardDecisionsTotal.WithLabelValues(string(decision.Action)).Inc()

			switch decision.Action {
			case guard.ActionPending:
				renderPending(w, renderer)
			case guard.ActionRedirectLogin,
				guard.ActionRedirectRoleHome,
				guard.ActionRedirectUnauthorized:
				http.Redirect(w, r, decision.Location, http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r.WithContext(SetSnapshotInContext(r.Context(), snap)))
			}
		})
	}
}

// renderPending serves the neutral loading page shown while bootstrap runs.
// The page refreshes itself; readiness flips once, so the loop terminates.
func renderPending(w http.ResponseWriter, renderer *TemplateRenderer) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Retry-After", "1")
	_ = renderer.RenderStatus(w, "page-pending", map[string]any{"Title": "Loading"}, http.StatusServiceUnavailable)
}

// safeRedirectPath keeps post-login bounce-backs inside the app: only
// relative paths with no scheme or host survive; anything else falls back
// to "/".
func safeRedirectPath(candidate string) string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	return u.RequestURI()
}

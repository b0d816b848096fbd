// Package upstream is the typed client for the VolunteerHub platform API.
// Every response uses the envelope {success, message?, data}; unwrapping and
// null-coalescing happen here, in one place, so pages never re-implement
// defensive parsing of the server's inconsistent optional fields.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/volunteerhub/webclient/internal/errors"
)

// Options configures a Client.
type Options struct {
	// BaseURL is the platform API root, without a trailing slash.
	BaseURL string
	// Session supplies the armed token and the silent-refresh hook.
	Session SessionHooks
	// Timeout bounds one call including a refresh-and-replay. Zero means 15s.
	Timeout time.Duration
	// Transport overrides the base round tripper (tests). Nil means default.
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// Client issues platform API calls with the bearer header attached and the
// 401 refresh-and-replay decorator applied. Refresh calls themselves bypass
// the decorator so a rejected refresh can never recurse.
type Client struct {
	baseURL  string
	httpc    *http.Client
	refreshc *http.Client
	logger   *slog.Logger
}

// NewClient builds a Client with the decorator chain owned by this client,
// not installed into any global transport.
func NewClient(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	bearer := newBearerTransport(opts.Transport, opts.Session)
	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		httpc:    &http.Client{Transport: newRefreshTransport(bearer, opts.Session), Timeout: timeout},
		refreshc: &http.Client{Transport: bearer, Timeout: timeout},
		logger:   logger,
	}
}

// envelope is the wire wrapper every platform response uses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	// Total accompanies paginated collection responses.
	Total int `json:"total"`
}

// callParams groups the request parameters for call.
type callParams struct {
	method string
	path   string
	query  url.Values
	body   any
	// plain routes the call around the refresh decorator (refresh itself).
	plain bool
}

// call issues one API request and returns the raw decoded envelope.
// Transport failures and unexpected statuses map to the error taxonomy;
// envelope interpretation is left to the operation.
func (c *Client) call(ctx context.Context, p callParams) (*envelope, error) {
	var reqBody io.Reader
	if p.body != nil {
		buf, err := json.Marshal(p.body)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request body")
		}
		reqBody = bytes.NewReader(buf)
	}

	target := c.baseURL + p.path
	if len(p.query) > 0 {
		target += "?" + p.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, p.method, target, reqBody)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	httpc := c.httpc
	if p.plain {
		httpc = c.refreshc
	}

	resp, err := httpc.Do(req)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeTransport, "%s %s", p.method, p.path)
	}
	defer discardBody(resp)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeTransport, "read %s %s response", p.method, p.path)
	}

	env := &envelope{}
	if len(raw) > 0 {
		// A non-JSON body on an error status still maps below; decode failures
		// on success statuses are real protocol errors.
		if decodeErr := json.Unmarshal(raw, env); decodeErr != nil && resp.StatusCode < 300 {
			return nil, apperrors.Wrapf(decodeErr, apperrors.ErrCodeTransport, "decode %s %s response", p.method, p.path)
		}
	}

	if resp.StatusCode >= 300 {
		return env, c.statusError(resp.StatusCode, p, env.Message)
	}
	return env, nil
}

const maxResponseBytes = 4 << 20

// statusError maps a non-2xx status to the error taxonomy, preferring the
// server-supplied envelope message when present.
func (c *Client) statusError(status int, p callParams, message string) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		if message == "" {
			message = "session is no longer valid"
		}
		return apperrors.Authentication(message)
	case http.StatusNotFound:
		if message == "" {
			message = fmt.Sprintf("%s not found", p.path)
		}
		return apperrors.NotFound(message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if message == "" {
			message = "invalid request"
		}
		return apperrors.Validation(message)
	default:
		return apperrors.Transportf("%s %s: unexpected status %d", p.method, p.path, status)
	}
}

// unwrap decodes the envelope payload into T after checking the success flag.
// code categorizes a success=false outcome; fallback is the generic error
// message used when the server supplies none.
func unwrap[T any](env *envelope, code apperrors.ErrorCode, fallback string) (T, error) {
	var out T
	if !env.Success || len(env.Data) == 0 || string(env.Data) == "null" {
		msg := env.Message
		if msg == "" {
			msg = fallback
		}
		return out, &apperrors.AppError{Code: code, Message: msg}
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, apperrors.Wrap(err, apperrors.ErrCodeTransport, "decode envelope payload")
	}
	return out, nil
}

func discardBody(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
}

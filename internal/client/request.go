package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// ResponseKind says how a successful response body is returned to the caller
type ResponseKind int

const (
	// ResponseJSON decodes the body into the caller's value
	ResponseJSON ResponseKind = iota
	// ResponseBlob returns the raw body in a *Blob (file exports)
	ResponseBlob
)

// RequestOptions describes the optional parts of a call. Body and Form are mutually exclusive.
type RequestOptions struct {
	Query        url.Values
	Body         any
	Form         url.Values
	ResponseKind ResponseKind
}

// maxBlobSize caps the size of a downloaded export
const maxBlobSize = 64 << 20

// IssueRequest sends a request to baseURL + path and decodes a successful response into out (which can be nil).
// For ResponseBlob requests out must be a *Blob.
//
// Any failure is classified, reported to the notifier and returned as a *ClientError.
// An authentication failure also ends the session (see endSession).
func (c *Client) IssueRequest(ctx context.Context, method, path string, opts *RequestOptions, out any) error {
	if opts == nil {
		opts = &RequestOptions{}
	}

	// the credential is read once and the same value is used for the header and any 401 handling
	token, err := c.store.Load()
	if err != nil {
		return c.fail(ctx, method, path, "", NewClientInternalError(err, "loading the stored credential"))
	}

	req, err := c.newRequest(ctx, method, path, opts, token)
	if err != nil {
		return c.fail(ctx, method, path, token, NewClientInternalError(err, "creating request"))
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(ctx, method, path, token, NewClientConnectionError(err))
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return c.fail(ctx, method, path, token, NewClientApiError(res))
	}

	if ce := decodeResponse(res, opts.ResponseKind, out); ce != nil {
		return c.fail(ctx, method, path, token, ce)
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, opts *RequestOptions, token string) (*http.Request, error) {
	if opts.Body != nil && opts.Form != nil {
		return nil, errors.New("request cannot have both a json body and a form body")
	}

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid request url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("request url %q is not absolute", u.String())
	}

	if len(opts.Query) > 0 {
		q := u.Query()
		for k, vals := range opts.Query {
			for _, v := range vals {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case opts.Form != nil:
		body = strings.NewReader(opts.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case opts.Body != nil:
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("could not encode request body: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if opts.ResponseKind == ResponseJSON {
		req.Header.Set("Accept", "application/json")
	} else {
		req.Header.Set("Accept", "*/*")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

func decodeResponse(res *http.Response, kind ResponseKind, out any) *ClientError {
	if kind == ResponseBlob {
		blob, ok := out.(*Blob)
		if !ok {
			return NewClientInternalError(fmt.Errorf("blob response needs a *Blob, got %T", out), "decoding response")
		}
		data, err := io.ReadAll(io.LimitReader(res.Body, maxBlobSize))
		if err != nil {
			return NewClientConnectionError(err)
		}
		blob.ContentType = res.Header.Get("Content-Type")
		blob.Filename = AttachmentFilename(res.Header.Get("Content-Disposition"))
		blob.Data = data
		return nil
	}

	if out == nil || res.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return NewClientDecodeError(err, res.StatusCode, "decoding response body")
	}
	return nil
}

// fail reports a failed call: the side effect for its category, one notification and a log line.
// token is the credential the call was made with.
func (c *Client) fail(ctx context.Context, method, path, token string, ce *ClientError) error {
	o := outcomes[ce.Category]

	if o.effect == EffectEndSession {
		c.endSession(ctx, token)
	}

	c.notifier.Notify(ctx, Notification{
		Level:   o.level,
		Code:    o.code,
		Message: ce.UserMessage,
	})

	c.log(ctx).LogAttrs(ctx, slog.LevelWarn, "survey api call failed",
		slog.String("component", "client.IssueRequest"),
		slog.String("category", ce.Category.String()),
		slog.Int("status", ce.StatusCode),
		slog.String("method", method),
		slog.String("path", path),
		slog.String("error", ce.LogMessage),
	)

	return ce
}

// endSession clears the stored credential and redirects to login.
//
// The credential is only cleared, and the redirect only issued, when token is still the stored credential, so
// concurrent failures for the same credential produce one clear and one redirect. A call made without a credential
// has nothing to clear but still redirects; navigators report repeats with ErrDuplicateNavigation.
func (c *Client) endSession(ctx context.Context, token string) bool {
	if token != "" {
		c.sessionMu.Lock()
		current, err := c.store.Load()
		if err != nil || current != token {
			c.sessionMu.Unlock()
			return false
		}
		if err := c.store.Clear(); err != nil {
			c.log(ctx).Error("could not clear credential",
				slog.String("component", "client.endSession"),
				slog.String("error", err.Error()),
			)
		}
		c.sessionMu.Unlock()
	}

	if err := c.navigator.RedirectToLogin(ctx, ContextReturnTo(ctx)); err != nil && !errors.Is(err, ErrDuplicateNavigation) {
		c.log(ctx).Error("redirect to login failed",
			slog.String("component", "client.endSession"),
			slog.String("error", err.Error()),
		)
	}
	return true
}

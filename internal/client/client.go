// Package client is the single choke point for calls from the console and the cli to the survey API.
//
// Every call attaches the stored bearer credential, unwraps successful response bodies and classifies failures.
// A failure produces exactly one user notification (see Notifier), at most one side effect
// (an authentication failure ends the session and redirects to login, see Navigator) and a *ClientError
// returned to the caller carrying both the user-friendly message and the technical detail for logging (see errors.go).
package client

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/survey-system/surveyconsole/internal/logger"
)

// DefaultTimeout is long enough for the LLM endpoints, which routinely take minutes.
const DefaultTimeout = 300 * time.Second

// Client handles communication with the survey API
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      CredentialStore
	notifier   Notifier
	navigator  Navigator
	logger     *slog.Logger
	userAgent  string
	now        func() time.Time

	// serialises the compare-and-clear of the stored credential when a session ends
	sessionMu *sync.Mutex
}

type Option func(*Client)

// WithCredentialStore sets where the bearer credential is kept. Defaults to an empty MemoryStore.
func WithCredentialStore(store CredentialStore) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithNotifier sets the sink for user-facing notifications. Defaults to logging them.
func WithNotifier(notifier Notifier) Option {
	return func(c *Client) {
		c.notifier = notifier
	}
}

// WithNavigator sets how the redirect to login is performed when a session ends.
func WithNavigator(navigator Navigator) Option {
	return func(c *Client) {
		c.navigator = navigator
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithHTTPClient replaces the transport. The client's Timeout is used when set, otherwise the timeout passed to New applies.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		hc := *httpClient
		if hc.Timeout == 0 {
			hc.Timeout = c.httpClient.Timeout
		}
		c.httpClient = &hc
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithClock overrides the time used to check credential expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates a client for the survey API at baseURL (e.g. http://localhost:8000/api/v1).
// Calls that have not completed within timeout are abandoned and reported as network failures.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now:       time.Now,
		sessionMu: &sync.Mutex{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.store == nil {
		c.store = NewMemoryStore("")
	}
	if c.notifier == nil {
		c.notifier = NewLogNotifier(c.logger)
	}
	if c.navigator == nil {
		c.navigator = noNavigation
	}

	return c
}

// WithSession returns a copy of the client that shares the transport but keeps its credential, notifications and
// navigation separate. The console creates one per browser request. nil arguments keep the current value.
func (c *Client) WithSession(store CredentialStore, notifier Notifier, navigator Navigator) *Client {
	s := *c
	if store != nil {
		s.store = store
	}
	if notifier != nil {
		s.notifier = notifier
	}
	if navigator != nil {
		s.navigator = navigator
	}
	s.sessionMu = &sync.Mutex{}
	return &s
}

// log returns the logger for a call: the request logger carried by ctx (console request or cli command),
// otherwise the client's own
func (c *Client) log(ctx context.Context) *slog.Logger {
	if l, ok := logger.RequestLoggerFrom(ctx); ok {
		return l
	}
	return c.logger
}

// BaseURL returns the survey API address used for every call
func (c *Client) BaseURL() string {
	return c.baseURL
}

package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/survey-system/surveyconsole/internal/api"
	"github.com/survey-system/surveyconsole/internal/client"
)

const (
	LoginPath     = "/login"
	LogoutPath    = "/logout"
	DashboardPath = "/dashboard"
)

// LoginURL is the login page address that sends the user back to returnTo once they have logged in
func LoginURL(returnTo string) string {
	if returnTo == "" || !IsLocalPath(returnTo) {
		return LoginPath
	}
	return LoginPath + "?" + url.Values{"redirect": {returnTo}}.Encode()
}

// IsLocalPath reports whether target is a path on this console, so it is safe to redirect to after login
func IsLocalPath(target string) bool {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return false
	}
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

// SafeRedirect returns target when it is a local path, otherwise the dashboard
func SafeRedirect(target string) string {
	if IsLocalPath(target) && !strings.HasPrefix(target, LoginPath) && !strings.HasPrefix(target, LogoutPath) {
		return target
	}
	return DashboardPath
}

// Navigator records the login redirect requested by the client during a browser request.
// The guard or handler performs it once the call returns.
type Navigator struct {
	mu     sync.Mutex
	target string
}

func (n *Navigator) RedirectToLogin(_ context.Context, returnTo string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.target != "" {
		return client.ErrDuplicateNavigation
	}
	n.target = LoginURL(returnTo)
	return nil
}

// Target is the recorded redirect, "" if the session has not ended
func (n *Navigator) Target() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target
}

// Session is the per-request view of the survey API: its own credential (the browser cookie),
// notifications and navigation, sharing the transport of the base client.
type Session struct {
	Client        *client.Client
	API           *api.API
	Notifications *client.Recorder

	navigator *Navigator
	store     *CookieStore
}

// Redirect is where the browser should be sent because the session ended, "" otherwise
func (s *Session) Redirect() string {
	return s.navigator.Target()
}

// HasCredential reports whether the browser sent an access token
func (s *Session) HasCredential() bool {
	token, _ := s.store.Load()
	return token != ""
}

// SessionManager creates a Session for each console request
type SessionManager struct {
	base   *client.Client
	secure bool
}

func NewSessionManager(base *client.Client, environment string) *SessionManager {
	return &SessionManager{
		base:   base,
		secure: environment == "prod" || environment == "staging",
	}
}

func (m *SessionManager) NewSession(w http.ResponseWriter, r *http.Request) *Session {
	store := NewCookieStore(w, r, m.secure)
	recorder := client.NewRecorder()
	navigator := &Navigator{}

	c := m.base.WithSession(store, recorder, navigator)

	return &Session{
		Client:        c,
		API:           api.New(c),
		Notifications: recorder,
		navigator:     navigator,
		store:         store,
	}
}

package auth

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/survey-system/surveyconsole/internal/client"
	"github.com/survey-system/surveyconsole/internal/logger"
)

// Sessions attaches a Session to every request. Handlers retrieve it with ContextSession.
// The return destination is recorded too, so a 401 on a public page still sends the user back after login.
func (m *SessionManager) Sessions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := m.NewSession(w, r)
		ctx := ContextWithSession(r.Context(), session)
		ctx = client.ContextWithReturnTo(ctx, ReturnTo(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth guards console routes.
//
// Requests without an access token are redirected to login with the original path as the redirect parameter.
// A token that is malformed or expired ends the session: the client clears the cookie and records the redirect,
// which is performed here. Must be used after Sessions.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqLogger := logger.ContextRequestLogger(r.Context())
		returnTo := ReturnTo(r)

		session, ok := ContextSession(r.Context())
		if !ok {
			reqLogger.Error("no session in context",
				slog.String("component", "ui.RequireAuth"),
			)
			Redirect(w, r, LoginURL(returnTo))
			return
		}

		if !session.HasCredential() {
			reqLogger.Debug("Authentication failed - redirecting to login",
				slog.String("component", "ui.RequireAuth"),
				slog.String("status", client.TokenMissing.String()),
			)
			Redirect(w, r, LoginURL(returnTo))
			return
		}

		ctx := client.ContextWithReturnTo(r.Context(), returnTo)
		if !session.Client.EnsureAuthenticated(ctx) {
			target := session.Redirect()
			if target == "" {
				target = LoginURL(returnTo)
			}
			reqLogger.Debug("session ended - redirecting to login",
				slog.String("component", "ui.RequireAuth"),
				slog.String("redirect", target),
			)
			Redirect(w, r, target)
			return
		}

		reqLogger.Debug("Authentication check successful",
			slog.String("component", "ui.RequireAuth"),
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Redirect sends the browser to target for both HTMX and direct requests
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// ReturnTo is the page the user should come back to after logging in.
// For ui-api and htmx calls that is the page that made the call, not the endpoint.
func ReturnTo(r *http.Request) string {
	if !strings.HasPrefix(r.URL.Path, "/ui-api/") && r.Header.Get("HX-Request") != "true" {
		return r.URL.RequestURI()
	}

	for _, header := range []string{"HX-Current-URL", "Referer"} {
		u, err := url.Parse(r.Header.Get(header))
		if err != nil || u.Path == "" {
			continue
		}
		if u.Host != "" && u.Host != r.Host {
			continue
		}
		return u.RequestURI()
	}

	if strings.HasPrefix(r.URL.Path, "/ui-api/") {
		return ""
	}
	return r.URL.RequestURI()
}

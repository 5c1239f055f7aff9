package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/survey-system/surveyconsole/internal/apperrors"
	"github.com/survey-system/surveyconsole/internal/client"
	"github.com/survey-system/surveyconsole/internal/config"
)

func mintToken(t *testing.T, exp *time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "alice"}
	if exp != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*exp)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("could not sign token: %v", err)
	}
	return token
}

// guardedRouter runs RequireAuth against a backend that counts the calls it receives
func guardedRouter(t *testing.T) (http.Handler, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(backend.Close)

	base := client.New(backend.URL+"/api/v1", time.Second)
	manager := NewSessionManager(base, "test")

	protected := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	return manager.Sessions(RequireAuth(protected)), &calls
}

func TestRequireAuth(t *testing.T) {
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	tests := []struct {
		name         string
		token        string
		htmx         bool
		wantStatus   int
		wantLocation string
		wantClearing bool
		wantHXHeader bool
	}{
		{
			name:         "no credential",
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/login?redirect=%2Fsurveys%3Fpage%3D2",
		},
		{
			name:         "no credential htmx",
			htmx:         true,
			wantStatus:   http.StatusOK,
			wantLocation: "/login?redirect=%2Fsurveys%3Fpage%3D2",
			wantHXHeader: true,
		},
		{
			name:         "expired credential",
			token:        mintToken(t, &past),
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/login?redirect=%2Fsurveys%3Fpage%3D2",
			wantClearing: true,
		},
		{
			name:         "malformed credential",
			token:        "not-a-jwt",
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/login?redirect=%2Fsurveys%3Fpage%3D2",
			wantClearing: true,
		},
		{
			name:       "valid credential",
			token:      mintToken(t, &future),
			wantStatus: http.StatusTeapot,
		},
		{
			name:       "credential without expiry",
			token:      mintToken(t, nil),
			wantStatus: http.StatusTeapot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, calls := guardedRouter(t)

			req := httptest.NewRequest("GET", "/surveys?page=2", nil)
			if tt.token != "" {
				req.AddCookie(&http.Cookie{Name: config.AccessTokenCookieName, Value: tt.token})
			}
			if tt.htmx {
				req.Header.Set("HX-Request", "true")
			}

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d", rr.Code, tt.wantStatus)
			}

			location := rr.Header().Get("Location")
			if tt.wantHXHeader {
				location = rr.Header().Get("HX-Redirect")
			}
			if location != tt.wantLocation {
				t.Errorf("redirect = %q, want %q", location, tt.wantLocation)
			}

			cleared := strings.Contains(rr.Header().Get("Set-Cookie"), config.AccessTokenCookieName+"=;")
			if cleared != tt.wantClearing {
				t.Errorf("cookie cleared = %v, want %v (Set-Cookie %q)", cleared, tt.wantClearing, rr.Header().Get("Set-Cookie"))
			}

			if calls.Load() != 0 {
				t.Errorf("guard made %d api calls, want none", calls.Load())
			}
		})
	}
}

func TestRequireAuthRecordsExpiredNotification(t *testing.T) {
	past := time.Now().Add(-time.Minute)
	base := client.New("http://localhost:8000/api/v1", time.Second)
	manager := NewSessionManager(base, "test")

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: config.AccessTokenCookieName, Value: mintToken(t, &past)})
	rr := httptest.NewRecorder()

	session := manager.NewSession(rr, req)
	req = req.WithContext(ContextWithSession(req.Context(), session))

	RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("protected handler should not run")
	})).ServeHTTP(rr, req)

	notifications := session.Notifications.Notifications()
	if len(notifications) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifications))
	}
	if notifications[0].Code != apperrors.ErrCodeSessionExpired || notifications[0].Message != client.SessionExpiredMessage {
		t.Errorf("unexpected notification %+v", notifications[0])
	}
	if session.HasCredential() {
		t.Error("expired credential should have been cleared")
	}
}

func TestNavigator(t *testing.T) {
	n := &Navigator{}

	if err := n.RedirectToLogin(t.Context(), "/surveys/3"); err != nil {
		t.Fatalf("first redirect: %v", err)
	}
	if err := n.RedirectToLogin(t.Context(), "/surveys/3"); !errors.Is(err, client.ErrDuplicateNavigation) {
		t.Errorf("second redirect returned %v, want ErrDuplicateNavigation", err)
	}
	if got := n.Target(); got != "/login?redirect=%2Fsurveys%2F3" {
		t.Errorf("target = %q", got)
	}
}

func TestSafeRedirect(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"/surveys/3?tab=questions", "/surveys/3?tab=questions"},
		{"", "/dashboard"},
		{"https://evil.example.org/", "/dashboard"},
		{"//evil.example.org", "/dashboard"},
		{"/\\evil.example.org", "/dashboard"},
		{"surveys", "/dashboard"},
		{"/login?redirect=/login", "/dashboard"},
	}

	for _, tt := range tests {
		if got := SafeRedirect(tt.target); got != tt.want {
			t.Errorf("SafeRedirect(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestLoginURL(t *testing.T) {
	tests := []struct {
		returnTo string
		want     string
	}{
		{"", "/login"},
		{"/dashboard", "/login?redirect=%2Fdashboard"},
		{"https://evil.example.org", "/login"},
	}

	for _, tt := range tests {
		if got := LoginURL(tt.returnTo); got != tt.want {
			t.Errorf("LoginURL(%q) = %q, want %q", tt.returnTo, got, tt.want)
		}
	}
}

func TestCookieStore(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	exp := now.Add(30 * time.Minute)
	token := mintToken(t, &exp)

	rr := httptest.NewRecorder()
	store := NewCookieStore(rr, httptest.NewRequest("GET", "/", nil), true)
	store.now = func() time.Time { return now }

	if got, _ := store.Load(); got != "" {
		t.Fatalf("new store loaded %q", got)
	}

	if err := store.Save(token); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Load(); got != token {
		t.Errorf("Load after Save = %q", got)
	}

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != config.AccessTokenCookieName || !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteStrictMode {
		t.Errorf("unexpected cookie attributes %+v", c)
	}
	if c.MaxAge != 1800 {
		t.Errorf("MaxAge = %d, want 1800", c.MaxAge)
	}

	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Load(); got != "" {
		t.Errorf("Load after Clear = %q", got)
	}
}

func TestReturnTo(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		headers map[string]string
		want    string
	}{
		{"page", "/surveys/3?tab=questions", nil, "/surveys/3?tab=questions"},
		{"ui-api from page", "/ui-api/surveys", map[string]string{"HX-Current-URL": "http://example.com/dashboard?page=2"}, "/dashboard?page=2"},
		{"ui-api with referer", "/ui-api/surveys", map[string]string{"Referer": "http://example.com/surveys/3"}, "/surveys/3"},
		{"ui-api from another site", "/ui-api/surveys", map[string]string{"Referer": "https://evil.example.org/x"}, ""},
		{"ui-api without headers", "/ui-api/surveys", nil, ""},
		{"htmx page fragment", "/dashboard", map[string]string{"HX-Request": "true"}, "/dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := ReturnTo(req); got != tt.want {
				t.Errorf("ReturnTo = %q, want %q", got, tt.want)
			}
		})
	}
}

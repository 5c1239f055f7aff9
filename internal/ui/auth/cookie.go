package auth

import (
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/survey-system/surveyconsole/internal/config"
)

// CookieStore is the browser credential store: the access token lives in an HttpOnly cookie and is read once per request.
//
// Save and Clear set the response cookie, so they only take effect while the response headers have not been written.
// Load reflects the changes made during the request.
type CookieStore struct {
	mu     sync.Mutex
	w      http.ResponseWriter
	token  string
	secure bool
	now    func() time.Time
}

// NewCookieStore reads the access token cookie from r. secure marks the cookies Secure (prod)
func NewCookieStore(w http.ResponseWriter, r *http.Request, secure bool) *CookieStore {
	s := &CookieStore{
		w:      w,
		secure: secure,
		now:    time.Now,
	}
	if cookie, err := r.Cookie(config.AccessTokenCookieName); err == nil {
		s.token = cookie.Value
	}
	return s
}

func (s *CookieStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *CookieStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	http.SetCookie(s.w, &http.Cookie{
		Name:     config.AccessTokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   cookieMaxAge(token, s.now()),
	})
	return nil
}

func (s *CookieStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	http.SetCookie(s.w, &http.Cookie{
		Name:     config.AccessTokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// cookieMaxAge lets the browser drop the cookie when the token expires.
// Tokens without a readable exp get a session cookie (0).
func cookieMaxAge(token string, now time.Time) int {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil || claims.ExpiresAt == nil {
		return 0
	}
	remaining := int(claims.ExpiresAt.Sub(now).Seconds())
	if remaining <= 0 {
		return -1
	}
	return remaining
}

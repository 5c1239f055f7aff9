package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/survey-system/surveyconsole/internal/apperrors"
)

// TokenStatus represents the state of a stored credential
type TokenStatus int

const (
	TokenMissing TokenStatus = iota
	TokenInvalid
	TokenExpired
	TokenValid
)

var tokenStatusNames = []string{"TokenMissing", "TokenInvalid", "TokenExpired", "TokenValid"}

func (t TokenStatus) String() string {
	if t < 0 || int(t) >= len(tokenStatusNames) {
		return fmt.Sprintf("TokenStatus(%d)", int(t))
	}
	return tokenStatusNames[t]
}

// SessionExpiredMessage is shown when a stored credential is found to be invalid before a call is made
const SessionExpiredMessage = "Your session has expired, please log in again."

// CheckCredentialAt decodes the expiry claim of token without verifying the signature (the survey API does that).
// A token without an expiry claim is treated as valid.
func CheckCredentialAt(token string, now time.Time) TokenStatus {
	if token == "" {
		return TokenMissing
	}

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := &jwt.RegisteredClaims{}

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return TokenInvalid
	}

	// exp has second precision, the token is valid until the end of that second
	if claims.ExpiresAt != nil && claims.ExpiresAt.Unix() < now.Unix() {
		return TokenExpired
	}

	return TokenValid
}

// CheckCredential returns the status of token using the client's clock
func (c *Client) CheckCredential(token string) TokenStatus {
	return CheckCredentialAt(token, c.now())
}

// ValidateCredential reports whether token is present, well formed and not expired. No network call is made.
func (c *Client) ValidateCredential(token string) bool {
	return c.CheckCredential(token) == TokenValid
}

// EnsureAuthenticated checks the stored credential before a guarded operation.
//
// With no stored credential it returns false without notifying anyone. A credential that is malformed or expired is
// cleared, the user is warned their session has expired and the navigator is asked to redirect to login.
func (c *Client) EnsureAuthenticated(ctx context.Context) bool {
	token, err := c.store.Load()
	if err != nil {
		c.log(ctx).Error("could not load credential",
			slog.String("component", "client.EnsureAuthenticated"),
			slog.String("error", err.Error()),
		)
		return false
	}

	status := c.CheckCredential(token)
	switch status {
	case TokenValid:
		return true
	case TokenMissing:
		return false
	}

	c.log(ctx).Debug("stored credential rejected",
		slog.String("component", "client.EnsureAuthenticated"),
		slog.String("status", status.String()),
	)

	c.notifier.Notify(ctx, Notification{
		Level:   LevelWarning,
		Code:    apperrors.ErrCodeSessionExpired,
		Message: SessionExpiredMessage,
	})
	c.endSession(ctx, token)

	return false
}

// SaveCredential stores the credential returned by a successful login
func (c *Client) SaveCredential(token string) error {
	if err := c.store.Save(token); err != nil {
		return fmt.Errorf("saving credential: %w", err)
	}
	return nil
}

// ClearCredential removes the stored credential (logout)
func (c *Client) ClearCredential() error {
	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("clearing credential: %w", err)
	}
	return nil
}

// Credential returns the stored credential, "" if there is none
func (c *Client) Credential() (string, error) {
	return c.store.Load()
}

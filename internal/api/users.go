package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/survey-system/surveyconsole/internal/client"
)

type User struct {
	ID               int       `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	OrganizationID   *int      `json:"organization_id,omitempty"`
	OrganizationName *string   `json:"organization_name,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type UpdateUserRequest struct {
	Username       *string `json:"username,omitempty"`
	Email          *string `json:"email,omitempty"`
	Role           *string `json:"role,omitempty"`
	OrganizationID *int    `json:"organization_id,omitempty"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Token is the response from the login endpoint
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Users struct {
	r Requester
}

// Login exchanges a username and password for an access token (OAuth2 password form) and stores it
func (u *Users) Login(ctx context.Context, username, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var token Token
	if err := u.r.IssueRequest(ctx, http.MethodPost, "/users/login/access-token", &client.RequestOptions{Form: form}, &token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, errors.New("login response did not include an access token")
	}

	if err := u.r.SaveCredential(token.AccessToken); err != nil {
		return nil, fmt.Errorf("login succeeded but the credential could not be stored: %w", err)
	}
	return &token, nil
}

// Logout forgets the stored credential. The survey API keeps no session so nothing is sent.
func (u *Users) Logout() error {
	return u.r.ClearCredential()
}

func (u *Users) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := post(ctx, u.r, "/users/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me returns the account the stored credential belongs to
func (u *Users) Me(ctx context.Context) (*User, error) {
	var user User
	if err := get(ctx, u.r, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *Users) UpdateMe(ctx context.Context, req UpdateUserRequest) (*User, error) {
	var user User
	if err := put(ctx, u.r, "/users/me", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *Users) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	return put(ctx, u.r, "/users/me/password", req, nil)
}

func (u *Users) List(ctx context.Context, params Params) ([]User, error) {
	var users []User
	if err := get(ctx, u.r, "/users/", params, &users); err != nil {
		return nil, err
	}
	return users, nil
}

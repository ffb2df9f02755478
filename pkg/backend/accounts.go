package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Me returns the account owning token. An invalid session yields an error
// matching ErrUnauthorized.
func (c *Client) Me(ctx context.Context, token string) (User, error) {
	var u User
	_, err := c.send(ctx, call{method: http.MethodGet, path: "/accounts/me", token: token}, &u)
	return u, err
}

// NewCredentials picks the login field: identifiers containing "@" are
// treated as e-mail addresses.
func NewCredentials(identifier, password string) Credentials {
	if strings.Contains(identifier, "@") {
		return Credentials{Email: identifier, Password: password}
	}
	return Credentials{Username: identifier, Password: password}
}

// Login authenticates and returns the backend's response headers, which
// carry the session Set-Cookie.
func (c *Client) Login(ctx context.Context, cred Credentials) (http.Header, error) {
	body, err := jsonBody(cred)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, call{
		method:      http.MethodPost,
		path:        "/accounts/login",
		body:        body,
		contentType: "application/json",
	}, nil)
}

// Register creates an account. Like Login, the session arrives as a
// Set-Cookie header.
func (c *Client) Register(ctx context.Context, reg Registration) (http.Header, error) {
	body, err := jsonBody(reg)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, call{
		method:      http.MethodPost,
		path:        "/accounts/register",
		body:        body,
		contentType: "application/json",
	}, nil)
}

// Logout ends the session server-side.
func (c *Client) Logout(ctx context.Context, token string) (http.Header, error) {
	return c.send(ctx, call{method: http.MethodGet, path: "/accounts/logout", token: token}, nil)
}

// UsernameExists reports whether username is taken.
func (c *Client) UsernameExists(ctx context.Context, username string) (bool, error) {
	var out struct {
		Exists bool `json:"exists"`
	}
	_, err := c.send(ctx, call{
		method: http.MethodGet,
		path:   "/accounts/usernameExists",
		query:  url.Values{"username": {username}},
	}, &out)
	return out.Exists, err
}

// AuthCode issues a one-time code that links the desktop client to the
// session's account.
func (c *Client) AuthCode(ctx context.Context, token string) (string, error) {
	var out struct {
		Code string `json:"code"`
	}
	_, err := c.send(ctx, call{method: http.MethodGet, path: "/accounts/authcode", token: token}, &out)
	return out.Code, err
}

package apiclient

import (
	"context"

	"github.com/pkg/errors"

	"github.com/classpoint/classpoint/core/session"
)

type (
	loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	authResponse struct {
		Token string `json:"token"`
		User  struct {
			ID       int    `json:"id"`
			Username string `json:"username"`
			Role     string `json:"role"`
			Name     string `json:"name"`
		} `json:"user"`
	}
)

// Login authenticates and establishes the session. In offline mode the local
// registry answers; otherwise the backend issues the bearer token and the
// identity is persisted through the session store.
func (c *Client) Login(ctx context.Context, username, password string) (session.Session, error) {
	if c.offline() {
		return c.sess.Login(username, password)
	}

	var resp authResponse
	if err := c.sendJSON(ctx, "POST", "/auth/login", loginRequest{Username: username, Password: password}, &resp); err != nil {
		return session.Session{}, err
	}
	return c.establish(resp)
}

// Register creates an account and auto-logs it in, mirroring Login's split
// between the offline registry and the backend.
func (c *Client) Register(ctx context.Context, na session.NewAccount) (session.Session, error) {
	if c.offline() {
		return c.sess.Register(na)
	}

	if err := na.Validate(c.validate, c.translator); err != nil {
		return session.Session{}, err
	}
	var resp authResponse
	if err := c.sendJSON(ctx, "POST", "/auth/register", na, &resp); err != nil {
		return session.Session{}, err
	}
	return c.establish(resp)
}

func (c *Client) Logout() error {
	return c.sess.Logout()
}

func (c *Client) offline() bool {
	return c.conf != nil && c.conf.OfflineMode
}

func (c *Client) establish(resp authResponse) (session.Session, error) {
	sess := session.Session{
		ID:       resp.User.ID,
		Username: resp.User.Username,
		Role:     resp.User.Role,
		Name:     resp.User.Name,
		Token:    resp.Token,
	}
	if err := c.sess.SetSession(sess); err != nil {
		return session.Session{}, errors.Wrap(err, "persisting session")
	}
	return sess, nil
}

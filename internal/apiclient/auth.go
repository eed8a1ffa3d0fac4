package apiclient

import (
	"context"
	"errors"
	"net/http"

	"im-client/internal/auth"
	"im-client/internal/models"
)

var errNoToken = errors.New("login response carried no token")

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Avatar   string `json:"avatar,omitempty"`
}

// Login exchanges credentials for an identity.
func (c *Client) Login(ctx context.Context, username, password string) (models.Identity, error) {
	if err := auth.ValidateCredentials(username, password); err != nil {
		return models.Identity{}, err
	}
	return c.authenticate(ctx, "/api/auth/login", credentialsRequest{Username: username, Password: password})
}

// Signup registers a user and logs it in.
func (c *Client) Signup(ctx context.Context, username, password, avatarURL string) (models.Identity, error) {
	if err := auth.ValidateCredentials(username, password); err != nil {
		return models.Identity{}, err
	}
	return c.authenticate(ctx, "/api/auth/signup", credentialsRequest{Username: username, Password: password, Avatar: avatarURL})
}

// Logout revokes the token server side.
func (c *Client) Logout(ctx context.Context, identity models.Identity) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, identity.Token, nil, nil)
}

func (c *Client) authenticate(ctx context.Context, path string, req credentialsRequest) (models.Identity, error) {
	var resp authPayload
	if err := c.doJSON(ctx, http.MethodPost, path, nil, "", req, &resp); err != nil {
		return models.Identity{}, err
	}
	if resp.Token == "" {
		return models.Identity{}, errNoToken
	}
	identity := resp.identity()
	if identity.IsZero() {
		return models.Identity{}, errors.New("login response carried no user id")
	}
	return identity, nil
}

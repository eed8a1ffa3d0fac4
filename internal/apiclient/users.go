package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"im-client/internal/imtypes"
	"im-client/internal/models"
)

// SearchUsers matches users by username. Like ListAllUsers it sends no token;
// use DirectoryFor when the API requires one.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]models.Profile, error) {
	return c.searchUsers(ctx, "", query)
}

func (c *Client) ListAllUsers(ctx context.Context) ([]models.Profile, error) {
	return c.listAllUsers(ctx, "")
}

// DirectoryFor returns a directory gateway that authenticates as identity
// when directory auth is enabled, and c itself otherwise.
func (c *Client) DirectoryFor(identity models.Identity) imtypes.DirectoryGateway {
	if !c.directoryAuth {
		return c
	}
	return authedDirectory{client: c, token: identity.Token}
}

type authedDirectory struct {
	client *Client
	token  string
}

func (d authedDirectory) SearchUsers(ctx context.Context, query string) ([]models.Profile, error) {
	return d.client.searchUsers(ctx, d.token, query)
}

func (d authedDirectory) ListAllUsers(ctx context.Context) ([]models.Profile, error) {
	return d.client.listAllUsers(ctx, d.token)
}

func (c *Client) searchUsers(ctx context.Context, token, query string) ([]models.Profile, error) {
	var users []userPayload
	q := url.Values{"q": {query}}
	if err := c.doJSON(ctx, http.MethodGet, "/api/users/search", q, token, nil, &users); err != nil {
		return nil, err
	}
	return profiles(users), nil
}

func (c *Client) listAllUsers(ctx context.Context, token string) ([]models.Profile, error) {
	var users []userPayload
	if err := c.doJSON(ctx, http.MethodGet, "/api/users", nil, token, nil, &users); err != nil {
		return nil, err
	}
	return profiles(users), nil
}

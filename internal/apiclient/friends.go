package apiclient

import (
	"context"
	"net/http"

	"im-client/internal/imtypes"
	"im-client/internal/models"
)

type friendsListResponse struct {
	Friends        []userPayload `json:"friends"`
	FriendRequests []userPayload `json:"friendRequests"`
}

// FetchFriends loads the friend list and the incoming requests.
func (c *Client) FetchFriends(ctx context.Context, identity models.Identity) (imtypes.FriendsList, error) {
	var resp friendsListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/friends/list", nil, identity.Token, nil, &resp); err != nil {
		return imtypes.FriendsList{}, err
	}
	return imtypes.FriendsList{
		Friends:  profiles(resp.Friends),
		Requests: profiles(resp.FriendRequests),
	}, nil
}

// SendFriendRequest creates a pending request to targetID.
func (c *Client) SendFriendRequest(ctx context.Context, identity models.Identity, targetID string) error {
	body := map[string]string{"toUserId": targetID}
	return c.doJSON(ctx, http.MethodPost, "/api/friends/request", nil, identity.Token, body, nil)
}

// RespondFriendRequest accepts or rejects the request from fromID.
func (c *Client) RespondFriendRequest(ctx context.Context, identity models.Identity, fromID string, accept bool) error {
	body := struct {
		FromUserID string `json:"fromUserId"`
		Accept     bool   `json:"accept"`
	}{fromID, accept}
	return c.doJSON(ctx, http.MethodPost, "/api/friends/respond", nil, identity.Token, body, nil)
}

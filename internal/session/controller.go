// Package session is the client-side state controller of a messaging UI. It
// keeps the friend graph, the user directory, the selected conversation and
// outgoing messages consistent with each other while every collaborator call
// stays pull based.
package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"im-client/internal/auth"
	"im-client/internal/imtypes"
	"im-client/internal/models"
)

// NoticeFriendRequestSent is shown after a successful friend request.
const NoticeFriendRequestSent = "Friend request sent"

// Gateways are the collaborators a controller talks to. Auth may be nil, in
// which case logout only tears the local session down.
type Gateways struct {
	Graph     imtypes.SocialGraphGateway
	Directory imtypes.DirectoryGateway
	Messages  imtypes.MessageGateway
	Responder imtypes.ResponderGateway
	Auth      imtypes.Authenticator
}

// GatewaysFor splits a backend into Gateways.
func GatewaysFor(backend imtypes.Backend, responder imtypes.ResponderGateway) Gateways {
	return Gateways{
		Graph:     backend,
		Directory: backend,
		Messages:  backend,
		Responder: responder,
		Auth:      backend,
	}
}

// Notice is the inline feedback for user-triggered actions.
type Notice struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ReadModel is the combined view handed to the presentation layer.
type ReadModel struct {
	Identity         models.Profile   `json:"identity"`
	Friends          []models.Profile `json:"friends"`
	IncomingRequests []models.Profile `json:"incomingRequests"`
	Selected         *models.Profile  `json:"selected"`
	State            ViewState        `json:"state"`
	Messages         []models.Message `json:"messages"`
	Directory        []models.Profile `json:"directory"`
	SearchQuery      string           `json:"searchQuery"`
	SearchResults    []models.Profile `json:"searchResults"`
	Draft            string           `json:"draft"`
	Awaiting         bool             `json:"awaitingReply"`
	Notice           *Notice          `json:"notice,omitempty"`
}

// Controller composes the session components into one view.
type Controller struct {
	session    *auth.Session
	auth       imtypes.Authenticator
	graph      *SocialGraph
	directory  *Directory
	convs      *Conversations
	dispatcher *Dispatcher
	opts       Options

	mu     sync.Mutex
	notice *Notice
}

func NewController(s *auth.Session, gw Gateways, opts Options) *Controller {
	opts = opts.withDefaults()
	graph := NewSocialGraph(s, gw.Graph, opts)
	convs := NewConversations(s, gw.Messages, opts)
	return &Controller{
		session:    s,
		auth:       gw.Auth,
		graph:      graph,
		directory:  NewDirectory(s, gw.Directory, graph, opts),
		convs:      convs,
		dispatcher: NewDispatcher(s, convs, gw.Messages, gw.Responder, opts),
		opts:       opts,
	}
}

// Mount loads the graph and then the directory. Failures leave empty views.
func (c *Controller) Mount(ctx context.Context) error {
	return c.Refresh(ctx)
}

// Refresh reloads the graph and the directory listing. Only a closed session
// is reported.
func (c *Controller) Refresh(ctx context.Context) error {
	if err := c.refreshGraph(ctx); err != nil {
		return err
	}
	return c.RefreshDirectory(ctx)
}

// RefreshDirectory refetches the "all users" listing.
func (c *Controller) RefreshDirectory(ctx context.Context) error {
	_, err := c.directory.ListAll(ctx)
	return silent(err)
}

// Select changes the conversation. nil clears the selection. A real user
// with an empty, own or reserved id is a ValidationError.
func (c *Controller) Select(ctx context.Context, cp models.Counterpart) error {
	return c.convs.Select(ctx, cp)
}

// SelectByID selects a friend or the responder by id. An empty id clears the
// selection.
func (c *Controller) SelectByID(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	switch id {
	case "":
		return c.Select(ctx, nil)
	case models.ResponderID:
		return c.Select(ctx, models.AutomatedResponder{})
	}
	friend, ok := c.graph.Friend(id)
	if !ok {
		return &ValidationError{Field: "counterpart", Reason: "not a friend: " + id}
	}
	return c.Select(ctx, models.NewRealUser(friend))
}

func (c *Controller) SetDraft(text string) {
	c.dispatcher.SetDraft(text)
}

// SendMessage sends the draft to the selected counterpart. Collaborator
// failures also set a notice.
func (c *Controller) SendMessage(ctx context.Context) error {
	sent, err := c.dispatcher.Send(ctx)
	if err != nil {
		c.failNotice(err)
		return err
	}
	if sent.Persisted {
		c.publish(ctx, EventMessageSent, sent.To.CounterpartID())
	}
	return nil
}

// SendFriendRequest asks for a friendship with targetID. On success the
// target leaves the cached directory views, then graph and directory are
// refetched.
func (c *Controller) SendFriendRequest(ctx context.Context, targetID string) error {
	targetID = strings.TrimSpace(targetID)
	if err := c.graph.SendRequest(ctx, targetID); err != nil {
		c.failNotice(err)
		return err
	}
	c.setNotice(&Notice{Success: true, Message: NoticeFriendRequestSent})
	c.directory.Forget(targetID)
	c.publish(ctx, EventFriendRequestSent, targetID)

	if err := c.refreshGraph(ctx); err != nil {
		return err
	}
	return c.RefreshDirectory(ctx)
}

// RespondToRequest accepts or rejects the request from fromID. Only a failed
// response is returned; once it went through the event is published and the
// directory refetched even if the graph refresh failed.
func (c *Controller) RespondToRequest(ctx context.Context, fromID string, accept bool) error {
	fromID = strings.TrimSpace(fromID)
	if err := c.graph.Respond(ctx, fromID, accept); err != nil {
		c.opts.Logger.Warn("respond to friend request failed",
			slog.String("from", fromID), slog.Bool("accept", accept), slog.Any("error", err))
		return err
	}
	event := EventFriendRequestRejected
	if accept {
		event = EventFriendRequestAccepted
	}
	c.publish(ctx, event, fromID)
	return c.RefreshDirectory(ctx)
}

// Search runs a directory search. Failures give an empty result.
func (c *Controller) Search(ctx context.Context, query string) ([]models.Profile, error) {
	results, err := c.directory.Search(ctx, query)
	return results, silent(err)
}

func (c *Controller) DismissNotice() {
	c.setNotice(nil)
}

// Snapshot returns the current read model. Every slice is a copy.
func (c *Controller) Snapshot() ReadModel {
	identity, _ := c.session.Identity()
	m := ReadModel{
		Identity:         identity.Profile,
		Friends:          c.graph.Friends(),
		IncomingRequests: c.graph.Requests(),
		State:            c.convs.State(),
		Messages:         c.convs.Messages(),
		Directory:        c.directory.Listing(),
		SearchQuery:      c.directory.Query(),
		SearchResults:    c.directory.SearchResults(),
		Draft:            c.dispatcher.Draft(),
		Awaiting:         c.dispatcher.Awaiting(),
	}
	if cp := c.convs.Selected(); cp != nil {
		p := cp.Profile()
		m.Selected = &p
	}
	c.mu.Lock()
	if c.notice != nil {
		n := *c.notice
		m.Notice = &n
	}
	c.mu.Unlock()
	return m
}

// Logout signs out with the collaborator (best effort), then closes the
// session and drops every cached view.
func (c *Controller) Logout(ctx context.Context) error {
	identity, err := c.session.Identity()
	if err != nil {
		return err
	}
	if c.auth != nil {
		callCtx, cancel := withTimeout(ctx, c.opts.CallTimeout)
		if err := c.auth.Logout(callCtx, identity); err != nil {
			c.opts.Logger.Warn("collaborator logout failed", slog.Any("error", err))
		}
		cancel()
	}
	c.publish(ctx, EventSessionEnded, "")

	closeErr := c.session.Close(ctx)
	c.graph.reset()
	c.directory.Reset()
	c.convs.Clear()
	c.dispatcher.reset()
	c.setNotice(nil)
	return closeErr
}

// Session returns the session the controller is bound to.
func (c *Controller) Session() *auth.Session {
	return c.session
}

func (c *Controller) refreshGraph(ctx context.Context) error {
	if err := c.graph.Refresh(ctx); err != nil {
		c.opts.Logger.Warn("graph refresh failed", slog.Any("error", err))
		return silent(err)
	}
	return nil
}

func (c *Controller) publish(ctx context.Context, t EventType, target string) {
	identity, err := c.session.Identity()
	if err != nil {
		return
	}
	callCtx, cancel := withTimeout(ctx, c.opts.CallTimeout)
	defer cancel()
	event := Event{Type: t, ActorID: identity.ID, TargetID: target, At: c.opts.Clock()}
	if err := c.opts.Events.Publish(callCtx, event); err != nil {
		c.opts.Logger.Warn("publish event failed", slog.String("type", string(t)), slog.Any("error", err))
	}
}

func (c *Controller) failNotice(err error) {
	if msg := UserMessage(err); msg != "" {
		c.setNotice(&Notice{Success: false, Message: msg})
	}
}

func (c *Controller) setNotice(n *Notice) {
	c.mu.Lock()
	c.notice = n
	c.mu.Unlock()
}

// silent drops collaborator failures; a closed session is still reported.
func silent(err error) error {
	if errors.Is(err, auth.ErrNotAuthenticated) {
		return err
	}
	return nil
}

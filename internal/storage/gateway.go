package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"im-client/internal/auth"
	"im-client/internal/config"
	"im-client/internal/imtypes"
	"im-client/internal/models"
)

// Rejections returned to the session. Their text is shown to the user.
var (
	ErrUnauthorized          = imtypes.Rejection("Unauthorized")
	ErrInvalidCredentials    = imtypes.Rejection("Invalid credentials")
	ErrUsernameTaken         = imtypes.Rejection("Username already exists")
	ErrFriendRequestSelf     = imtypes.Rejection("You cannot add yourself")
	ErrRecipientNotFound     = imtypes.Rejection("User not found")
	ErrAlreadyFriends        = imtypes.Rejection("Already friends")
	ErrFriendRequestExists   = imtypes.Rejection("Friend request already pending")
	ErrFriendRequestNotFound = imtypes.Rejection("Friend request not found")
	ErrNotFriends            = imtypes.Rejection("You can only message friends")
	ErrEmptyMessage          = imtypes.Rejection("Message cannot be empty")
)

// Gateway serves every session collaborator straight from the database.
// Identity-scoped calls validate the token and require it to belong to the
// identity.
type Gateway struct {
	db          *gorm.DB
	users       UserRepository
	requests    FriendRequestRepository
	friendships FriendshipRepository
	messages    MessageRepository
	authCfg     config.AuthConfig
	blacklist   auth.TokenBlacklist
	logger      *slog.Logger
	now         func() time.Time
}

var _ imtypes.Backend = (*Gateway)(nil)

// NewGateway wires the repositories over db. blacklist may be nil.
func NewGateway(db *gorm.DB, authCfg config.AuthConfig, blacklist auth.TokenBlacklist, logger *slog.Logger) *Gateway {
	return &Gateway{
		db:          db,
		users:       NewGormUserRepository(db),
		requests:    NewGormFriendRequestRepository(db),
		friendships: NewGormFriendshipRepository(db),
		messages:    NewGormMessageRepository(db),
		authCfg:     authCfg,
		blacklist:   blacklist,
		logger:      logger,
		now:         time.Now,
	}
}

func (g *Gateway) authorize(ctx context.Context, identity models.Identity) (uint, error) {
	claims, err := auth.ValidateToken(ctx, identity.Token, g.authCfg.JWTSecretKey, g.blacklist)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	id, err := models.ParseID(identity.ID)
	if err != nil || claims.UserID != id {
		return 0, fmt.Errorf("%w: token does not belong to user %q", ErrUnauthorized, identity.ID)
	}
	return id, nil
}

// FetchFriends loads friends and pending requesters concurrently.
func (g *Gateway) FetchFriends(ctx context.Context, identity models.Identity) (imtypes.FriendsList, error) {
	me, err := g.authorize(ctx, identity)
	if err != nil {
		return imtypes.FriendsList{}, err
	}

	var friends []models.User
	var pending []models.FriendRequest
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		ids, err := g.friendships.GetFriendIDs(egCtx, me)
		if err != nil {
			return fmt.Errorf("load friend ids: %w", err)
		}
		friends, err = g.users.GetByIDs(egCtx, ids)
		return err
	})
	eg.Go(func() error {
		var err error
		pending, err = g.requests.GetPendingRequestsForUser(egCtx, me)
		if err != nil {
			return fmt.Errorf("load pending requests: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return imtypes.FriendsList{}, err
	}

	list := imtypes.FriendsList{
		Friends:  make([]models.Profile, 0, len(friends)),
		Requests: make([]models.Profile, 0, len(pending)),
	}
	for i := range friends {
		list.Friends = append(list.Friends, friends[i].Profile())
	}
	for i := range pending {
		list.Requests = append(list.Requests, pending[i].Requester.Profile())
	}
	return list, nil
}

// SendFriendRequest applies the same checks as the chat server: no self
// requests, the recipient must exist, and neither a friendship nor a pending
// request in either direction may exist yet.
func (g *Gateway) SendFriendRequest(ctx context.Context, identity models.Identity, targetID string) error {
	me, err := g.authorize(ctx, identity)
	if err != nil {
		return err
	}
	target, err := models.ParseID(targetID)
	if err != nil {
		return ErrRecipientNotFound
	}
	if target == me {
		return ErrFriendRequestSelf
	}

	if _, err := g.users.GetByID(ctx, target); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipientNotFound
		}
		return fmt.Errorf("检查接收用户时出错: %w", err)
	}
	friends, err := g.friendships.AreUsersFriends(ctx, me, target)
	if err != nil {
		return fmt.Errorf("检查好友关系时出错: %w", err)
	}
	if friends {
		return ErrAlreadyFriends
	}
	existing, err := g.requests.FindPendingRequest(ctx, me, target)
	if err != nil {
		return fmt.Errorf("检查现有请求时出错: %w", err)
	}
	if existing != nil {
		return ErrFriendRequestExists
	}

	request := &models.FriendRequest{
		RequesterUserID: me,
		RecipientUserID: target,
		Status:          models.FriendRequestStatusPending,
	}
	if err := g.requests.Create(ctx, request); err != nil {
		return fmt.Errorf("create friend request: %w", err)
	}
	g.logger.Info("friend request created", slog.Uint64("from", uint64(me)), slog.Uint64("to", uint64(target)))
	return nil
}

// RespondFriendRequest resolves the pending request from fromID in one
// transaction. Acceptance also creates the friendship.
func (g *Gateway) RespondFriendRequest(ctx context.Context, identity models.Identity, fromID string, accept bool) error {
	me, err := g.authorize(ctx, identity)
	if err != nil {
		return err
	}
	from, err := models.ParseID(fromID)
	if err != nil {
		return ErrFriendRequestNotFound
	}

	status := models.FriendRequestStatusRejected
	if accept {
		status = models.FriendRequestStatusAccepted
	}
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request, err := g.requests.WithTx(tx).FindPendingFrom(ctx, from, me)
		if err != nil {
			return fmt.Errorf("find friend request: %w", err)
		}
		if request == nil {
			return ErrFriendRequestNotFound
		}
		if accept {
			if err := g.friendships.WithTx(tx).Create(ctx, models.NewFriendship(from, me)); err != nil {
				return fmt.Errorf("create friendship: %w", err)
			}
		}
		if err := g.requests.WithTx(tx).Resolve(ctx, request, status); err != nil {
			return fmt.Errorf("resolve friend request: %w", err)
		}
		return nil
	})
}

func (g *Gateway) SearchUsers(ctx context.Context, query string) ([]models.Profile, error) {
	users, err := g.users.Search(ctx, query, defaultSearchLimit)
	if err != nil {
		return nil, err
	}
	return userProfiles(users), nil
}

func (g *Gateway) ListAllUsers(ctx context.Context) ([]models.Profile, error) {
	users, err := g.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return userProfiles(users), nil
}

func (g *Gateway) FetchMessages(ctx context.Context, identity models.Identity, counterpartID string) ([]models.Message, error) {
	me, err := g.authorize(ctx, identity)
	if err != nil {
		return nil, err
	}
	other, err := models.ParseID(counterpartID)
	if err != nil {
		return nil, ErrRecipientNotFound
	}
	rows, err := g.messages.Between(ctx, me, other, 0)
	if err != nil {
		return nil, err
	}
	msgs := make([]models.Message, 0, len(rows))
	for i := range rows {
		msgs = append(msgs, rows[i].ToMessage())
	}
	return msgs, nil
}

// SendMessage stores a message between two friends.
func (g *Gateway) SendMessage(ctx context.Context, identity models.Identity, recipientID, body string) error {
	me, err := g.authorize(ctx, identity)
	if err != nil {
		return err
	}
	if strings.TrimSpace(body) == "" {
		return ErrEmptyMessage
	}
	recipient, err := models.ParseID(recipientID)
	if err != nil {
		return ErrRecipientNotFound
	}
	friends, err := g.friendships.AreUsersFriends(ctx, me, recipient)
	if err != nil {
		return fmt.Errorf("检查好友关系时出错: %w", err)
	}
	if !friends {
		return ErrNotFriends
	}
	return g.messages.Create(ctx, &models.DirectMessage{
		SenderID:    me,
		RecipientID: recipient,
		Content:     body,
		SentAt:      g.now(),
	})
}

// Login checks the password and issues a token.
func (g *Gateway) Login(ctx context.Context, username, password string) (models.Identity, error) {
	if err := auth.ValidateCredentials(username, password); err != nil {
		return models.Identity{}, err
	}
	user, err := g.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Identity{}, ErrInvalidCredentials
		}
		return models.Identity{}, fmt.Errorf("load user: %w", err)
	}
	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return models.Identity{}, ErrInvalidCredentials
	}
	if err := g.users.TouchLastSeen(ctx, user.ID, g.now()); err != nil {
		g.logger.Warn("update last seen failed", slog.Uint64("user", uint64(user.ID)), slog.Any("error", err))
	}
	return g.issue(user)
}

// Signup registers username and logs it in.
func (g *Gateway) Signup(ctx context.Context, username, password, avatarURL string) (models.Identity, error) {
	if err := auth.ValidateCredentials(username, password); err != nil {
		return models.Identity{}, err
	}
	username = strings.TrimSpace(username)
	if _, err := g.users.GetByUsername(ctx, username); err == nil {
		return models.Identity{}, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Identity{}, fmt.Errorf("check username: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.Identity{}, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{Username: username, PasswordHash: hash, AvatarURL: avatarURL}
	if err := g.users.Create(ctx, user); err != nil {
		return models.Identity{}, fmt.Errorf("create user: %w", err)
	}
	g.logger.Info("user registered", slog.Uint64("user", uint64(user.ID)))
	return g.issue(user)
}

// Logout blacklists the token until it would have expired.
func (g *Gateway) Logout(ctx context.Context, identity models.Identity) error {
	claims, err := auth.ValidateToken(ctx, identity.Token, g.authCfg.JWTSecretKey, g.blacklist)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if g.blacklist == nil || claims.ExpiresAt == nil {
		return nil
	}
	if err := g.blacklist.Add(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

func (g *Gateway) issue(user *models.User) (models.Identity, error) {
	token, err := auth.GenerateToken(user.ID, user.Username, g.authCfg)
	if err != nil {
		return models.Identity{}, err
	}
	return models.Identity{Profile: user.Profile(), Token: token}, nil
}

func userProfiles(users []models.User) []models.Profile {
	out := make([]models.Profile, 0, len(users))
	for i := range users {
		out = append(out, users[i].Profile())
	}
	return out
}

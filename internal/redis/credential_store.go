package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"im-client/internal/auth"
	"im-client/internal/models"

	"github.com/redis/go-redis/v9"
)

// credentialStore 把登录凭证保存在 Redis 中，适合多个客户端进程共享同一个登录状态。
type credentialStore struct {
	client redis.Cmdable
	key    string
	now    func() time.Time
}

// NewCredentialStore returns an auth.CredentialStore under key. When the
// stored token is a JWT the entry expires together with it.
func NewCredentialStore(client redis.Cmdable, key string) auth.CredentialStore {
	return &credentialStore{client: client, key: key, now: time.Now}
}

func (s *credentialStore) Load(ctx context.Context) (models.Identity, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return models.Identity{}, auth.ErrNoCredentials
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("load credentials %s: %w", s.key, err)
	}
	var identity models.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return models.Identity{}, fmt.Errorf("decode credentials %s: %w", s.key, err)
	}
	if identity.IsZero() {
		return models.Identity{}, auth.ErrNoCredentials
	}
	return identity, nil
}

func (s *credentialStore) Save(ctx context.Context, identity models.Identity) error {
	payload, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, payload, s.ttl(identity.Token)).Err(); err != nil {
		return fmt.Errorf("save credentials %s: %w", s.key, err)
	}
	return nil
}

func (s *credentialStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear credentials %s: %w", s.key, err)
	}
	return nil
}

// ttl is zero (no expiry) for opaque tokens.
func (s *credentialStore) ttl(token string) time.Duration {
	exp, ok := auth.TokenExpiry(token)
	if !ok {
		return 0
	}
	if d := exp.Sub(s.now()); d > 0 {
		return d
	}
	return time.Second
}

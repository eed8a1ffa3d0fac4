//go:generate go run go.uber.org/mock/mockgen -source=blacklist.go -destination=../mocks/mock_auth.go -package=mocks

package auth

import (
	"context"
	"errors"
	"time"

	"im-client/internal/models"
)

// ErrNoCredentials is returned by a CredentialStore that holds nothing.
var ErrNoCredentials = errors.New("no persisted credentials")

// TokenBlacklist 定义了 Token 黑名单的存储操作接口
type TokenBlacklist interface {
	// Add 将 jti 加入黑名单，并使其在 Token 的原始过期时间点之后自动从黑名单中移除。
	Add(ctx context.Context, jti string, originalTokenExpTime time.Time) error
	// IsBlacklisted 检查 jti 是否存在于黑名单中。
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// CredentialStore persists the authenticated identity across process restarts.
type CredentialStore interface {
	// Load returns ErrNoCredentials when nothing is stored.
	Load(ctx context.Context) (models.Identity, error)
	Save(ctx context.Context, identity models.Identity) error
	Clear(ctx context.Context) error
}

package storage

import (
	"context"

	"gorm.io/gorm"

	"im-client/internal/models"
)

// MessageRepository 定义了一对一消息数据操作的接口。消息创建后不再修改。
type MessageRepository interface {
	Create(ctx context.Context, message *models.DirectMessage) error
	// Between returns the conversation of a and b, oldest first. A positive
	// limit keeps only the most recent messages.
	Between(ctx context.Context, a, b uint, limit int) ([]models.DirectMessage, error)
}

// gormMessageRepository 使用 GORM 实现 MessageRepository。
type gormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository 创建一个新的基于 GORM 的 MessageRepository。
func NewGormMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

func (r *gormMessageRepository) Create(ctx context.Context, message *models.DirectMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *gormMessageRepository) Between(ctx context.Context, a, b uint, limit int) ([]models.DirectMessage, error) {
	query := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)", a, b, b, a).
		Order("sent_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messages []models.DirectMessage
	if err := query.Preload("Sender").Find(&messages).Error; err != nil {
		return nil, err
	}
	// 查询按倒序取最近的消息，返回前翻转为正序
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

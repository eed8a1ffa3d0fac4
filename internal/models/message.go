package models

import (
	"strconv"
	"time"
)

// Sender tags used by the responder conversation.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is one entry of a conversation history as seen by the session.
// For responder conversations SenderID is SenderUser or SenderBot.
type Message struct {
	ID          string    `json:"id,omitempty"`
	SenderID    string    `json:"senderId"`
	SenderName  string    `json:"senderName,omitempty"`
	RecipientID string    `json:"recipientId"`
	Body        string    `json:"body"`
	Timestamp   time.Time `json:"timestamp"`
}

// FromBot reports whether the message was produced by the responder.
func (m Message) FromBot() bool {
	return m.SenderID == SenderBot
}

// DirectMessage 代表直连模式下存储在数据库中的一对一聊天消息。
type DirectMessage struct {
	BaseModel
	SenderID    uint      `gorm:"index:idx_direct_message_pair;not null" json:"senderId"`
	RecipientID uint      `gorm:"index:idx_direct_message_pair;not null" json:"recipientId"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	SentAt      time.Time `gorm:"index;not null" json:"sentAt"`

	// 关联关系
	Sender User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

// TableName 指定 DirectMessage 模型的表名。
func (DirectMessage) TableName() string {
	return "direct_messages"
}

// ToMessage converts the stored row into the session view.
func (m *DirectMessage) ToMessage() Message {
	return Message{
		ID:          m.IDString(),
		SenderID:    strconv.FormatUint(uint64(m.SenderID), 10),
		SenderName:  m.Sender.Username,
		RecipientID: strconv.FormatUint(uint64(m.RecipientID), 10),
		Body:        m.Content,
		Timestamp:   m.SentAt,
	}
}

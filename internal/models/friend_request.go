package models

// FriendRequestStatus 定义好友请求的状态
type FriendRequestStatus string

const (
	FriendRequestStatusPending  FriendRequestStatus = "pending"
	FriendRequestStatusAccepted FriendRequestStatus = "accepted"
	FriendRequestStatusRejected FriendRequestStatus = "rejected"
)

// Terminal reports whether the request can no longer change.
func (s FriendRequestStatus) Terminal() bool {
	return s == FriendRequestStatusAccepted || s == FriendRequestStatusRejected
}

// FriendRequest 代表一个好友请求记录。处理完成后记录会被软删除。
type FriendRequest struct {
	BaseModel
	RequesterUserID uint                `gorm:"not null;index:idx_friend_request_users"`     // 请求发送者
	RecipientUserID uint                `gorm:"not null;index:idx_friend_request_users"`     // 请求接收者
	Status          FriendRequestStatus `gorm:"type:varchar(20);not null;default:'pending'"` // 请求状态

	Requester User `gorm:"foreignKey:RequesterUserID"`
}

package storage

import (
	"context"
	"errors"

	"im-client/internal/models"

	"gorm.io/gorm"
)

// FriendRequestRepository defines the interface for friend request data operations.
type FriendRequestRepository interface {
	Create(ctx context.Context, request *models.FriendRequest) error
	// FindPendingRequest looks in both directions. It returns nil, nil when
	// there is none.
	FindPendingRequest(ctx context.Context, userID1, userID2 uint) (*models.FriendRequest, error)
	// FindPendingFrom looks only for requester -> recipient.
	FindPendingFrom(ctx context.Context, requesterID, recipientID uint) (*models.FriendRequest, error)
	GetPendingRequestsForUser(ctx context.Context, recipientUserID uint) ([]models.FriendRequest, error)
	// Resolve sets the final status and soft deletes the request.
	Resolve(ctx context.Context, request *models.FriendRequest, status models.FriendRequestStatus) error
	WithTx(tx *gorm.DB) FriendRequestRepository
}

type gormFriendRequestRepository struct {
	db *gorm.DB
}

func NewGormFriendRequestRepository(db *gorm.DB) FriendRequestRepository {
	return &gormFriendRequestRepository{db: db}
}

func (r *gormFriendRequestRepository) WithTx(tx *gorm.DB) FriendRequestRepository {
	return &gormFriendRequestRepository{db: tx}
}

func (r *gormFriendRequestRepository) Create(ctx context.Context, request *models.FriendRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *gormFriendRequestRepository) FindPendingRequest(ctx context.Context, userID1, userID2 uint) (*models.FriendRequest, error) {
	return r.first(r.db.WithContext(ctx).
		Where("(requester_user_id = ? AND recipient_user_id = ?) OR (requester_user_id = ? AND recipient_user_id = ?)", userID1, userID2, userID2, userID1))
}

func (r *gormFriendRequestRepository) FindPendingFrom(ctx context.Context, requesterID, recipientID uint) (*models.FriendRequest, error) {
	return r.first(r.db.WithContext(ctx).
		Where("requester_user_id = ? AND recipient_user_id = ?", requesterID, recipientID))
}

func (r *gormFriendRequestRepository) first(query *gorm.DB) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := query.Where("status = ?", models.FriendRequestStatusPending).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// GetPendingRequestsForUser returns incoming requests, oldest first, with the
// requester loaded.
func (r *gormFriendRequestRepository) GetPendingRequestsForUser(ctx context.Context, recipientUserID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("recipient_user_id = ? AND status = ?", recipientUserID, models.FriendRequestStatusPending).
		Order("created_at").
		Find(&requests).Error
	return requests, err
}

func (r *gormFriendRequestRepository) Resolve(ctx context.Context, request *models.FriendRequest, status models.FriendRequestStatus) error {
	if !status.Terminal() {
		return errors.New("friend request can only be resolved to accepted or rejected")
	}
	db := r.db.WithContext(ctx)
	if err := db.Model(request).Update("status", status).Error; err != nil {
		return err
	}
	return db.Delete(request).Error
}

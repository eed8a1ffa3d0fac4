package models

import (
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// BaseModel defines the common fields for all stored models.
// DeletedAt enables soft deletes, which is how resolved friend requests disappear.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IDString returns the ID as a string.
func (b *BaseModel) IDString() string {
	return strconv.FormatUint(uint64(b.ID), 10)
}

// ParseID converts a session-level string id into a stored row id.
func ParseID(s string) (uint, error) {
	val, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q: %w", s, err)
	}
	return uint(val), nil
}

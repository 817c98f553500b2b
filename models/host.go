package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Host là hồ sơ công khai của một người làm podcast.
// UserID trỏ về tài khoản đã tạo hồ sơ, dùng cho kiểm tra quyền sở hữu.
type Host struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Avatar    string    `gorm:"type:text" json:"avatar"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (h *Host) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

func (h *Host) OwnerID() uuid.UUID {
	return h.UserID
}

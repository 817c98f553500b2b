package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthToken là phiên đăng nhập của một user. ID chính là jti trong JWT;
// xóa bản ghi là thu hồi đúng một token, các phiên khác vẫn còn hiệu lực.
type AuthToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TokenHash string    `gorm:"size:64;not null" json:"-"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

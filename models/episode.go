package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Episode struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PodcastID   uuid.UUID `gorm:"type:uuid;not null;index" json:"podcast_id"`
	Podcast     Podcast   `gorm:"constraint:OnDelete:CASCADE" json:"podcast"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	AudioURL    string    `gorm:"type:text;not null" json:"audio_url"`
	Duration    *int      `json:"duration"` // giây, có thể null
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e *Episode) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// OwnerID đi qua chuỗi sở hữu: tập -> podcast -> host.
// Cần Preload("Podcast") trước khi gọi.
func (e *Episode) OwnerID() uuid.UUID {
	return e.Podcast.HostID
}

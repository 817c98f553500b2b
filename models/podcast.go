package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Podcast struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Slug        string    `gorm:"size:255;index" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"type:text;not null" json:"image_url"`
	AudioURL    string    `gorm:"type:text;not null" json:"audio_url"`
	HostID      uuid.UUID `gorm:"type:uuid;not null;index" json:"host_id"`
	Host        User      `gorm:"foreignKey:HostID" json:"host"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Xóa podcast thì các tập bị xóa theo (FK cascade)
	Episodes []Episode `gorm:"constraint:OnDelete:CASCADE" json:"episodes,omitempty"`
}

func (p *Podcast) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Podcast) OwnerID() uuid.UUID {
	return p.HostID
}

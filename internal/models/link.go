package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LinkStatus string

const (
	LinkStatusActive  LinkStatus = "ACTIVE"
	LinkStatusDeleted LinkStatus = "DELETED"
)

// ShortLink is a shortened URL. A code is unique among ACTIVE links only;
// the schema enforces that with a partial unique index, so deleted codes can
// be picked up again by new links.
type ShortLink struct {
	ID          string     `json:"id" gorm:"type:uuid;primaryKey"`
	Code        string     `json:"code" gorm:"size:10;not null"`
	OriginalURL string     `json:"original_url" gorm:"type:text;not null"`
	Clicks      int64      `json:"clicks" gorm:"not null;default:0"`
	Status      LinkStatus `json:"status" gorm:"size:10;not null;default:ACTIVE"`
	OwnerID     *string    `json:"owner_id" gorm:"type:uuid"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
}

func (ShortLink) TableName() string { return "short_links" }

func (l *ShortLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

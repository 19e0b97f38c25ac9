package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User owns short links. Password holds the bcrypt hash, never clear text.
type User struct {
	ID        string     `json:"id" gorm:"type:uuid;primaryKey"`
	Email     string     `json:"email" gorm:"size:255;not null"`
	Password  string     `json:"-" gorm:"size:255;not null"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

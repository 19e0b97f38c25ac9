package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kaukau001/url-shortener-api/internal/models"
)

type GormUserRepository struct {
	db       *gorm.DB
	timeouts Timeouts
}

func NewUserRepository(db *gorm.DB, timeouts Timeouts) *GormUserRepository {
	return &GormUserRepository{db: db, timeouts: timeouts}
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeouts.Create)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, translate(err, "create user")
	}
	return user, nil
}

// FindByEmail matches the exact email among non-deleted users.
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email = ? AND deleted_at IS NULL", email)
}

func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *GormUserRepository) findOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeouts.Find)
	defer cancel()

	var user models.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate(err, "find user")
	}
	return &user, nil
}

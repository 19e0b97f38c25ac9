// Package repository gives the services their view of the persistence
// collaborator. The gorm implementations bound every call with an explicit
// deadline and translate storage errors into domain error kinds.
package repository

import (
	"context"
	"time"

	"github.com/kaukau001/url-shortener-api/internal/models"
)

// Timeouts are the per-operation persistence budgets.
type Timeouts struct {
	Create time.Duration
	Update time.Duration
	Find   time.Duration
}

// ListFilters narrows an owner's link listing. Zero values mean "no filter";
// pagination defaults are applied by the service, not here.
type ListFilters struct {
	Page      int
	Limit     int
	Status    models.LinkStatus
	Code      string // substring match
	ID        string
	StartDate *time.Time
	EndDate   *time.Time
}

type LinkRepository interface {
	Create(ctx context.Context, link *models.ShortLink) (*models.ShortLink, error)
	FindActiveByCode(ctx context.Context, code string) (*models.ShortLink, error)
	FindDeletedByCode(ctx context.Context, code string) (*models.ShortLink, error)
	IsCodeActive(ctx context.Context, code string) (bool, error)
	FindByID(ctx context.Context, id string) (*models.ShortLink, error)
	FindByOwnerWithFilters(ctx context.Context, ownerID string, filters ListFilters) ([]models.ShortLink, int64, error)
	IncrementClicks(ctx context.Context, id string) error
	// Update applies fields to the link and returns the reloaded row. A link
	// that no longer exists is a not-found error, never a nil result.
	Update(ctx context.Context, id string, fields map[string]any) (*models.ShortLink, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

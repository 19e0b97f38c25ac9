package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/kaukau001/url-shortener-api/internal/apperrors"
	"github.com/kaukau001/url-shortener-api/internal/models"
)

type GormLinkRepository struct {
	db       *gorm.DB
	timeouts Timeouts
}

func NewLinkRepository(db *gorm.DB, timeouts Timeouts) *GormLinkRepository {
	return &GormLinkRepository{db: db, timeouts: timeouts}
}

func (r *GormLinkRepository) Create(ctx context.Context, link *models.ShortLink) (*models.ShortLink, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeouts.Create)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return nil, translate(err, "create link")
	}
	return link, nil
}

func (r *GormLinkRepository) FindActiveByCode(ctx context.Context, code string) (*models.ShortLink, error) {
	return r.findOne(ctx, "code = ? AND status = ?", code, models.LinkStatusActive)
}

func (r *GormLinkRepository) FindDeletedByCode(ctx context.Context, code string) (*models.ShortLink, error) {
	return r.findOne(ctx, "code = ? AND status = ?", code, models.LinkStatusDeleted)
}

func (r *GormLinkRepository) FindByID(ctx context.Context, id string) (*models.ShortLink, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *GormLinkRepository) findOne(ctx context.Context, query string, args ...any) (*models.ShortLink, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeouts.Find)
	defer cancel()

	var link models.ShortLink
	err := r.db.WithContext(ctx).Where(query, args...).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate(err, "find link")
	}
	return &link, nil
}

func (r *GormLinkRepository) IsCodeActive(ctx context.Context, code string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeouts.Find)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ShortLink{}).
		Where("code = ? AND status = ?", code, models.LinkStatusActive).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "check code")
	}
	return count > 0, nil
}

func (r *GormLinkRepository) FindByOwnerWithFilters(ctx context.Context, ownerID string, filters ListFilters) ([]models.ShortLink, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeouts.Find)
	defer cancel()

	query := r.db.WithContext(ctx).Model(&models.ShortLink{}).Where("owner_id = ?", ownerID)

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Code != "" {
		query = query.Where("code LIKE ?", "%"+escapeLike(filters.Code)+"%")
	}
	if filters.ID != "" {
		query = query.Where("id = ?", filters.ID)
	}
	if filters.StartDate != nil {
		query = query.Where("created_at >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("created_at <= ?", *filters.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count links")
	}

	var links []models.ShortLink
	offset := (filters.Page - 1) * filters.Limit
	err := query.
		Order("created_at DESC").
		Limit(filters.Limit).
		Offset(offset).
		Find(&links).Error
	if err != nil {
		return nil, 0, translate(err, "list links")
	}

	return links, total, nil
}

func (r *GormLinkRepository) IncrementClicks(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).
		Model(&models.ShortLink{}).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", 1)).Error
	if err != nil {
		return translate(err, "increment clicks")
	}
	return nil
}

func (r *GormLinkRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.ShortLink, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeouts.Update)
	defer cancel()

	tx := r.db.WithContext(ctx).Model(&models.ShortLink{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return nil, translate(tx.Error, "update link")
	}
	if tx.RowsAffected == 0 {
		return nil, apperrors.NotFound("url not found")
	}

	var link models.ShortLink
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&link).Error; err != nil {
		return nil, translate(err, "reload link")
	}
	return &link, nil
}

// escapeLike neutralizes LIKE wildcards so the code filter is a literal
// substring match. Underscore is a legal code character, so without this a
// filter of "a_c" would also match "abc".
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// translate classifies storage failures. The unique-constraint case is the
// final authority on code uniqueness when two writers pass the pre-check at
// the same time.
func translate(err error, operation string) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Timeout(operation)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Conflict("code is already in use")
	default:
		return apperrors.Internal(operation+" failed", err)
	}
}

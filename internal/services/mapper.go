package services

import (
	"time"

	"github.com/kaukau001/url-shortener-api/internal/models"
)

type LinkResponse struct {
	ID          string            `json:"id"`
	Code        string            `json:"code"`
	OriginalURL string            `json:"originalUrl"`
	ShortURL    string            `json:"shortUrl"`
	Clicks      int64             `json:"clicks"`
	Status      models.LinkStatus `json:"status"`
	OwnerID     *string           `json:"userId"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	DeletedAt   *time.Time        `json:"deletedAt,omitempty"`
}

type Pagination struct {
	Page            int   `json:"page"`
	PreviousPage    *int  `json:"previousPage"`
	MaxItemsPerPage int   `json:"maxItemsPerPage"`
	TotalItems      int64 `json:"totalItems"`
	TotalPages      int   `json:"totalPages"`
	LastPage        bool  `json:"lastPage"`
}

type LinkListResponse struct {
	URLs       []LinkResponse `json:"urls"`
	Pagination Pagination     `json:"pagination"`
}

func toLinkResponse(link *models.ShortLink, baseURL string) *LinkResponse {
	return &LinkResponse{
		ID:          link.ID,
		Code:        link.Code,
		OriginalURL: link.OriginalURL,
		ShortURL:    baseURL + "/" + link.Code,
		Clicks:      link.Clicks,
		Status:      link.Status,
		OwnerID:     link.OwnerID,
		CreatedAt:   link.CreatedAt,
		UpdatedAt:   link.UpdatedAt,
		DeletedAt:   link.DeletedAt,
	}
}

// newPagination implements the pagination law: totalPages = ceil(total/limit),
// lastPage also holds for an empty result set, previousPage is nil on page 1.
func newPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	var previous *int
	if page > 1 {
		p := page - 1
		previous = &p
	}

	return Pagination{
		Page:            page,
		PreviousPage:    previous,
		MaxItemsPerPage: limit,
		TotalItems:      total,
		TotalPages:      totalPages,
		LastPage:        page >= totalPages,
	}
}

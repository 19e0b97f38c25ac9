package handlers

import (
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaukau001/url-shortener-api/internal/apperrors"
	"github.com/kaukau001/url-shortener-api/internal/models"
	"github.com/kaukau001/url-shortener-api/internal/repository"
)

var codePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type shortenRequest struct {
	OriginalURL string `json:"originalUrl" binding:"required,url"`
}

type updateCodeRequest struct {
	OriginalCode string `json:"originalCode" binding:"required,max=6"`
	NewCode      string `json:"newCode" binding:"required,min=3,max=6"`
}

type updateURLRequest struct {
	OriginalURL string `json:"originalUrl" binding:"required,url"`
}

type listQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status    string `form:"status" binding:"omitempty,oneof=ACTIVE DELETED"`
	Code      string `form:"code"`
	ID        string `form:"id" binding:"omitempty,uuid"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

func (h *Handler) shorten(c *gin.Context) {
	var req shortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.Validation(err.Error()))
		return
	}

	var ownerID *string
	if id, ok := userIDFrom(c); ok {
		ownerID = &id
	}

	link, err := h.links.Shorten(c.Request.Context(), req.OriginalURL, ownerID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, link)
}

func (h *Handler) listURLs(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		writeError(c, apperrors.Unauthorized("authentication required"))
		return
	}

	var query listQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeError(c, apperrors.Validation(err.Error()))
		return
	}

	filters, err := query.toFilters()
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := h.links.ListByOwner(c.Request.Context(), userID, filters)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (q listQuery) toFilters() (repository.ListFilters, error) {
	filters := repository.ListFilters{
		Page:   q.Page,
		Limit:  q.Limit,
		Status: models.LinkStatus(q.Status),
		Code:   q.Code,
		ID:     q.ID,
	}

	if q.StartDate != "" {
		start, err := parseDate(q.StartDate)
		if err != nil {
			return filters, apperrors.Validation("startDate must be a valid date")
		}
		filters.StartDate = &start
	}
	if q.EndDate != "" {
		if q.StartDate == "" {
			return filters, apperrors.Validation("endDate requires startDate")
		}
		end, err := parseDate(q.EndDate)
		if err != nil {
			return filters, apperrors.Validation("endDate must be a valid date")
		}
		if filters.StartDate != nil && end.Before(*filters.StartDate) {
			return filters, apperrors.Validation("endDate cannot be before startDate")
		}
		filters.EndDate = &end
	}

	return filters, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func (h *Handler) renameCode(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		writeError(c, apperrors.Unauthorized("authentication required"))
		return
	}

	var req updateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.Validation(err.Error()))
		return
	}
	if !codePattern.MatchString(req.NewCode) {
		writeError(c, apperrors.Validation("new code can only contain letters, numbers, hyphens and underscores"))
		return
	}

	link, err := h.links.Rename(c.Request.Context(), req.OriginalCode, req.NewCode, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

func (h *Handler) updateURL(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		writeError(c, apperrors.Unauthorized("authentication required"))
		return
	}

	var req updateURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.Validation(err.Error()))
		return
	}

	link, err := h.links.UpdateURL(c.Request.Context(), c.Param("code"), userID, req.OriginalURL)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

func (h *Handler) deleteURL(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		writeError(c, apperrors.Unauthorized("authentication required"))
		return
	}

	link, err := h.links.SoftDelete(c.Request.Context(), c.Param("code"), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

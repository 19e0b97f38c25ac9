package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kaukau001/url-shortener-api/internal/apperrors"
	"github.com/kaukau001/url-shortener-api/internal/models"
	"github.com/kaukau001/url-shortener-api/internal/repository"
)

// ClickScheduler records a click for a link sometime after the redirect has
// already been answered. Implementations must never block the caller.
type ClickScheduler interface {
	Schedule(linkID string)
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 20
)

type LinkService struct {
	links   repository.LinkRepository
	gen     *CodeGenerator
	clicks  ClickScheduler
	baseURL string
	log     zerolog.Logger
}

func NewLinkService(links repository.LinkRepository, gen *CodeGenerator, clicks ClickScheduler, baseURL string, log zerolog.Logger) *LinkService {
	return &LinkService{
		links:   links,
		gen:     gen,
		clicks:  clicks,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log.With().Str("component", "link_service").Logger(),
	}
}

// Shorten creates an ACTIVE link for originalURL. ownerID is nil for
// anonymous links.
func (s *LinkService) Shorten(ctx context.Context, originalURL string, ownerID *string) (*LinkResponse, error) {
	originalURL = strings.TrimSpace(originalURL)
	if originalURL == "" {
		return nil, apperrors.Validation("original url is required")
	}

	code, err := s.gen.Generate(ctx)
	if err != nil {
		return nil, s.wrapShortenErr(err)
	}

	link, err := s.links.Create(ctx, &models.ShortLink{
		Code:        code,
		OriginalURL: originalURL,
		OwnerID:     ownerID,
		Status:      models.LinkStatusActive,
	})
	if err != nil {
		s.log.Error().Err(err).Str("code", code).Msg("failed to persist link")
		return nil, s.wrapShortenErr(err)
	}

	return toLinkResponse(link, s.baseURL), nil
}

func (s *LinkService) wrapShortenErr(err error) error {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation, apperrors.KindCodeGeneration, apperrors.KindUnavailable:
		return err
	default:
		return apperrors.Unavailable("url shortening temporarily unavailable")
	}
}

// Resolve returns the target URL for an ACTIVE code. It never returns an
// error: a blank code, a miss, and a storage hiccup all collapse to
// not-found, because redirects are the hot path and must not 500.
// On success a click increment is scheduled best-effort.
func (s *LinkService) Resolve(ctx context.Context, code string) (string, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false
	}

	link, err := s.links.FindActiveByCode(ctx, code)
	if err != nil {
		s.log.Warn().Err(err).Str("code", code).Msg("redirect lookup failed, treating as not found")
		return "", false
	}
	if link == nil {
		return "", false
	}

	s.clicks.Schedule(link.ID)
	return link.OriginalURL, true
}

// ListByOwner pages through an owner's links. A storage timeout degrades to
// an empty page rather than an error; the pagination stays well-formed.
func (s *LinkService) ListByOwner(ctx context.Context, ownerID string, filters repository.ListFilters) (*LinkListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = defaultPageLimit
	}
	if filters.Limit > maxPageLimit {
		filters.Limit = maxPageLimit
	}

	links, total, err := s.links.FindByOwnerWithFilters(ctx, strings.TrimSpace(ownerID), filters)
	if err != nil {
		switch apperrors.KindOf(err) {
		case apperrors.KindValidation:
			return nil, err
		case apperrors.KindTimeout:
			s.log.Warn().Str("owner_id", ownerID).Msg("list timed out, returning empty page")
			return s.emptyList(filters.Page, filters.Limit), nil
		default:
			s.log.Error().Err(err).Str("owner_id", ownerID).Msg("failed to list links")
			return nil, apperrors.Unavailable("unable to fetch urls at this time")
		}
	}

	if len(links) == 0 {
		return s.emptyList(filters.Page, filters.Limit), nil
	}

	urls := make([]LinkResponse, 0, len(links))
	for i := range links {
		urls = append(urls, *toLinkResponse(&links[i], s.baseURL))
	}

	return &LinkListResponse{
		URLs:       urls,
		Pagination: newPagination(filters.Page, filters.Limit, total),
	}, nil
}

func (s *LinkService) emptyList(page, limit int) *LinkListResponse {
	return &LinkListResponse{
		URLs:       []LinkResponse{},
		Pagination: newPagination(page, limit, 0),
	}
}

// Rename changes a link's code. The pre-check on the new code and the write
// are not atomic; a constraint violation at write time maps to the same
// conflict as the pre-check catching it.
func (s *LinkService) Rename(ctx context.Context, oldCode, newCode, ownerID string) (*LinkResponse, error) {
	newCode = strings.TrimSpace(newCode)

	link, err := s.loadOwned(ctx, oldCode, ownerID, "rename")
	if err != nil {
		return nil, err
	}

	active, err := s.links.IsCodeActive(ctx, newCode)
	if err != nil {
		return nil, s.wrapWriteErr(err, "rename")
	}
	if active {
		s.log.Warn().
			Str("owner_id", ownerID).
			Str("new_code", newCode).
			Msg("rename rejected, code already active")
		return nil, apperrors.Conflict("new code is already in use")
	}

	updated, err := s.links.Update(ctx, link.ID, map[string]any{"code": newCode})
	if err != nil {
		return nil, s.wrapWriteErr(err, "rename")
	}

	return toLinkResponse(updated, s.baseURL), nil
}

// UpdateURL changes a link's target.
func (s *LinkService) UpdateURL(ctx context.Context, code, ownerID, newURL string) (*LinkResponse, error) {
	newURL = strings.TrimSpace(newURL)
	if newURL == "" {
		return nil, apperrors.Validation("original url is required")
	}

	link, err := s.loadOwned(ctx, code, ownerID, "update")
	if err != nil {
		return nil, err
	}

	updated, err := s.links.Update(ctx, link.ID, map[string]any{"original_url": newURL})
	if err != nil {
		return nil, s.wrapWriteErr(err, "update")
	}

	return toLinkResponse(updated, s.baseURL), nil
}

// SoftDelete retires a link. Its code becomes available for reuse.
func (s *LinkService) SoftDelete(ctx context.Context, code, ownerID string) (*LinkResponse, error) {
	link, err := s.loadOwned(ctx, code, ownerID, "delete")
	if err != nil {
		return nil, err
	}

	updated, err := s.links.Update(ctx, link.ID, map[string]any{
		"status":     models.LinkStatusDeleted,
		"deleted_at": time.Now(),
	})
	if err != nil {
		return nil, s.wrapWriteErr(err, "delete")
	}

	return toLinkResponse(updated, s.baseURL), nil
}

// loadOwned fetches an ACTIVE link by code and applies the shared ownership
// policy: a missing lookup is not-found, while a link that is anonymous,
// someone else's, or already deleted is access-denied.
func (s *LinkService) loadOwned(ctx context.Context, code, ownerID, operation string) (*models.ShortLink, error) {
	link, err := s.links.FindActiveByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, s.wrapWriteErr(err, operation)
	}
	if link == nil {
		return nil, apperrors.NotFound("url not found")
	}
	if link.OwnerID == nil || *link.OwnerID != ownerID || link.Status == models.LinkStatusDeleted {
		return nil, apperrors.AccessDenied("you do not have permission to " + operation + " this url")
	}
	return link, nil
}

func (s *LinkService) wrapWriteErr(err error, operation string) error {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation, apperrors.KindNotFound, apperrors.KindAccessDenied, apperrors.KindConflict:
		return err
	case apperrors.KindTimeout:
		return apperrors.Unavailable(operation + " operation timed out, please try again")
	default:
		s.log.Error().Err(err).Str("operation", operation).Msg("unexpected storage error")
		return apperrors.Unavailable("unable to " + operation + " url at this time")
	}
}

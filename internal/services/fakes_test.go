package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kaukau001/url-shortener-api/internal/apperrors"
	"github.com/kaukau001/url-shortener-api/internal/models"
	"github.com/kaukau001/url-shortener-api/internal/repository"
)

// fakeLinkRepo is an in-memory LinkRepository. Error fields, when set, are
// returned by the matching operation so degradation paths are exercisable.
type fakeLinkRepo struct {
	mu    sync.Mutex
	links map[string]*models.ShortLink
	seq   int

	createErr   error
	findErr     error
	isActiveErr error
	listErr     error
	updateErr   error

	// updateNoRows makes Update behave as if the row disappeared after the
	// caller's read, matching zero rows on the write.
	updateNoRows bool

	incremented []string
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{links: map[string]*models.ShortLink{}}
}

func (f *fakeLinkRepo) Create(_ context.Context, link *models.ShortLink) (*models.ShortLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *link
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	// Strictly increasing timestamps keep newest-first ordering deterministic.
	f.seq++
	now := time.Now().Add(time.Duration(f.seq) * time.Millisecond)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	f.links[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (f *fakeLinkRepo) FindActiveByCode(_ context.Context, code string) (*models.ShortLink, error) {
	return f.findByCode(code, models.LinkStatusActive)
}

func (f *fakeLinkRepo) FindDeletedByCode(_ context.Context, code string) (*models.ShortLink, error) {
	return f.findByCode(code, models.LinkStatusDeleted)
}

func (f *fakeLinkRepo) findByCode(code string, status models.LinkStatus) (*models.ShortLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, link := range f.links {
		if link.Code == code && link.Status == status {
			copied := *link
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeLinkRepo) IsCodeActive(_ context.Context, code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.isActiveErr != nil {
		return false, f.isActiveErr
	}
	for _, link := range f.links {
		if link.Code == code && link.Status == models.LinkStatusActive {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLinkRepo) FindByID(_ context.Context, id string) (*models.ShortLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	if link, ok := f.links[id]; ok {
		copied := *link
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeLinkRepo) FindByOwnerWithFilters(_ context.Context, ownerID string, filters repository.ListFilters) ([]models.ShortLink, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, 0, f.listErr
	}

	var matched []models.ShortLink
	for _, link := range f.links {
		if link.OwnerID == nil || *link.OwnerID != ownerID {
			continue
		}
		if filters.Status != "" && link.Status != filters.Status {
			continue
		}
		if filters.ID != "" && link.ID != filters.ID {
			continue
		}
		if filters.Code != "" && !strings.Contains(link.Code, filters.Code) {
			continue
		}
		if filters.StartDate != nil && link.CreatedAt.Before(*filters.StartDate) {
			continue
		}
		if filters.EndDate != nil && link.CreatedAt.After(*filters.EndDate) {
			continue
		}
		matched = append(matched, *link)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	offset := (filters.Page - 1) * filters.Limit
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + filters.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeLinkRepo) IncrementClicks(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if link, ok := f.links[id]; ok {
		link.Clicks++
	}
	f.incremented = append(f.incremented, id)
	return nil
}

func (f *fakeLinkRepo) Update(_ context.Context, id string, fields map[string]any) (*models.ShortLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	link, ok := f.links[id]
	if !ok || f.updateNoRows {
		return nil, apperrors.NotFound("url not found")
	}
	if code, ok := fields["code"].(string); ok {
		link.Code = code
	}
	if url, ok := fields["original_url"].(string); ok {
		link.OriginalURL = url
	}
	if status, ok := fields["status"].(models.LinkStatus); ok {
		link.Status = status
	}
	if deletedAt, ok := fields["deleted_at"].(time.Time); ok {
		link.DeletedAt = &deletedAt
	}
	link.UpdatedAt = time.Now()
	copied := *link
	return &copied, nil
}

// fakeClicks records scheduled increments without running them.
type fakeClicks struct {
	mu  sync.Mutex
	ids []string
}

func (f *fakeClicks) Schedule(linkID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = append(f.ids, linkID)
}

func (f *fakeClicks) scheduled() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ids...)
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]*models.User
	findErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *user
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.CreatedAt = time.Now()
	f.users[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, user := range f.users {
		if user.Email == email && user.DeletedAt == nil {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

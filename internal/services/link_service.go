package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yaricp/simple-short-links/internal/models"
	"github.com/yaricp/simple-short-links/internal/repo"
	"github.com/yaricp/simple-short-links/internal/shortcode"
	"github.com/yaricp/simple-short-links/internal/utils"
)

const (
	cacheKeyPrefix = "link:"
	cacheTTL       = 10 * time.Minute
)

// LinkUpdate carries the updatable link fields; nil means leave as is.
type LinkUpdate struct {
	ShortText *string    `json:"short_text"`
	Expired   *time.Time `json:"expired"`
}

type LinkService struct {
	links      *repo.LinkRepo
	cache      *redis.Client
	expireDays int
	logger     *slog.Logger
}

// NewLinkService wires the link operations. cache may be nil, in which case
// redirect lookups always hit the database.
func NewLinkService(links *repo.LinkRepo, cache *redis.Client, expireDays int, logger *slog.Logger) *LinkService {
	return &LinkService{links: links, cache: cache, expireDays: expireDays, logger: logger}
}

// Create returns the existing link when the long URL was shortened before,
// whoever owns it; otherwise it stores a new link owned by user with the
// configured expiry window.
func (s *LinkService) Create(ctx context.Context, user *models.User, text string) (*models.Link, error) {
	existing, err := s.links.FindByText(ctx, text)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not look up link", nil)
	}

	code, err := shortcode.Generate(text)
	if err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not generate short code", nil)
	}

	link := &models.Link{
		Text:      text,
		ShortText: code,
		Expired:   time.Now().UTC().AddDate(0, 0, s.expireDays),
		OwnerID:   user.ID,
	}
	if err := s.links.Create(ctx, link); err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not create link", nil)
	}
	return link, nil
}

// List returns every link for admins and only owned links for everyone else.
func (s *LinkService) List(ctx context.Context, user *models.User, skip, limit int) ([]models.Link, error) {
	var ownerID *uint
	if !user.IsAdmin {
		ownerID = &user.ID
	}

	links, err := s.links.List(ctx, ownerID, skip, limit)
	if err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not list links", nil)
	}
	return links, nil
}

func (s *LinkService) Get(ctx context.Context, user *models.User, id uint) (*models.Link, error) {
	return s.authorized(ctx, user, id, OpRead)
}

func (s *LinkService) Update(ctx context.Context, user *models.User, id uint, upd LinkUpdate) (*models.Link, error) {
	link, err := s.authorized(ctx, user, id, OpWrite)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if upd.ShortText != nil {
		fields["short_text"] = *upd.ShortText
	}
	if upd.Expired != nil {
		fields["expired"] = *upd.Expired
	}

	updated, err := s.links.Update(ctx, id, fields)
	if err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not update link", nil)
	}

	s.invalidate(ctx, link.ShortText)
	if upd.ShortText != nil {
		s.invalidate(ctx, *upd.ShortText)
	}
	return updated, nil
}

func (s *LinkService) Delete(ctx context.Context, user *models.User, id uint) error {
	link, err := s.authorized(ctx, user, id, OpDelete)
	if err != nil {
		return err
	}

	if _, err := s.links.Delete(ctx, id); err != nil {
		return utils.NewAppError(500, "INTERNAL_ERROR", "could not delete link", nil)
	}

	s.invalidate(ctx, link.ShortText)
	return nil
}

// Resolve looks a link up by short code for the public redirect, consulting
// the cache first. Expired links still resolve until the sweeper removes
// them.
func (s *LinkService) Resolve(ctx context.Context, code string) (*models.Link, error) {
	if s.cache != nil {
		if val, err := s.cache.Get(ctx, cacheKeyPrefix+code).Result(); err == nil {
			var link models.Link
			if err := json.Unmarshal([]byte(val), &link); err == nil {
				return &link, nil
			}
		}
	}

	link, err := s.links.FindByShortCode(ctx, code)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, utils.NewAppError(404, "NOT_FOUND", "Link not found", nil)
	}
	if err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not look up link", nil)
	}

	if s.cache != nil {
		if data, err := json.Marshal(link); err == nil {
			if err := s.cache.Set(ctx, cacheKeyPrefix+code, data, cacheTTL).Err(); err != nil {
				s.logger.Warn("failed to cache link", "code", code, "error", err)
			}
		}
	}
	return link, nil
}

// authorized loads a link and applies the access policy: missing wins over
// forbidden, matching the order the endpoints always reported.
func (s *LinkService) authorized(ctx context.Context, user *models.User, id uint, op Operation) (*models.Link, error) {
	link, err := s.links.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, utils.NewAppError(404, "NOT_FOUND", "Link not found", nil)
	}
	if err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not load link", nil)
	}

	if !CanAccess(user, link, op) {
		return nil, utils.NewAppError(400, "FORBIDDEN", "Not enough permissions", nil)
	}
	return link, nil
}

func (s *LinkService) invalidate(ctx context.Context, code string) {
	if s.cache == nil || code == "" {
		return
	}
	if err := s.cache.Del(ctx, cacheKeyPrefix+code).Err(); err != nil {
		s.logger.Warn("failed to invalidate cached link", "code", code, "error", err)
	}
}

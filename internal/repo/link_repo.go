package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yaricp/simple-short-links/internal/models"
)

const defaultListLimit = 100

type LinkRepo struct {
	db *gorm.DB
}

func NewLinkRepo(db *gorm.DB) *LinkRepo {
	return &LinkRepo{db: db}
}

// FindByText returns the first link with exactly this long URL, regardless of
// owner. Used to avoid duplicate rows for an already-shortened URL.
func (r *LinkRepo) FindByText(ctx context.Context, text string) (*models.Link, error) {
	var link models.Link
	err := r.db.WithContext(ctx).Where("text = ?", text).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find link by text: %w", err)
	}
	return &link, nil
}

func (r *LinkRepo) FindByShortCode(ctx context.Context, code string) (*models.Link, error) {
	var link models.Link
	err := r.db.WithContext(ctx).Where("short_text = ?", code).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find link by short code: %w", err)
	}
	return &link, nil
}

func (r *LinkRepo) GetByID(ctx context.Context, id uint) (*models.Link, error) {
	var link models.Link
	err := r.db.WithContext(ctx).First(&link, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get link: %w", err)
	}
	return &link, nil
}

func (r *LinkRepo) Create(ctx context.Context, link *models.Link) error {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return fmt.Errorf("insert link: %w", err)
	}
	return nil
}

// List pages through links ordered by id. A nil ownerID returns every link
// (admin path); otherwise only the owner's links.
func (r *LinkRepo) List(ctx context.Context, ownerID *uint, skip, limit int) ([]models.Link, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if skip < 0 {
		skip = 0
	}

	query := r.db.WithContext(ctx).Order("id")
	if ownerID != nil {
		query = query.Where("owner_id = ?", *ownerID)
	}

	var links []models.Link
	if err := query.Offset(skip).Limit(limit).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return links, nil
}

// Update applies the given column values to a link and returns the fresh row.
func (r *LinkRepo) Update(ctx context.Context, id uint, fields map[string]any) (*models.Link, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Link{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, fmt.Errorf("update link: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *LinkRepo) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Link{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete link: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteExpired removes every link whose expiry is before now in a single
// statement and reports how many rows went away. Safe to call repeatedly.
func (r *LinkRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expired < ?", now).Delete(&models.Link{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete expired links: %w", res.Error)
	}
	return res.RowsAffected, nil
}

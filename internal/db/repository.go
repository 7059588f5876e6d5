package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/matchday/socialgraph/internal/models"
	"github.com/matchday/socialgraph/internal/social"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ProfileRepository provides profile-related database operations
type ProfileRepository struct {
	*Repository
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(repo *Repository) *ProfileRepository {
	return &ProfileRepository{Repository: repo}
}

// GetProfile retrieves a profile by ID
func (r *ProfileRepository) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// GetProfileByName retrieves a profile by name
func (r *ProfileRepository) GetProfileByName(ctx context.Context, name string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// ContentRepository provides content-related database operations. Content
// rows are owned by the external content store; this repository reads them
// and writes nothing but the three derived counters.
type ContentRepository struct {
	*Repository
}

// NewContentRepository creates a new content repository
func NewContentRepository(repo *Repository) *ContentRepository {
	return &ContentRepository{Repository: repo}
}

// GetContent retrieves a content row by ID
func (r *ContentRepository) GetContent(ctx context.Context, id int64) (*models.Content, error) {
	var content models.Content
	if err := r.db.WithContext(ctx).First(&content, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &content, nil
}

// counterColumn maps a fact kind to its counter column. The column name is
// taken from this fixed map, never from caller input.
func counterColumn(kind social.FactKind) (string, error) {
	switch kind {
	case social.FactLike:
		return "likes_count", nil
	case social.FactComment:
		return "comments_count", nil
	case social.FactSave:
		return "saves_count", nil
	default:
		return "", fmt.Errorf("unknown fact kind %q", kind)
	}
}

// ApplyCounterDelta applies a relative delta to one counter in a single
// UPDATE so concurrent deltas on the same row compose. Decrements floor at
// zero to tolerate double-delete races.
func (r *ContentRepository) ApplyCounterDelta(ctx context.Context, id int64, kind social.FactKind, delta int) error {
	column, err := counterColumn(kind)
	if err != nil {
		return err
	}

	var expr interface{}
	if delta >= 0 {
		expr = gorm.Expr(column+" + ?", delta)
	} else {
		expr = gorm.Expr("GREATEST("+column+" + ?, 0)", delta)
	}

	result := r.db.WithContext(ctx).
		Model(&models.Content{}).
		Where("id = ?", id).
		UpdateColumn(column, expr)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return social.NotFoundf("content %d not found", id)
	}
	return nil
}

// SetCounters overwrites the stored counters. Only the reconcile path calls
// this.
func (r *ContentRepository) SetCounters(ctx context.Context, id int64, likes, comments, saves int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Content{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"likes_count":    likes,
			"comments_count": comments,
			"saves_count":    saves,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return social.NotFoundf("content %d not found", id)
	}
	return nil
}

// ListContentIDs returns up to limit content ids greater than afterID, in
// ascending order. Used by the reconciliation sweep.
func (r *ContentRepository) ListContentIDs(ctx context.Context, afterID int64, limit int) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.Content{}).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

var (
	_ social.ProfileStore = (*ProfileRepository)(nil)
	_ social.ContentStore = (*ContentRepository)(nil)
)

package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/matchday/socialgraph/internal/models"
	"github.com/matchday/socialgraph/internal/social"
)

// TagRepository provides tag database operations
type TagRepository struct {
	*Repository
}

// NewTagRepository creates a new tag repository
func NewTagRepository(repo *Repository) *TagRepository {
	return &TagRepository{Repository: repo}
}

// GetActiveTag retrieves the active tag for a (content, profile) pair, or
// (nil, nil)
func (r *TagRepository) GetActiveTag(ctx context.Context, contentID, profileID int64) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).
		Where("content_id = ? AND tagged_profile_id = ? AND status = ?", contentID, profileID, models.TagStatusActive).
		First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// CreateTag inserts a new tag. The partial unique index on
// (content_id, tagged_profile_id) where status = 'active' turns a racing
// duplicate active tag into a conflict error without constraining the
// removed rows.
func (r *TagRepository) CreateTag(ctx context.Context, tag *models.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return social.Conflictf("profile %d is already tagged in content %d", tag.TaggedProfileID, tag.ContentID)
		}
		return err
	}
	return nil
}

// MarkTagRemoved flips a tag to removed, keeping the row as an audit trail
func (r *TagRepository) MarkTagRemoved(ctx context.Context, tagID int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Where("id = ? AND status = ?", tagID, models.TagStatusActive).
		UpdateColumns(map[string]interface{}{
			"status":     models.TagStatusRemoved,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return social.NotFoundf("active tag %d not found", tagID)
	}
	return nil
}

// ListActiveByProfile lists a profile's active tags, newest first
func (r *TagRepository) ListActiveByProfile(ctx context.Context, profileID int64) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.WithContext(ctx).
		Where("tagged_profile_id = ? AND status = ?", profileID, models.TagStatusActive).
		Order("created_at DESC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

var _ social.TagStore = (*TagRepository)(nil)

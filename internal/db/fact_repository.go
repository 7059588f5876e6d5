package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/matchday/socialgraph/internal/models"
	"github.com/matchday/socialgraph/internal/social"
)

// FactRepository provides like/comment/save fact-row database operations.
// Uniqueness for likes and saves is carried by the composite primary key, so
// duplicate inserts surface as conflict errors straight from the driver.
type FactRepository struct {
	*Repository
}

// NewFactRepository creates a new fact repository
func NewFactRepository(repo *Repository) *FactRepository {
	return &FactRepository{Repository: repo}
}

// InsertLike inserts a like fact row
func (r *FactRepository) InsertLike(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return social.Conflictf("profile %d already liked content %d", like.ActorID, like.ContentID)
		}
		return err
	}
	return nil
}

// DeleteLike deletes a like fact row
func (r *FactRepository) DeleteLike(ctx context.Context, contentID, actorID int64) error {
	result := r.db.WithContext(ctx).
		Where("content_id = ? AND actor_id = ?", contentID, actorID).
		Delete(&models.Like{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return social.NotFoundf("no like by profile %d on content %d", actorID, contentID)
	}
	return nil
}

// InsertSave inserts a save fact row
func (r *FactRepository) InsertSave(ctx context.Context, save *models.Save) error {
	if err := r.db.WithContext(ctx).Create(save).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return social.Conflictf("profile %d already saved content %d", save.ActorID, save.ContentID)
		}
		return err
	}
	return nil
}

// DeleteSave deletes a save fact row
func (r *FactRepository) DeleteSave(ctx context.Context, contentID, actorID int64) error {
	result := r.db.WithContext(ctx).
		Where("content_id = ? AND actor_id = ?", contentID, actorID).
		Delete(&models.Save{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return social.NotFoundf("no save by profile %d on content %d", actorID, contentID)
	}
	return nil
}

// InsertComment inserts a comment fact row
func (r *FactRepository) InsertComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetComment retrieves a comment by ID, or (nil, nil)
func (r *FactRepository) GetComment(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// DeleteComment deletes a comment by ID
func (r *FactRepository) DeleteComment(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return social.NotFoundf("comment %d not found", id)
	}
	return nil
}

// CountFacts counts the live fact rows of one kind for a content item
func (r *FactRepository) CountFacts(ctx context.Context, contentID int64, kind social.FactKind) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx)
	switch kind {
	case social.FactLike:
		query = query.Model(&models.Like{})
	case social.FactComment:
		query = query.Model(&models.Comment{})
	case social.FactSave:
		query = query.Model(&models.Save{})
	default:
		return 0, social.Validationf("unknown fact kind %q", kind)
	}
	if err := query.Where("content_id = ?", contentID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ social.FactStore = (*FactRepository)(nil)

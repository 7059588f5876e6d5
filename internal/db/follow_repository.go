package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/matchday/socialgraph/internal/models"
	"github.com/matchday/socialgraph/internal/social"
)

// FollowRepository provides follow-edge database operations
type FollowRepository struct {
	*Repository
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(repo *Repository) *FollowRepository {
	return &FollowRepository{Repository: repo}
}

// GetEdge retrieves the edge for an ordered pair, or (nil, nil)
func (r *FollowRepository) GetEdge(ctx context.Context, followerID, followingID int64) (*models.FollowEdge, error) {
	var edge models.FollowEdge
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&edge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &edge, nil
}

// CreateEdge inserts a new edge. The composite primary key turns a racing
// duplicate into a conflict error.
func (r *FollowRepository) CreateEdge(ctx context.Context, edge *models.FollowEdge) error {
	if err := r.db.WithContext(ctx).Create(edge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return social.Conflictf("follow edge %d -> %d already exists", edge.FollowerID, edge.FollowingID)
		}
		return err
	}
	return nil
}

// UpdateEdgeStatus updates the status of an existing edge
func (r *FollowRepository) UpdateEdgeStatus(ctx context.Context, followerID, followingID int64, status models.FollowStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.FollowEdge{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		UpdateColumns(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return social.NotFoundf("follow edge %d -> %d not found", followerID, followingID)
	}
	return nil
}

// DeleteEdge removes an edge and reports whether a row was deleted
func (r *FollowRepository) DeleteEdge(ctx context.Context, followerID, followingID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.FollowEdge{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// HasAcceptedEdge reports whether follower has an accepted edge to following
func (r *FollowRepository) HasAcceptedEdge(ctx context.Context, followerID, followingID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FollowEdge{}).
		Where("follower_id = ? AND following_id = ? AND status = ?", followerID, followingID, models.FollowStatusAccepted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListPending lists pending requests addressed to a profile, oldest first
func (r *FollowRepository) ListPending(ctx context.Context, followingID int64) ([]*models.FollowEdge, error) {
	var edges []*models.FollowEdge
	err := r.db.WithContext(ctx).
		Where("following_id = ? AND status = ?", followingID, models.FollowStatusPending).
		Order("created_at ASC").
		Find(&edges).Error
	if err != nil {
		return nil, err
	}
	return edges, nil
}

var _ social.FollowStore = (*FollowRepository)(nil)

package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/matchday/socialgraph/internal/models"
	"github.com/matchday/socialgraph/internal/social"
)

// NotificationRepository provides notification database operations
type NotificationRepository struct {
	*Repository
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(repo *Repository) *NotificationRepository {
	return &NotificationRepository{Repository: repo}
}

// CreateNotification inserts a new notification
func (r *NotificationRepository) CreateNotification(ctx context.Context, notif *models.Notification) error {
	return r.db.WithContext(ctx).Create(notif).Error
}

// GetNotification retrieves a notification by ID, or (nil, nil)
func (r *NotificationRepository) GetNotification(ctx context.Context, id int64) (*models.Notification, error) {
	var notif models.Notification
	if err := r.db.WithContext(ctx).First(&notif, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notif, nil
}

// MarkNotificationRead flips the read flag
func (r *NotificationRepository) MarkNotificationRead(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		UpdateColumn("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return social.NotFoundf("notification %d not found", id)
	}
	return nil
}

// CountUnread counts unread notifications for a recipient
func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListByRecipient lists notifications newest first. A lastID of 0 returns
// the newest page; otherwise only ids below lastID are returned.
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID, lastID int64, limit int) ([]*models.Notification, error) {
	query := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID)
	if lastID > 0 {
		query = query.Where("id < ?", lastID)
	}

	var notifs []*models.Notification
	err := query.Order("id DESC").Limit(limit).Find(&notifs).Error
	if err != nil {
		return nil, err
	}
	return notifs, nil
}

// PreferenceRepository provides notification-preference database operations
type PreferenceRepository struct {
	*Repository
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(repo *Repository) *PreferenceRepository {
	return &PreferenceRepository{Repository: repo}
}

// GetPreferences retrieves a preference row by profile ID, or (nil, nil)
func (r *PreferenceRepository) GetPreferences(ctx context.Context, profileID int64) (*models.NotificationPreference, error) {
	var prefs models.NotificationPreference
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		First(&prefs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prefs, nil
}

// CreatePreferences inserts a preference row. A racing create surfaces as a
// conflict error so the caller can re-read the winner's row.
func (r *PreferenceRepository) CreatePreferences(ctx context.Context, prefs *models.NotificationPreference) error {
	prefs.UpdatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Create(prefs).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return social.Conflictf("preferences for profile %d already exist", prefs.ProfileID)
		}
		return err
	}
	return nil
}

// SavePreferences updates an existing preference row
func (r *PreferenceRepository) SavePreferences(ctx context.Context, prefs *models.NotificationPreference) error {
	prefs.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Save(prefs).Error
}

var (
	_ social.NotificationStore = (*NotificationRepository)(nil)
	_ social.PreferenceStore   = (*PreferenceRepository)(nil)
)

package social

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/matchday/socialgraph/internal/models"
)

// PreferenceService owns the per-profile notification preference rows. The
// row is materialized on first read with the documented defaults, making the
// lazy-create explicit instead of a hidden global.
type PreferenceService struct {
	profiles ProfileStore
	store    PreferenceStore
	logger   *zap.Logger
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(profiles ProfileStore, store PreferenceStore, logger *zap.Logger) *PreferenceService {
	return &PreferenceService{
		profiles: profiles,
		store:    store,
		logger:   logger.With(zap.String("component", "prefs")),
	}
}

// Get returns the preference row for a profile, creating it with defaults on
// first access.
func (s *PreferenceService) Get(ctx context.Context, profileID int64) (*models.NotificationPreference, error) {
	profile, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %d: %w", profileID, err)
	}
	if profile == nil {
		return nil, NotFoundf("profile %d not found", profileID)
	}

	prefs, err := s.store.GetPreferences(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences for %d: %w", profileID, err)
	}
	if prefs != nil {
		return prefs, nil
	}

	prefs = models.DefaultPreferences(profileID)
	if err := s.store.CreatePreferences(ctx, prefs); err != nil {
		// Lost the upsert race; the winner's row is authoritative
		if IsConflict(err) {
			return s.store.GetPreferences(ctx, profileID)
		}
		return nil, fmt.Errorf("failed to create preferences for %d: %w", profileID, err)
	}

	s.logger.Debug("Created default preferences", zap.Int64("profile_id", profileID))
	return prefs, nil
}

// Set updates one category flag. Only the owning profile may change its own
// preferences.
func (s *PreferenceService) Set(ctx context.Context, actorID, profileID int64, category string, value bool) (*models.NotificationPreference, error) {
	if actorID != profileID {
		return nil, Permissionf("profile %d may not change preferences of profile %d", actorID, profileID)
	}

	prefs, err := s.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !prefs.SetCategory(category, value) {
		return nil, Validationf("unknown preference category %q", category)
	}
	if err := s.store.SavePreferences(ctx, prefs); err != nil {
		return nil, fmt.Errorf("failed to save preferences for %d: %w", profileID, err)
	}
	return prefs, nil
}

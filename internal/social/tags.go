package social

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/matchday/socialgraph/internal/models"
)

// TagService associates profiles with content items. Removal is a soft
// status flip so the row remains as an audit trail.
type TagService struct {
	profiles   ProfileStore
	contents   ContentStore
	tags       TagStore
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewTagService creates a new tag service
func NewTagService(profiles ProfileStore, contents ContentStore, tags TagStore, dispatcher *Dispatcher, logger *zap.Logger) *TagService {
	return &TagService{
		profiles:   profiles,
		contents:   contents,
		tags:       tags,
		dispatcher: dispatcher,
		logger:     logger.With(zap.String("component", "tags")),
	}
}

// TagProfile tags a profile in a content item and notifies the tagged
// profile. Self-tags are allowed; the dispatcher's self-exclusion keeps them
// silent.
func (s *TagService) TagProfile(ctx context.Context, contentID, taggedProfileID, createdByID int64) (*models.Tag, error) {
	content, err := s.contents.GetContent(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load content %d: %w", contentID, err)
	}
	if content == nil {
		return nil, NotFoundf("content %d not found", contentID)
	}
	for _, id := range []int64{taggedProfileID, createdByID} {
		profile, err := s.profiles.GetProfile(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile %d: %w", id, err)
		}
		if profile == nil {
			return nil, NotFoundf("profile %d not found", id)
		}
	}

	existing, err := s.tags.GetActiveTag(ctx, contentID, taggedProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing tag: %w", err)
	}
	if existing != nil {
		return nil, Conflictf("profile %d is already tagged in content %d", taggedProfileID, contentID)
	}

	now := time.Now().UTC()
	tag := &models.Tag{
		ContentID:       contentID,
		TaggedProfileID: taggedProfileID,
		CreatedByID:     createdByID,
		Status:          models.TagStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.tags.CreateTag(ctx, tag); err != nil {
		return nil, err
	}

	tagID := tag.ID
	if _, err := s.dispatcher.Dispatch(ctx, taggedProfileID, models.NotifyTypeTag, createdByID, Ref{ContentID: &contentID, TagID: &tagID}); err != nil {
		s.logger.Error("Failed to dispatch tag notification",
			zap.Int64("tag_id", tagID),
			zap.Int64("recipient", taggedProfileID),
			zap.Error(err))
	}

	s.logger.Debug("Tagged profile",
		zap.Int64("content_id", contentID),
		zap.Int64("tagged_profile_id", taggedProfileID),
		zap.Int64("created_by", createdByID))

	return tag, nil
}

// UntagProfile removes an active tag. Permitted to the content owner and to
// the tagged profile themself.
func (s *TagService) UntagProfile(ctx context.Context, contentID, taggedProfileID, actorID int64) error {
	content, err := s.contents.GetContent(ctx, contentID)
	if err != nil {
		return fmt.Errorf("failed to load content %d: %w", contentID, err)
	}
	if content == nil {
		return NotFoundf("content %d not found", contentID)
	}
	if actorID != content.OwnerID && actorID != taggedProfileID {
		return Permissionf("profile %d may not remove the tag of profile %d on content %d", actorID, taggedProfileID, contentID)
	}

	tag, err := s.tags.GetActiveTag(ctx, contentID, taggedProfileID)
	if err != nil {
		return fmt.Errorf("failed to load tag: %w", err)
	}
	if tag == nil {
		return NotFoundf("no active tag for profile %d on content %d", taggedProfileID, contentID)
	}

	if err := s.tags.MarkTagRemoved(ctx, tag.ID); err != nil {
		return fmt.Errorf("failed to remove tag %d: %w", tag.ID, err)
	}

	s.logger.Debug("Removed tag",
		zap.Int64("tag_id", tag.ID),
		zap.Int64("actor", actorID))

	return nil
}

// TaggedContent lists the content a profile is actively tagged in. Under the
// resolver's tag clause every item here is viewable by the tagged profile.
func (s *TagService) TaggedContent(ctx context.Context, profileID int64) ([]*models.Content, error) {
	profile, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %d: %w", profileID, err)
	}
	if profile == nil {
		return nil, NotFoundf("profile %d not found", profileID)
	}

	tags, err := s.tags.ListActiveByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags for profile %d: %w", profileID, err)
	}

	contents := make([]*models.Content, 0, len(tags))
	for _, tag := range tags {
		content, err := s.contents.GetContent(ctx, tag.ContentID)
		if err != nil {
			return nil, fmt.Errorf("failed to load content %d: %w", tag.ContentID, err)
		}
		// Content deleted externally after tagging; skip rather than fail
		if content == nil {
			continue
		}
		contents = append(contents, content)
	}
	return contents, nil
}

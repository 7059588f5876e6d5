package social

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/matchday/socialgraph/internal/models"
)

// EngagementService records and removes like/comment/save fact rows. Each
// successful mutation publishes exactly one event; the counter maintainer and
// notification fan-out react to it independently.
type EngagementService struct {
	profiles ProfileStore
	contents ContentStore
	facts    FactStore
	bus      *Bus
	logger   *zap.Logger
}

// NewEngagementService creates a new engagement service
func NewEngagementService(profiles ProfileStore, contents ContentStore, facts FactStore, bus *Bus, logger *zap.Logger) *EngagementService {
	return &EngagementService{
		profiles: profiles,
		contents: contents,
		facts:    facts,
		bus:      bus,
		logger:   logger.With(zap.String("component", "engagement")),
	}
}

// RecordLike inserts a like fact row. A duplicate like by the same actor is a
// Conflict error and leaves the counter untouched.
func (s *EngagementService) RecordLike(ctx context.Context, contentID, actorID int64) error {
	content, err := s.requireContentAndActor(ctx, contentID, actorID)
	if err != nil {
		return err
	}
	like := &models.Like{ContentID: contentID, ActorID: actorID, CreatedAt: time.Now().UTC()}
	if err := s.facts.InsertLike(ctx, like); err != nil {
		return err
	}
	s.bus.Publish(ctx, Event{Action: ActionInsert, Kind: FactLike, ContentID: contentID, OwnerID: content.OwnerID, ActorID: actorID})
	return nil
}

// RemoveLike deletes a like fact row.
func (s *EngagementService) RemoveLike(ctx context.Context, contentID, actorID int64) error {
	content, err := s.requireContentAndActor(ctx, contentID, actorID)
	if err != nil {
		return err
	}
	if err := s.facts.DeleteLike(ctx, contentID, actorID); err != nil {
		return err
	}
	s.bus.Publish(ctx, Event{Action: ActionDelete, Kind: FactLike, ContentID: contentID, OwnerID: content.OwnerID, ActorID: actorID})
	return nil
}

// RecordSave inserts a save fact row with the same uniqueness rule as likes.
// Saves are counted but never notified.
func (s *EngagementService) RecordSave(ctx context.Context, contentID, actorID int64) error {
	content, err := s.requireContentAndActor(ctx, contentID, actorID)
	if err != nil {
		return err
	}
	save := &models.Save{ContentID: contentID, ActorID: actorID, CreatedAt: time.Now().UTC()}
	if err := s.facts.InsertSave(ctx, save); err != nil {
		return err
	}
	s.bus.Publish(ctx, Event{Action: ActionInsert, Kind: FactSave, ContentID: contentID, OwnerID: content.OwnerID, ActorID: actorID})
	return nil
}

// RemoveSave deletes a save fact row.
func (s *EngagementService) RemoveSave(ctx context.Context, contentID, actorID int64) error {
	content, err := s.requireContentAndActor(ctx, contentID, actorID)
	if err != nil {
		return err
	}
	if err := s.facts.DeleteSave(ctx, contentID, actorID); err != nil {
		return err
	}
	s.bus.Publish(ctx, Event{Action: ActionDelete, Kind: FactSave, ContentID: contentID, OwnerID: content.OwnerID, ActorID: actorID})
	return nil
}

// RecordComment inserts a comment fact row and returns it. An actor may
// comment on the same content any number of times.
func (s *EngagementService) RecordComment(ctx context.Context, contentID, actorID int64, body string) (*models.Comment, error) {
	if body == "" {
		return nil, Validationf("comment body must not be empty")
	}
	content, err := s.requireContentAndActor(ctx, contentID, actorID)
	if err != nil {
		return nil, err
	}
	comment := &models.Comment{
		ContentID: contentID,
		ActorID:   actorID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.facts.InsertComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}
	s.bus.Publish(ctx, Event{Action: ActionInsert, Kind: FactComment, ContentID: contentID, OwnerID: content.OwnerID, ActorID: actorID})
	return comment, nil
}

// RemoveComment deletes a comment. Only the comment author or the content
// owner may remove it.
func (s *EngagementService) RemoveComment(ctx context.Context, commentID, actorID int64) error {
	comment, err := s.facts.GetComment(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to load comment %d: %w", commentID, err)
	}
	if comment == nil {
		return NotFoundf("comment %d not found", commentID)
	}

	content, err := s.requireContent(ctx, comment.ContentID)
	if err != nil {
		return err
	}
	if actorID != comment.ActorID && actorID != content.OwnerID {
		return Permissionf("profile %d may not remove comment %d", actorID, commentID)
	}

	if err := s.facts.DeleteComment(ctx, commentID); err != nil {
		return err
	}
	s.bus.Publish(ctx, Event{Action: ActionDelete, Kind: FactComment, ContentID: comment.ContentID, OwnerID: content.OwnerID, ActorID: comment.ActorID})
	return nil
}

func (s *EngagementService) requireContent(ctx context.Context, contentID int64) (*models.Content, error) {
	content, err := s.contents.GetContent(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load content %d: %w", contentID, err)
	}
	if content == nil {
		return nil, NotFoundf("content %d not found", contentID)
	}
	return content, nil
}

func (s *EngagementService) requireContentAndActor(ctx context.Context, contentID, actorID int64) (*models.Content, error) {
	content, err := s.requireContent(ctx, contentID)
	if err != nil {
		return nil, err
	}
	actor, err := s.profiles.GetProfile(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %d: %w", actorID, err)
	}
	if actor == nil {
		return nil, NotFoundf("profile %d not found", actorID)
	}
	return content, nil
}

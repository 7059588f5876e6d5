package social

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/matchday/socialgraph/internal/models"
)

// Decision is a response to a pending follow request.
type Decision string

// Decisions
const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// FollowService implements the follow-request lifecycle between two
// profiles: none -> pending -> {accepted, rejected}, with deletion reachable
// from any state.
type FollowService struct {
	profiles   ProfileStore
	follows    FollowStore
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewFollowService creates a new follow service
func NewFollowService(profiles ProfileStore, follows FollowStore, dispatcher *Dispatcher, logger *zap.Logger) *FollowService {
	return &FollowService{
		profiles:   profiles,
		follows:    follows,
		dispatcher: dispatcher,
		logger:     logger.With(zap.String("component", "follow")),
	}
}

// Request creates a follow edge from follower to following. When the target
// profile does not require approval the edge is created directly in the
// accepted state and the followed party is notified; otherwise it stays
// pending and nothing is dispatched until the target responds.
func (s *FollowService) Request(ctx context.Context, followerID, followingID int64) (*models.FollowEdge, error) {
	if followerID == followingID {
		return nil, Validationf("profile %d cannot follow itself", followerID)
	}

	if _, err := s.requireProfile(ctx, followerID); err != nil {
		return nil, err
	}
	target, err := s.requireProfile(ctx, followingID)
	if err != nil {
		return nil, err
	}

	existing, err := s.follows.GetEdge(ctx, followerID, followingID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing edge: %w", err)
	}
	if existing != nil {
		return nil, Conflictf("follow edge %d -> %d already exists (%s)", followerID, followingID, existing.Status)
	}

	status := models.FollowStatusPending
	if !target.RequiresApproval() {
		status = models.FollowStatusAccepted
	}

	now := time.Now().UTC()
	edge := &models.FollowEdge{
		FollowerID:  followerID,
		FollowingID: followingID,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.follows.CreateEdge(ctx, edge); err != nil {
		return nil, err
	}

	if status == models.FollowStatusAccepted {
		s.notify(ctx, followingID, models.NotifyTypeNewFollower, followerID, Ref{})
	}

	s.logger.Debug("Processed follow request",
		zap.Int64("follower", followerID),
		zap.Int64("following", followingID),
		zap.String("status", string(status)))

	return edge, nil
}

// Respond accepts or rejects a pending follow request. Only the following
// party may respond. Accepting notifies the original requester.
func (s *FollowService) Respond(ctx context.Context, actorID, followerID, followingID int64, decision Decision) (*models.FollowEdge, error) {
	if decision != DecisionAccept && decision != DecisionReject {
		return nil, Validationf("unknown decision %q", decision)
	}
	if actorID != followingID {
		return nil, Permissionf("profile %d may not respond to a request addressed to %d", actorID, followingID)
	}

	edge, err := s.follows.GetEdge(ctx, followerID, followingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load edge: %w", err)
	}
	if edge == nil || edge.Status != models.FollowStatusPending {
		return nil, NotFoundf("no pending follow request %d -> %d", followerID, followingID)
	}

	status := models.FollowStatusAccepted
	if decision == DecisionReject {
		status = models.FollowStatusRejected
	}
	if err := s.follows.UpdateEdgeStatus(ctx, followerID, followingID, status); err != nil {
		return nil, fmt.Errorf("failed to update edge status: %w", err)
	}
	edge.Status = status

	if status == models.FollowStatusAccepted {
		s.notify(ctx, followerID, models.NotifyTypeFollowAccepted, followingID, Ref{})
	}

	s.logger.Debug("Processed follow response",
		zap.Int64("follower", followerID),
		zap.Int64("following", followingID),
		zap.String("decision", string(decision)))

	return edge, nil
}

// Remove deletes a follow edge. Either party may remove an edge they
// participate in: unfollow, cancel a pending request, or clear a rejection.
func (s *FollowService) Remove(ctx context.Context, actorID, followerID, followingID int64) error {
	if actorID != followerID && actorID != followingID {
		return Permissionf("profile %d does not participate in edge %d -> %d", actorID, followerID, followingID)
	}

	deleted, err := s.follows.DeleteEdge(ctx, followerID, followingID)
	if err != nil {
		return fmt.Errorf("failed to delete edge: %w", err)
	}
	if !deleted {
		return NotFoundf("follow edge %d -> %d not found", followerID, followingID)
	}

	s.logger.Debug("Removed follow edge",
		zap.Int64("follower", followerID),
		zap.Int64("following", followingID),
		zap.Int64("actor", actorID))

	return nil
}

// PendingRequests lists the pending follow requests addressed to a profile.
func (s *FollowService) PendingRequests(ctx context.Context, followingID int64) ([]*models.FollowEdge, error) {
	if _, err := s.requireProfile(ctx, followingID); err != nil {
		return nil, err
	}
	return s.follows.ListPending(ctx, followingID)
}

func (s *FollowService) requireProfile(ctx context.Context, id int64) (*models.Profile, error) {
	profile, err := s.profiles.GetProfile(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %d: %w", id, err)
	}
	if profile == nil {
		return nil, NotFoundf("profile %d not found", id)
	}
	return profile, nil
}

// notify dispatches a follow notification. Dispatch failures are logged and
// never fail the state transition that triggered them.
func (s *FollowService) notify(ctx context.Context, recipientID int64, typeID int16, actorID int64, ref Ref) {
	if _, err := s.dispatcher.Dispatch(ctx, recipientID, typeID, actorID, ref); err != nil {
		s.logger.Error("Failed to dispatch follow notification",
			zap.String("type", models.NotifyTypeName(typeID)),
			zap.Int64("recipient", recipientID),
			zap.Int64("actor", actorID),
			zap.Error(err))
	}
}

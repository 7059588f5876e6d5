package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/matchday/socialgraph/internal/social"
)

// FollowAPI provides follow-relationship methods
type FollowAPI struct {
	follows *social.FollowService
}

// NewFollowAPI creates a new follow API
func NewFollowAPI(follows *social.FollowService) *FollowAPI {
	return &FollowAPI{follows: follows}
}

// RequestFollow handles social.request_follow
func (a *FollowAPI) RequestFollow(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Actor     int64 `json:"actor" validate:"required"`
		Following int64 `json:"following" validate:"required"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	edge, err := a.follows.Request(ctx.Request.Context(), p.Actor, p.Following)
	if err != nil {
		return nil, err
	}
	return renderEdge(edge), nil
}

// RespondFollow handles social.respond_follow
func (a *FollowAPI) RespondFollow(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Actor     int64  `json:"actor" validate:"required"`
		Follower  int64  `json:"follower" validate:"required"`
		Following int64  `json:"following" validate:"required"`
		Decision  string `json:"decision" validate:"required,oneof=accept reject"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	edge, err := a.follows.Respond(ctx.Request.Context(), p.Actor, p.Follower, p.Following, social.Decision(p.Decision))
	if err != nil {
		return nil, err
	}
	return renderEdge(edge), nil
}

// RemoveFollow handles social.remove_follow
func (a *FollowAPI) RemoveFollow(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Actor     int64 `json:"actor" validate:"required"`
		Follower  int64 `json:"follower" validate:"required"`
		Following int64 `json:"following" validate:"required"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	if err := a.follows.Remove(ctx.Request.Context(), p.Actor, p.Follower, p.Following); err != nil {
		return nil, err
	}
	return gin.H{"removed": true}, nil
}

// PendingFollowRequests handles social.pending_follow_requests
func (a *FollowAPI) PendingFollowRequests(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Actor int64 `json:"actor" validate:"required"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	edges, err := a.follows.PendingRequests(ctx.Request.Context(), p.Actor)
	if err != nil {
		return nil, err
	}

	result := make([]interface{}, 0, len(edges))
	for _, edge := range edges {
		result = append(result, renderEdge(edge))
	}
	return result, nil
}

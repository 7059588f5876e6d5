package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/matchday/socialgraph/internal/cache"
	"github.com/matchday/socialgraph/internal/social"
)

// EngagementAPI provides like/comment/save methods and the counters query
type EngagementAPI struct {
	engagement *social.EngagementService
	counters   *social.CounterMaintainer
	cache      *cache.Cache
}

// NewEngagementAPI creates a new engagement API
func NewEngagementAPI(engagement *social.EngagementService, counters *social.CounterMaintainer, redisCache *cache.Cache) *EngagementAPI {
	return &EngagementAPI{
		engagement: engagement,
		counters:   counters,
		cache:      redisCache,
	}
}

type factParams struct {
	Actor   int64 `json:"actor" validate:"required"`
	Content int64 `json:"content" validate:"required"`
}

// RecordLike handles social.record_like
func (a *EngagementAPI) RecordLike(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p factParams
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}
	if err := a.engagement.RecordLike(ctx.Request.Context(), p.Content, p.Actor); err != nil {
		return nil, err
	}
	a.cache.InvalidateCounters(p.Content)
	return gin.H{"recorded": true}, nil
}

// RemoveLike handles social.remove_like
func (a *EngagementAPI) RemoveLike(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p factParams
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}
	if err := a.engagement.RemoveLike(ctx.Request.Context(), p.Content, p.Actor); err != nil {
		return nil, err
	}
	a.cache.InvalidateCounters(p.Content)
	return gin.H{"removed": true}, nil
}

// RecordSave handles social.record_save
func (a *EngagementAPI) RecordSave(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p factParams
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}
	if err := a.engagement.RecordSave(ctx.Request.Context(), p.Content, p.Actor); err != nil {
		return nil, err
	}
	a.cache.InvalidateCounters(p.Content)
	return gin.H{"recorded": true}, nil
}

// RemoveSave handles social.remove_save
func (a *EngagementAPI) RemoveSave(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p factParams
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}
	if err := a.engagement.RemoveSave(ctx.Request.Context(), p.Content, p.Actor); err != nil {
		return nil, err
	}
	a.cache.InvalidateCounters(p.Content)
	return gin.H{"removed": true}, nil
}

// RecordComment handles social.record_comment
func (a *EngagementAPI) RecordComment(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Actor   int64  `json:"actor" validate:"required"`
		Content int64  `json:"content" validate:"required"`
		Body    string `json:"body" validate:"required"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}
	comment, err := a.engagement.RecordComment(ctx.Request.Context(), p.Content, p.Actor, p.Body)
	if err != nil {
		return nil, err
	}
	a.cache.InvalidateCounters(p.Content)
	return gin.H{"id": comment.ID, "content": comment.ContentID, "actor": comment.ActorID}, nil
}

// RemoveComment handles social.remove_comment
func (a *EngagementAPI) RemoveComment(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Actor   int64 `json:"actor" validate:"required"`
		Comment int64 `json:"comment" validate:"required"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}
	if err := a.engagement.RemoveComment(ctx.Request.Context(), p.Comment, p.Actor); err != nil {
		return nil, err
	}
	return gin.H{"removed": true}, nil
}

// Counters handles social.counters. The read is relaxed: a short-TTL cache
// entry may trail very recent writes.
func (a *EngagementAPI) Counters(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Content int64 `json:"content" validate:"required"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	if likes, comments, saves, ok := a.cache.GetCounters(p.Content); ok {
		return gin.H{"likes": likes, "comments": comments, "saves": saves}, nil
	}

	likes, comments, saves, err := a.counters.Counters(ctx.Request.Context(), p.Content)
	if err != nil {
		return nil, err
	}
	a.cache.SetCounters(p.Content, likes, comments, saves)
	return gin.H{"likes": likes, "comments": comments, "saves": saves}, nil
}

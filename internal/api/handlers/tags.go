package handlers

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matchday/socialgraph/internal/social"
)

// TagAPI provides tag methods
type TagAPI struct {
	tags *social.TagService
}

// NewTagAPI creates a new tag API
func NewTagAPI(tags *social.TagService) *TagAPI {
	return &TagAPI{tags: tags}
}

// TagProfile handles social.tag_profile
func (a *TagAPI) TagProfile(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Actor   int64 `json:"actor" validate:"required"`
		Content int64 `json:"content" validate:"required"`
		Profile int64 `json:"profile" validate:"required"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	tag, err := a.tags.TagProfile(ctx.Request.Context(), p.Content, p.Profile, p.Actor)
	if err != nil {
		return nil, err
	}
	return gin.H{
		"id":         tag.ID,
		"content":    tag.ContentID,
		"profile":    tag.TaggedProfileID,
		"created_by": tag.CreatedByID,
		"status":     string(tag.Status),
		"date":       tag.CreatedAt.Format(time.RFC3339),
	}, nil
}

// UntagProfile handles social.untag_profile
func (a *TagAPI) UntagProfile(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Actor   int64 `json:"actor" validate:"required"`
		Content int64 `json:"content" validate:"required"`
		Profile int64 `json:"profile" validate:"required"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	if err := a.tags.UntagProfile(ctx.Request.Context(), p.Content, p.Profile, p.Actor); err != nil {
		return nil, err
	}
	return gin.H{"removed": true}, nil
}

// TaggedContent handles social.tagged_content
func (a *TagAPI) TaggedContent(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Profile int64 `json:"profile" validate:"required"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	contents, err := a.tags.TaggedContent(ctx.Request.Context(), p.Profile)
	if err != nil {
		return nil, err
	}

	result := make([]interface{}, 0, len(contents))
	for _, content := range contents {
		result = append(result, renderContent(content))
	}
	return result, nil
}

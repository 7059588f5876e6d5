package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/matchday/socialgraph/internal/social"
)

// VisibilityAPI provides the visibility query
type VisibilityAPI struct {
	resolver *social.Resolver
}

// NewVisibilityAPI creates a new visibility API
func NewVisibilityAPI(resolver *social.Resolver) *VisibilityAPI {
	return &VisibilityAPI{resolver: resolver}
}

// CanView handles social.can_view. Viewer is optional: absent means an
// anonymous caller.
func (a *VisibilityAPI) CanView(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Viewer  *int64 `json:"viewer"`
		Content int64  `json:"content" validate:"required"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	visible, err := a.resolver.CanViewContent(ctx.Request.Context(), p.Viewer, p.Content)
	if err != nil {
		return nil, err
	}
	return gin.H{"visible": visible}, nil
}

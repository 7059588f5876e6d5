package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/matchday/socialgraph/internal/social"
)

// PrefsAPI provides notification preference methods
type PrefsAPI struct {
	prefs *social.PreferenceService
}

// NewPrefsAPI creates a new preference API
func NewPrefsAPI(prefs *social.PreferenceService) *PrefsAPI {
	return &PrefsAPI{prefs: prefs}
}

// GetPreferences handles social.get_preferences
func (a *PrefsAPI) GetPreferences(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Profile int64 `json:"profile" validate:"required"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	prefs, err := a.prefs.Get(ctx.Request.Context(), p.Profile)
	if err != nil {
		return nil, err
	}
	return renderPreferences(prefs), nil
}

// SetPreference handles social.set_preference
func (a *PrefsAPI) SetPreference(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Actor    int64  `json:"actor" validate:"required"`
		Profile  int64  `json:"profile" validate:"required"`
		Category string `json:"category" validate:"required"`
		Value    *bool  `json:"value" validate:"required"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	prefs, err := a.prefs.Set(ctx.Request.Context(), p.Actor, p.Profile, p.Category, *p.Value)
	if err != nil {
		return nil, err
	}
	return renderPreferences(prefs), nil
}

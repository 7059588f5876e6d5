package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/matchday/socialgraph/internal/cache"
	"github.com/matchday/socialgraph/internal/social"
)

// NotifyAPI provides notification methods
type NotifyAPI struct {
	dispatcher *social.Dispatcher
	cache      *cache.Cache
}

// NewNotifyAPI creates a new notification API
func NewNotifyAPI(dispatcher *social.Dispatcher, redisCache *cache.Cache) *NotifyAPI {
	return &NotifyAPI{dispatcher: dispatcher, cache: redisCache}
}

// UnreadNotifications handles social.unread_notifications
func (a *NotifyAPI) UnreadNotifications(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Profile int64 `json:"profile" validate:"required"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	if count, ok := a.cache.GetUnread(p.Profile); ok {
		return gin.H{"unread": count}, nil
	}

	count, err := a.dispatcher.Unread(ctx.Request.Context(), p.Profile)
	if err != nil {
		return nil, err
	}
	a.cache.SetUnread(p.Profile, count)
	return gin.H{"unread": count}, nil
}

// ListNotifications handles social.list_notifications
func (a *NotifyAPI) ListNotifications(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Profile int64 `json:"profile" validate:"required"`
		LastID  int64 `json:"last_id"`
		Limit   int   `json:"limit"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	notifs, err := a.dispatcher.List(ctx.Request.Context(), p.Profile, p.LastID, p.Limit)
	if err != nil {
		return nil, err
	}

	result := make([]interface{}, 0, len(notifs))
	for _, notif := range notifs {
		result = append(result, renderNotification(notif))
	}
	return result, nil
}

// MarkNotificationRead handles social.mark_notification_read
func (a *NotifyAPI) MarkNotificationRead(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Actor        int64 `json:"actor" validate:"required"`
		Notification int64 `json:"notification" validate:"required"`
	}
	if err := parseParams(params, &p); err != nil {
		return nil, err
	}

	// The dispatcher invalidates the recipient's cached unread count
	if err := a.dispatcher.MarkRead(ctx.Request.Context(), p.Actor, p.Notification); err != nil {
		return nil, err
	}
	return gin.H{"read": true}, nil
}

package handlers

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/matchday/socialgraph/internal/models"
	"github.com/matchday/socialgraph/internal/social"
)

var validate = validator.New()

// parseParams unmarshals and validates method params. Malformed params are a
// validation error so they surface as -32602.
func parseParams(raw json.RawMessage, out interface{}) error {
	if len(raw) == 0 {
		return social.Validationf("missing params")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return social.Validationf("invalid params: %v", err)
	}
	if err := validate.Struct(out); err != nil {
		return social.Validationf("invalid params: %v", err)
	}
	return nil
}

func renderEdge(edge *models.FollowEdge) map[string]interface{} {
	return map[string]interface{}{
		"follower":  edge.FollowerID,
		"following": edge.FollowingID,
		"status":    string(edge.Status),
		"date":      edge.CreatedAt.Format(time.RFC3339),
	}
}

func renderContent(content *models.Content) map[string]interface{} {
	return map[string]interface{}{
		"id":             content.ID,
		"owner":          content.OwnerID,
		"kind":           content.Kind,
		"visibility":     string(content.Visibility),
		"likes_count":    content.LikesCount,
		"comments_count": content.CommentsCount,
		"saves_count":    content.SavesCount,
		"date":           content.CreatedAt.Format(time.RFC3339),
	}
}

func renderNotification(notif *models.Notification) map[string]interface{} {
	obj := map[string]interface{}{
		"id":        notif.ID,
		"type":      models.NotifyTypeName(notif.Type),
		"recipient": notif.RecipientID,
		"actor":     notif.ActorID,
		"read":      notif.Read,
		"date":      notif.CreatedAt.Format(time.RFC3339),
	}
	if notif.ContentID.Valid {
		obj["content_id"] = notif.ContentID.Int64
	}
	if notif.TagID.Valid {
		obj["tag_id"] = notif.TagID.Int64
	}
	return obj
}

func renderPreferences(prefs *models.NotificationPreference) map[string]interface{} {
	return map[string]interface{}{
		"profile_id":          prefs.ProfileID,
		"follow_request":      prefs.FollowRequest,
		"follow_accepted":     prefs.FollowAccepted,
		"new_follower":        prefs.NewFollower,
		"like":                prefs.Like,
		"comment":             prefs.Comment,
		"tag":                 prefs.Tag,
		"mention":             prefs.Mention,
		"achievement":         prefs.Achievement,
		"system_announcement": prefs.SystemAnnouncement,
		"club_update":         prefs.ClubUpdate,
		"push_enabled":        prefs.PushEnabled,
		"email_enabled":       prefs.EmailEnabled,
	}
}

package models

import (
	"time"
)

// NotificationPreference holds the per-profile opt-in flags, one column per
// notification category plus the delivery-channel flags. Rows are created
// lazily on first access with these defaults.
type NotificationPreference struct {
	ProfileID int64 `gorm:"primaryKey;column:profile_id"`

	FollowRequest      bool `gorm:"not null;default:true;column:follow_request"`
	FollowAccepted     bool `gorm:"not null;default:true;column:follow_accepted"`
	NewFollower        bool `gorm:"not null;default:true;column:new_follower"`
	Like               bool `gorm:"not null;default:true;column:like"`
	Comment            bool `gorm:"not null;default:true;column:comment"`
	Tag                bool `gorm:"not null;default:true;column:tag"`
	Mention            bool `gorm:"not null;default:true;column:mention"`
	Achievement        bool `gorm:"not null;default:true;column:achievement"`
	SystemAnnouncement bool `gorm:"not null;default:true;column:system_announcement"`
	ClubUpdate         bool `gorm:"not null;default:true;column:club_update"`

	// Delivery channels
	PushEnabled  bool `gorm:"not null;default:true;column:push_enabled"`
	EmailEnabled bool `gorm:"not null;default:false;column:email_enabled"`

	UpdatedAt time.Time `gorm:"not null;column:updated_at"`
}

// TableName specifies the table name for NotificationPreference
func (NotificationPreference) TableName() string {
	return "social_prefs"
}

// DefaultPreferences returns a preference row with the documented defaults:
// every category enabled, push on, email off.
func DefaultPreferences(profileID int64) *NotificationPreference {
	return &NotificationPreference{
		ProfileID:          profileID,
		FollowRequest:      true,
		FollowAccepted:     true,
		NewFollower:        true,
		Like:               true,
		Comment:            true,
		Tag:                true,
		Mention:            true,
		Achievement:        true,
		SystemAnnouncement: true,
		ClubUpdate:         true,
		PushEnabled:        true,
		EmailEnabled:       false,
	}
}

// Enabled reports whether the category for a notification type is enabled.
// Unknown types are treated as enabled so new categories fail open.
func (p *NotificationPreference) Enabled(typeID int16) bool {
	switch typeID {
	case NotifyTypeFollowRequest:
		return p.FollowRequest
	case NotifyTypeFollowAccepted:
		return p.FollowAccepted
	case NotifyTypeNewFollower:
		return p.NewFollower
	case NotifyTypeLike:
		return p.Like
	case NotifyTypeComment:
		return p.Comment
	case NotifyTypeTag:
		return p.Tag
	case NotifyTypeMention:
		return p.Mention
	case NotifyTypeAchievement:
		return p.Achievement
	case NotifyTypeSystemAnnouncement:
		return p.SystemAnnouncement
	case NotifyTypeClubUpdate:
		return p.ClubUpdate
	default:
		return true
	}
}

// Preference categories addressable through SetCategory. The channel flags
// share the flat key space with the notification categories.
const (
	PrefCategoryPush  = "push"
	PrefCategoryEmail = "email"
)

// SetCategory sets a category flag by its wire name. It returns false if the
// name is not a known category.
func (p *NotificationPreference) SetCategory(category string, value bool) bool {
	switch category {
	case "follow_request":
		p.FollowRequest = value
	case "follow_accepted":
		p.FollowAccepted = value
	case "new_follower":
		p.NewFollower = value
	case "like":
		p.Like = value
	case "comment":
		p.Comment = value
	case "tag":
		p.Tag = value
	case "mention":
		p.Mention = value
	case "achievement":
		p.Achievement = value
	case "system_announcement":
		p.SystemAnnouncement = value
	case "club_update":
		p.ClubUpdate = value
	case PrefCategoryPush:
		p.PushEnabled = value
	case PrefCategoryEmail:
		p.EmailEnabled = value
	default:
		return false
	}
	return true
}

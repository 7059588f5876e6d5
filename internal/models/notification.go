package models

import (
	"database/sql"
	"time"
)

// Notification represents a delivered notification. Rows are immutable once
// created except for the read flag, and actor_id never equals recipient_id.
type Notification struct {
	ID          int64         `gorm:"primaryKey;autoIncrement;column:id"`
	Type        int16         `gorm:"type:smallint;not null;column:type_id"`
	RecipientID int64         `gorm:"not null;index;column:recipient_id"`
	ActorID     int64         `gorm:"not null;column:actor_id"`
	ContentID   sql.NullInt64 `gorm:"column:content_id"`
	TagID       sql.NullInt64 `gorm:"column:tag_id"`
	Read        bool          `gorm:"not null;default:false;column:read"`
	CreatedAt   time.Time     `gorm:"not null;column:created_at"`

	// Relationships
	Recipient *Profile `gorm:"foreignKey:RecipientID;references:ID"`
	Actor     *Profile `gorm:"foreignKey:ActorID;references:ID"`
	Content   *Content `gorm:"foreignKey:ContentID;references:ID"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "social_notifs"
}

// Notification type constants
const (
	NotifyTypeFollowRequest      int16 = 1
	NotifyTypeFollowAccepted     int16 = 2
	NotifyTypeNewFollower        int16 = 3
	NotifyTypeLike               int16 = 4
	NotifyTypeComment            int16 = 5
	NotifyTypeTag                int16 = 6
	NotifyTypeMention            int16 = 7
	NotifyTypeAchievement        int16 = 8
	NotifyTypeSystemAnnouncement int16 = 9
	NotifyTypeClubUpdate         int16 = 10
)

var notifyTypeNames = map[int16]string{
	NotifyTypeFollowRequest:      "follow_request",
	NotifyTypeFollowAccepted:     "follow_accepted",
	NotifyTypeNewFollower:        "new_follower",
	NotifyTypeLike:               "like",
	NotifyTypeComment:            "comment",
	NotifyTypeTag:                "tag",
	NotifyTypeMention:            "mention",
	NotifyTypeAchievement:        "achievement",
	NotifyTypeSystemAnnouncement: "system_announcement",
	NotifyTypeClubUpdate:         "club_update",
}

// NotifyTypeName returns the wire name for a notification type id.
func NotifyTypeName(typeID int16) string {
	if name, ok := notifyTypeNames[typeID]; ok {
		return name
	}
	return "unknown"
}

// NotifyTypeID returns the type id for a wire name, or 0 if unknown.
func NotifyTypeID(name string) int16 {
	for id, n := range notifyTypeNames {
		if n == name {
			return id
		}
	}
	return 0
}

package models

import (
	"time"
)

// TagStatus is the lifecycle state of a tag.
type TagStatus string

const (
	TagStatusActive  TagStatus = "active"
	TagStatusRemoved TagStatus = "removed"
)

// Tag records that a profile was tagged in a content item. Removal flips the
// status rather than deleting the row, keeping an audit trail. At most one
// active tag exists per (content, profile) pair; the unique index is partial
// so any number of removed rows may accumulate for the same pair.
type Tag struct {
	ID              int64     `gorm:"primaryKey;autoIncrement;column:id"`
	ContentID       int64     `gorm:"not null;index;uniqueIndex:social_tags_ux1,where:status = 'active';column:content_id"`
	TaggedProfileID int64     `gorm:"not null;index;uniqueIndex:social_tags_ux1;column:tagged_profile_id"`
	CreatedByID     int64     `gorm:"not null;column:created_by_id"`
	Status          TagStatus `gorm:"type:varchar(10);not null;default:'active';column:status"`
	CreatedAt       time.Time `gorm:"not null;column:created_at"`
	UpdatedAt       time.Time `gorm:"not null;column:updated_at"`
}

// TableName specifies the table name for Tag
func (Tag) TableName() string {
	return "social_tags"
}

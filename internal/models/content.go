package models

import (
	"time"
)

// Content represents a post or comment owned by the external content store.
// The engine reads owner_id and visibility and writes nothing here except the
// three derived counters, which are mutated only through atomic deltas and
// the reconcile path.
type Content struct {
	ID         int64      `gorm:"primaryKey;autoIncrement;column:id"`
	OwnerID    int64      `gorm:"not null;index;column:owner_id"`
	Kind       string     `gorm:"type:varchar(10);not null;default:'post';column:kind"`
	Visibility Visibility `gorm:"type:varchar(10);not null;default:'public';column:visibility"`
	CreatedAt  time.Time  `gorm:"not null;column:created_at"`

	// Derived counters, never hand-edited
	LikesCount    int64 `gorm:"not null;default:0;column:likes_count"`
	CommentsCount int64 `gorm:"not null;default:0;column:comments_count"`
	SavesCount    int64 `gorm:"not null;default:0;column:saves_count"`

	Owner *Profile `gorm:"foreignKey:OwnerID;references:ID"`
}

// TableName specifies the table name for Content
func (Content) TableName() string {
	return "social_contents"
}

package models

import (
	"time"
)

// FollowStatus is the lifecycle state of a follow edge.
type FollowStatus string

const (
	FollowStatusPending  FollowStatus = "pending"
	FollowStatusAccepted FollowStatus = "accepted"
	FollowStatusRejected FollowStatus = "rejected"
)

// FollowEdge represents a directed follow relationship. At most one edge
// exists per ordered (follower, following) pair and self-edges are never
// created.
type FollowEdge struct {
	FollowerID  int64        `gorm:"primaryKey;column:follower_id"`
	FollowingID int64        `gorm:"primaryKey;column:following_id"`
	Status      FollowStatus `gorm:"type:varchar(10);not null;default:'pending';column:status"`
	CreatedAt   time.Time    `gorm:"not null;column:created_at"`
	UpdatedAt   time.Time    `gorm:"not null;column:updated_at"`

	// Relationships
	Follower  *Profile `gorm:"foreignKey:FollowerID;references:ID"`
	Following *Profile `gorm:"foreignKey:FollowingID;references:ID"`
}

// TableName specifies the table name for FollowEdge
func (FollowEdge) TableName() string {
	return "social_follows"
}

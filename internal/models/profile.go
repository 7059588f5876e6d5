package models

import (
	"time"
)

// Visibility is the default access policy carried by profiles and content.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Profile represents a member profile. Profiles are created by the external
// identity provider at signup; the engine only reads them.
type Profile struct {
	ID         int64      `gorm:"primaryKey;autoIncrement;column:id"`
	Name       string     `gorm:"type:varchar(32);not null;uniqueIndex:social_profiles_ux1;column:name"`
	Visibility Visibility `gorm:"type:varchar(10);not null;default:'public';column:visibility"`
	CreatedAt  time.Time  `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for Profile
func (Profile) TableName() string {
	return "social_profiles"
}

// RequiresApproval reports whether a follow request against this profile
// stays pending until the profile accepts it.
func (p *Profile) RequiresApproval() bool {
	return p.Visibility == VisibilityPrivate
}

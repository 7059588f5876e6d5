package models

import (
	"time"
)

// Like is a fact row recording that an actor liked a content item. The
// composite primary key enforces at most one like per (content, actor).
type Like struct {
	ContentID int64     `gorm:"primaryKey;column:content_id"`
	ActorID   int64     `gorm:"primaryKey;column:actor_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for Like
func (Like) TableName() string {
	return "social_likes"
}

// Save is a fact row recording that an actor saved a content item, with the
// same uniqueness rule as Like.
type Save struct {
	ContentID int64     `gorm:"primaryKey;column:content_id"`
	ActorID   int64     `gorm:"primaryKey;column:actor_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for Save
func (Save) TableName() string {
	return "social_saves"
}

// Comment is a fact row for a comment. Unlike likes and saves an actor may
// comment on the same content any number of times, so comments carry their
// own id.
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	ContentID int64     `gorm:"not null;index;column:content_id"`
	ActorID   int64     `gorm:"not null;index;column:actor_id"`
	Body      string    `gorm:"type:text;not null;column:body"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "social_comments"
}

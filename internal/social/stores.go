package social

import (
	"context"

	"github.com/matchday/socialgraph/internal/models"
)

// FactKind identifies a countable fact type.
type FactKind string

// Fact kinds
const (
	FactLike    FactKind = "like"
	FactComment FactKind = "comment"
	FactSave    FactKind = "save"
)

// ProfileStore reads profiles owned by the external identity provider.
// Lookups return (nil, nil) when the profile does not exist.
type ProfileStore interface {
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
}

// FollowStore persists follow edges. CreateEdge returns a Conflict error when
// an edge already exists for the ordered pair.
type FollowStore interface {
	GetEdge(ctx context.Context, followerID, followingID int64) (*models.FollowEdge, error)
	CreateEdge(ctx context.Context, edge *models.FollowEdge) error
	UpdateEdgeStatus(ctx context.Context, followerID, followingID int64, status models.FollowStatus) error
	DeleteEdge(ctx context.Context, followerID, followingID int64) (bool, error)
	HasAcceptedEdge(ctx context.Context, followerID, followingID int64) (bool, error)
	ListPending(ctx context.Context, followingID int64) ([]*models.FollowEdge, error)
}

// ContentStore reads content rows owned by the external content store and
// writes only the derived counters. ApplyCounterDelta must be atomic at the
// row level and never computed via read-then-write; decrements floor at zero.
type ContentStore interface {
	GetContent(ctx context.Context, id int64) (*models.Content, error)
	ApplyCounterDelta(ctx context.Context, id int64, kind FactKind, delta int) error
	SetCounters(ctx context.Context, id int64, likes, comments, saves int64) error
	ListContentIDs(ctx context.Context, afterID int64, limit int) ([]int64, error)
}

// FactStore persists like/comment/save fact rows. Insert of a duplicate
// (content, actor) like or save returns a Conflict error; deletes of absent
// rows return a NotFound error.
type FactStore interface {
	InsertLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, contentID, actorID int64) error
	InsertSave(ctx context.Context, save *models.Save) error
	DeleteSave(ctx context.Context, contentID, actorID int64) error
	InsertComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id int64) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
	CountFacts(ctx context.Context, contentID int64, kind FactKind) (int64, error)
}

// TagStore persists tags. Active-tag lookups return (nil, nil) when no active
// tag exists for the pair.
type TagStore interface {
	GetActiveTag(ctx context.Context, contentID, profileID int64) (*models.Tag, error)
	CreateTag(ctx context.Context, tag *models.Tag) error
	MarkTagRemoved(ctx context.Context, tagID int64) error
	ListActiveByProfile(ctx context.Context, profileID int64) ([]*models.Tag, error)
}

// NotificationStore persists notifications.
type NotificationStore interface {
	CreateNotification(ctx context.Context, notif *models.Notification) error
	GetNotification(ctx context.Context, id int64) (*models.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64) error
	CountUnread(ctx context.Context, recipientID int64) (int64, error)
	ListByRecipient(ctx context.Context, recipientID, lastID int64, limit int) ([]*models.Notification, error)
}

// PreferenceStore persists notification preference rows. CreatePreferences
// returns a Conflict error when the row already exists, which callers treat
// as a lost upsert race and re-read.
type PreferenceStore interface {
	GetPreferences(ctx context.Context, profileID int64) (*models.NotificationPreference, error)
	CreatePreferences(ctx context.Context, prefs *models.NotificationPreference) error
	SavePreferences(ctx context.Context, prefs *models.NotificationPreference) error
}

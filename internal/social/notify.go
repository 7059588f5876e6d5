package social

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/matchday/socialgraph/internal/models"
)

// Ref carries the optional reference ids attached to a notification.
type Ref struct {
	ContentID *int64
	TagID     *int64
}

// UnreadCache drops a cached unread count. Implemented by the Redis cache;
// nil when caching is disabled.
type UnreadCache interface {
	InvalidateUnread(profileID int64)
}

// Dispatcher turns qualifying social events into notification rows. It holds
// no event-specific knowledge: callers supply the (recipient, type, actor)
// triple. Self-actions and preference-disabled categories are silent no-ops.
// Every write that changes a recipient's unread count invalidates their
// cached entry.
type Dispatcher struct {
	notifs NotificationStore
	prefs  *PreferenceService
	unread UnreadCache
	logger *zap.Logger
}

// NewDispatcher creates a new notification dispatcher
func NewDispatcher(notifs NotificationStore, prefs *PreferenceService, unread UnreadCache, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		notifs: notifs,
		prefs:  prefs,
		unread: unread,
		logger: logger.With(zap.String("component", "notify")),
	}
}

// Dispatch creates a notification for recipient unless the action is the
// recipient's own or the recipient has the category disabled, in which case
// it returns (nil, nil). Errors here are the caller's to isolate: dispatch
// failure never rolls back the triggering social action.
func (d *Dispatcher) Dispatch(ctx context.Context, recipientID int64, typeID int16, actorID int64, ref Ref) (*models.Notification, error) {
	if actorID == recipientID {
		return nil, nil
	}

	prefs, err := d.prefs.Get(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences for %d: %w", recipientID, err)
	}
	if !prefs.Enabled(typeID) {
		d.logger.Debug("Notification suppressed by preference",
			zap.String("type", models.NotifyTypeName(typeID)),
			zap.Int64("recipient", recipientID))
		return nil, nil
	}

	notif := &models.Notification{
		Type:        typeID,
		RecipientID: recipientID,
		ActorID:     actorID,
		CreatedAt:   time.Now().UTC(),
	}
	if ref.ContentID != nil {
		notif.ContentID = sql.NullInt64{Int64: *ref.ContentID, Valid: true}
	}
	if ref.TagID != nil {
		notif.TagID = sql.NullInt64{Int64: *ref.TagID, Valid: true}
	}

	if err := d.notifs.CreateNotification(ctx, notif); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	d.invalidateUnread(recipientID)

	d.logger.Info("[NOTIFY]",
		zap.String("type", models.NotifyTypeName(typeID)),
		zap.Int64("recipient", recipientID),
		zap.Int64("actor", actorID),
		zap.Int64("content_id", refInt64(ref.ContentID)))

	return notif, nil
}

// Unread returns the unread notification count for a profile.
func (d *Dispatcher) Unread(ctx context.Context, profileID int64) (int64, error) {
	return d.notifs.CountUnread(ctx, profileID)
}

// List returns notifications for a profile, newest first, starting below
// lastID (0 for the newest page).
func (d *Dispatcher) List(ctx context.Context, profileID, lastID int64, limit int) ([]*models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return d.notifs.ListByRecipient(ctx, profileID, lastID, limit)
}

// MarkRead flips the read flag on a notification. Only the recipient may do
// so.
func (d *Dispatcher) MarkRead(ctx context.Context, actorID, notifID int64) error {
	notif, err := d.notifs.GetNotification(ctx, notifID)
	if err != nil {
		return fmt.Errorf("failed to load notification %d: %w", notifID, err)
	}
	if notif == nil {
		return NotFoundf("notification %d not found", notifID)
	}
	if notif.RecipientID != actorID {
		return Permissionf("profile %d is not the recipient of notification %d", actorID, notifID)
	}
	if notif.Read {
		return nil
	}
	if err := d.notifs.MarkNotificationRead(ctx, notifID); err != nil {
		return err
	}
	d.invalidateUnread(notif.RecipientID)
	return nil
}

func (d *Dispatcher) invalidateUnread(recipientID int64) {
	if d.unread != nil {
		d.unread.InvalidateUnread(recipientID)
	}
}

// NotifyFanout is the bus handler that maps fact-insert events to dispatch
// calls: likes and comments notify the content owner, saves notify nobody.
type NotifyFanout struct {
	dispatcher *Dispatcher
}

// NewNotifyFanout creates the fact-event notification handler
func NewNotifyFanout(dispatcher *Dispatcher) *NotifyFanout {
	return &NotifyFanout{dispatcher: dispatcher}
}

// Name implements Handler
func (n *NotifyFanout) Name() string { return "notify" }

// HandleEvent implements Handler
func (n *NotifyFanout) HandleEvent(ctx context.Context, ev Event) error {
	if ev.Action != ActionInsert {
		return nil
	}
	typeID := notifyTypeForFact(ev.Kind)
	if typeID == 0 {
		return nil
	}
	contentID := ev.ContentID
	_, err := n.dispatcher.Dispatch(ctx, ev.OwnerID, typeID, ev.ActorID, Ref{ContentID: &contentID})
	return err
}

var _ Handler = (*NotifyFanout)(nil)

// notifyTypeForFact maps a fact kind to its notification type, or 0 when the
// kind does not notify.
func notifyTypeForFact(kind FactKind) int16 {
	switch kind {
	case FactLike:
		return models.NotifyTypeLike
	case FactComment:
		return models.NotifyTypeComment
	default:
		return 0
	}
}

func refInt64(ptr *int64) int64 {
	if ptr == nil {
		return 0
	}
	return *ptr
}

package social

import (
	"context"

	"go.uber.org/zap"
)

// Action distinguishes fact insertion from fact deletion.
type Action string

// Event actions
const (
	ActionInsert Action = "insert"
	ActionDelete Action = "delete"
)

// Event is the single domain event emitted for a fact mutation. The counter
// maintainer and the notification fan-out consume it independently; neither
// can fail the command that published it.
type Event struct {
	Action    Action
	Kind      FactKind
	ContentID int64
	OwnerID   int64
	ActorID   int64
}

// Handler consumes fact events. Handlers must tolerate replays: counter
// deltas floor at zero and notification writes are create-once.
type Handler interface {
	Name() string
	HandleEvent(ctx context.Context, ev Event) error
}

// Bus fans a fact event out to its registered handlers in subscription
// order. Handler errors are logged and swallowed so a failing consumer never
// rolls back the triggering social action.
type Bus struct {
	handlers []Handler
	logger   *zap.Logger
}

// NewBus creates a new event bus
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		logger: logger.With(zap.String("component", "event-bus")),
	}
}

// Subscribe registers a handler
func (b *Bus) Subscribe(h Handler) {
	b.handlers = append(b.handlers, h)
}

// Publish delivers an event to every handler.
func (b *Bus) Publish(ctx context.Context, ev Event) {
	for _, h := range b.handlers {
		if err := h.HandleEvent(ctx, ev); err != nil {
			b.logger.Error("Event handler failed",
				zap.String("handler", h.Name()),
				zap.String("action", string(ev.Action)),
				zap.String("kind", string(ev.Kind)),
				zap.Int64("content_id", ev.ContentID),
				zap.Int64("actor_id", ev.ActorID),
				zap.Error(err))
		}
	}
}

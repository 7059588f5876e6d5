package social

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// CounterMaintainer keeps the derived counters on content rows consistent
// with the fact rows. The hot path applies relative deltas through the store
// (never read-then-write in application code); Reconcile recomputes from the
// live fact rows and is the only place a counter is overwritten.
type CounterMaintainer struct {
	contents ContentStore
	facts    FactStore
	logger   *zap.Logger
}

// NewCounterMaintainer creates a new counter maintainer
func NewCounterMaintainer(contents ContentStore, facts FactStore, logger *zap.Logger) *CounterMaintainer {
	return &CounterMaintainer{
		contents: contents,
		facts:    facts,
		logger:   logger.With(zap.String("component", "counters")),
	}
}

// Name implements Handler
func (m *CounterMaintainer) Name() string { return "counters" }

// HandleEvent applies a relative ±1 delta for a fact mutation. A failed
// delta is drift, not a user-visible error; the reconcile path repairs it.
func (m *CounterMaintainer) HandleEvent(ctx context.Context, ev Event) error {
	delta := 1
	if ev.Action == ActionDelete {
		delta = -1
	}
	if err := m.contents.ApplyCounterDelta(ctx, ev.ContentID, ev.Kind, delta); err != nil {
		return fmt.Errorf("failed to apply %s delta %+d on content %d: %w", ev.Kind, delta, ev.ContentID, err)
	}
	return nil
}

// Counters returns the stored counters for a content item. The read is
// relaxed: it may trail very recent writes and never blocks a writer.
func (m *CounterMaintainer) Counters(ctx context.Context, contentID int64) (likes, comments, saves int64, err error) {
	content, err := m.contents.GetContent(ctx, contentID)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to load content %d: %w", contentID, err)
	}
	if content == nil {
		return 0, 0, 0, NotFoundf("content %d not found", contentID)
	}
	return content.LikesCount, content.CommentsCount, content.SavesCount, nil
}

// Reconcile recomputes each counter as the literal count of live fact rows
// and overwrites the stored values. Idempotent, safe to run concurrently with
// live traffic, and the only repair path for drift.
func (m *CounterMaintainer) Reconcile(ctx context.Context, contentID int64) error {
	content, err := m.contents.GetContent(ctx, contentID)
	if err != nil {
		return fmt.Errorf("failed to load content %d: %w", contentID, err)
	}
	if content == nil {
		return NotFoundf("content %d not found", contentID)
	}

	counts := make(map[FactKind]int64, 3)
	for _, kind := range []FactKind{FactLike, FactComment, FactSave} {
		n, err := m.facts.CountFacts(ctx, contentID, kind)
		if err != nil {
			return fmt.Errorf("failed to count %s facts for content %d: %w", kind, contentID, err)
		}
		counts[kind] = n
	}

	if err := m.contents.SetCounters(ctx, contentID, counts[FactLike], counts[FactComment], counts[FactSave]); err != nil {
		return fmt.Errorf("failed to store counters for content %d: %w", contentID, err)
	}

	if content.LikesCount != counts[FactLike] ||
		content.CommentsCount != counts[FactComment] ||
		content.SavesCount != counts[FactSave] {
		m.logger.Warn("Corrected counter drift",
			zap.Int64("content_id", contentID),
			zap.Int64("likes_stored", content.LikesCount),
			zap.Int64("likes_actual", counts[FactLike]),
			zap.Int64("comments_stored", content.CommentsCount),
			zap.Int64("comments_actual", counts[FactComment]),
			zap.Int64("saves_stored", content.SavesCount),
			zap.Int64("saves_actual", counts[FactSave]))
	}

	return nil
}

// ReconcileAll sweeps every content row in id batches. Used by the
// reconciler binary, never by the hot path.
func (m *CounterMaintainer) ReconcileAll(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	afterID := int64(0)
	for {
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		default:
		}

		ids, err := m.contents.ListContentIDs(ctx, afterID, batchSize)
		if err != nil {
			return total, fmt.Errorf("failed to list content ids after %d: %w", afterID, err)
		}
		if len(ids) == 0 {
			return total, nil
		}

		for _, id := range ids {
			if err := m.Reconcile(ctx, id); err != nil {
				// Content deleted between listing and reconcile is not drift
				if IsNotFound(err) {
					continue
				}
				m.logger.Error("Failed to reconcile content", zap.Int64("content_id", id), zap.Error(err))
				continue
			}
			total++
		}
		afterID = ids[len(ids)-1]
	}
}

var _ Handler = (*CounterMaintainer)(nil)

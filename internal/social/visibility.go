package social

import (
	"context"
	"fmt"

	"github.com/matchday/socialgraph/internal/models"
)

// Resolver is the single visibility predicate. Every read path (feed,
// profile, single content fetch, tagged listings) must route through it; the
// rules are evaluated in fixed order and the resolver has no side effects.
type Resolver struct {
	contents ContentStore
	follows  FollowStore
	tags     TagStore
}

// NewResolver creates a new visibility resolver
func NewResolver(contents ContentStore, follows FollowStore, tags TagStore) *Resolver {
	return &Resolver{contents: contents, follows: follows, tags: tags}
}

// CanView reports whether viewer may see content. A nil viewer is an
// anonymous caller and can only be admitted by the content being public.
//
// Order: owner, public, accepted follower, active tag, deny. The active-tag
// clause is the resolution of the tagged-content question: an active tag
// grants access independent of follow status, and removing the tag revokes
// it.
func (r *Resolver) CanView(ctx context.Context, viewer *int64, content *models.Content) (bool, error) {
	if viewer != nil && *viewer == content.OwnerID {
		return true, nil
	}
	if content.Visibility == models.VisibilityPublic {
		return true, nil
	}
	if viewer == nil {
		return false, nil
	}

	accepted, err := r.follows.HasAcceptedEdge(ctx, *viewer, content.OwnerID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow edge: %w", err)
	}
	if accepted {
		return true, nil
	}

	tag, err := r.tags.GetActiveTag(ctx, content.ID, *viewer)
	if err != nil {
		return false, fmt.Errorf("failed to check tag: %w", err)
	}
	return tag != nil, nil
}

// CanViewContent loads a content row and applies the predicate. Missing
// content is a NotFound error, not a deny.
func (r *Resolver) CanViewContent(ctx context.Context, viewer *int64, contentID int64) (bool, error) {
	content, err := r.contents.GetContent(ctx, contentID)
	if err != nil {
		return false, fmt.Errorf("failed to load content %d: %w", contentID, err)
	}
	if content == nil {
		return false, NotFoundf("content %d not found", contentID)
	}
	return r.CanView(ctx, viewer, content)
}

package social

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchday/socialgraph/internal/models"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestCanView_PublicContent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.profiles.add(1, "alice", models.VisibilityPublic)
	env.contents.add(10, 1, models.VisibilityPublic)

	// Anyone, including anonymous callers
	visible, err := env.resolver.CanViewContent(ctx, nil, 10)
	require.NoError(t, err)
	assert.True(t, visible)

	visible, err = env.resolver.CanViewContent(ctx, int64Ptr(999), 10)
	require.NoError(t, err)
	assert.True(t, visible)
}

func TestCanView_PrivateContent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.profiles.add(1, "alice", models.VisibilityPrivate)
	env.profiles.add(2, "bob", models.VisibilityPublic)
	env.contents.add(10, 1, models.VisibilityPrivate)

	// Owner always sees their own content
	visible, err := env.resolver.CanViewContent(ctx, int64Ptr(1), 10)
	require.NoError(t, err)
	assert.True(t, visible)

	// Anonymous and unrelated viewers are denied
	visible, err = env.resolver.CanViewContent(ctx, nil, 10)
	require.NoError(t, err)
	assert.False(t, visible)

	visible, err = env.resolver.CanViewContent(ctx, int64Ptr(2), 10)
	require.NoError(t, err)
	assert.False(t, visible)
}

func TestCanView_FollowerAccessTracksEdgeState(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.profiles.add(1, "alice", models.VisibilityPrivate)
	env.profiles.add(2, "bob", models.VisibilityPublic)
	env.contents.add(10, 1, models.VisibilityPrivate)

	// Pending request grants nothing
	_, err := env.follow.Request(ctx, 2, 1)
	require.NoError(t, err)
	visible, err := env.resolver.CanViewContent(ctx, int64Ptr(2), 10)
	require.NoError(t, err)
	assert.False(t, visible)

	// Accepted grants access
	_, err = env.follow.Respond(ctx, 1, 2, 1, DecisionAccept)
	require.NoError(t, err)
	visible, err = env.resolver.CanViewContent(ctx, int64Ptr(2), 10)
	require.NoError(t, err)
	assert.True(t, visible)

	// Removing the edge revokes it immediately
	require.NoError(t, env.follow.Remove(ctx, 1, 2, 1))
	visible, err = env.resolver.CanViewContent(ctx, int64Ptr(2), 10)
	require.NoError(t, err)
	assert.False(t, visible)
}

func TestCanView_ActiveTagGrantsAccess(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.profiles.add(1, "alice", models.VisibilityPrivate)
	env.profiles.add(2, "bob", models.VisibilityPublic)
	env.contents.add(10, 1, models.VisibilityPrivate)

	visible, err := env.resolver.CanViewContent(ctx, int64Ptr(2), 10)
	require.NoError(t, err)
	assert.False(t, visible)

	_, err = env.tagSvc.TagProfile(ctx, 10, 2, 1)
	require.NoError(t, err)

	visible, err = env.resolver.CanViewContent(ctx, int64Ptr(2), 10)
	require.NoError(t, err)
	assert.True(t, visible)

	// Untagging revokes the grant
	require.NoError(t, env.tagSvc.UntagProfile(ctx, 10, 2, 1))
	visible, err = env.resolver.CanViewContent(ctx, int64Ptr(2), 10)
	require.NoError(t, err)
	assert.False(t, visible)
}

func TestCanView_MissingContent(t *testing.T) {
	env := newTestEnv()
	_, err := env.resolver.CanViewContent(context.Background(), nil, 404)
	assert.True(t, IsNotFound(err))
}

package social

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchday/socialgraph/internal/models"
)

func tagFixture(env *testEnv) {
	env.profiles.add(1, "alice", models.VisibilityPublic)
	env.profiles.add(2, "bob", models.VisibilityPublic)
	env.profiles.add(3, "carol", models.VisibilityPublic)
	env.contents.add(10, 1, models.VisibilityPublic)
}

func TestTagProfile_CreatesAndNotifies(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	tagFixture(env)

	tag, err := env.tagSvc.TagProfile(ctx, 10, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, models.TagStatusActive, tag.Status)
	assert.NotZero(t, tag.ID)

	notifs := env.notifs.byRecipient(2)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotifyTypeTag, notifs[0].Type)
	require.True(t, notifs[0].TagID.Valid)
	assert.Equal(t, tag.ID, notifs[0].TagID.Int64)
	require.True(t, notifs[0].ContentID.Valid)
	assert.Equal(t, int64(10), notifs[0].ContentID.Int64)
}

func TestTagProfile_DuplicateActiveTag(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	tagFixture(env)

	_, err := env.tagSvc.TagProfile(ctx, 10, 2, 1)
	require.NoError(t, err)

	_, err = env.tagSvc.TagProfile(ctx, 10, 2, 3)
	assert.True(t, IsConflict(err))
}

func TestTagProfile_SelfTagIsSilent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	tagFixture(env)

	tag, err := env.tagSvc.TagProfile(ctx, 10, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, models.TagStatusActive, tag.Status)
	assert.Empty(t, env.notifs.byRecipient(1))
}

func TestTagProfile_MissingContentOrProfile(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	tagFixture(env)

	_, err := env.tagSvc.TagProfile(ctx, 99, 2, 1)
	assert.True(t, IsNotFound(err))

	_, err = env.tagSvc.TagProfile(ctx, 10, 99, 1)
	assert.True(t, IsNotFound(err))
}

func TestUntagProfile_Permissions(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	tagFixture(env)

	_, err := env.tagSvc.TagProfile(ctx, 10, 2, 1)
	require.NoError(t, err)

	// An unrelated profile may not untag
	err = env.tagSvc.UntagProfile(ctx, 10, 2, 3)
	assert.True(t, IsPermission(err))

	// The tagged profile may remove their own tag
	require.NoError(t, env.tagSvc.UntagProfile(ctx, 10, 2, 2))

	err = env.tagSvc.UntagProfile(ctx, 10, 2, 2)
	assert.True(t, IsNotFound(err))
}

func TestUntagProfile_OwnerMayRemove(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	tagFixture(env)

	_, err := env.tagSvc.TagProfile(ctx, 10, 2, 3)
	require.NoError(t, err)
	require.NoError(t, env.tagSvc.UntagProfile(ctx, 10, 2, 1))
}

func TestTagProfile_RetagAfterRemoval(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	tagFixture(env)

	first, err := env.tagSvc.TagProfile(ctx, 10, 2, 1)
	require.NoError(t, err)
	require.NoError(t, env.tagSvc.UntagProfile(ctx, 10, 2, 1))

	// Removal is a status flip, so a fresh tag may be created
	second, err := env.tagSvc.TagProfile(ctx, 10, 2, 1)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestTagProfile_RepeatedCyclesAccumulateRemovedRows(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	tagFixture(env)

	// Each cycle leaves another removed row behind for the same
	// (content, profile) pair; only the single active row is constrained.
	var lastID int64
	for i := 0; i < 3; i++ {
		tag, err := env.tagSvc.TagProfile(ctx, 10, 2, 1)
		require.NoError(t, err)
		assert.Greater(t, tag.ID, lastID)
		lastID = tag.ID

		require.NoError(t, env.tagSvc.UntagProfile(ctx, 10, 2, 2))
	}

	// A fourth tag still succeeds against the removed rows, and untagging
	// it flips only the active row
	_, err := env.tagSvc.TagProfile(ctx, 10, 2, 1)
	require.NoError(t, err)
	require.NoError(t, env.tagSvc.UntagProfile(ctx, 10, 2, 1))
}

func TestTaggedContent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	tagFixture(env)
	env.contents.add(11, 3, models.VisibilityPrivate)

	_, err := env.tagSvc.TagProfile(ctx, 10, 2, 1)
	require.NoError(t, err)
	_, err = env.tagSvc.TagProfile(ctx, 11, 2, 3)
	require.NoError(t, err)

	contents, err := env.tagSvc.TaggedContent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, contents, 2)

	// Removed tags drop out of the listing
	require.NoError(t, env.tagSvc.UntagProfile(ctx, 10, 2, 2))
	contents, err = env.tagSvc.TaggedContent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, int64(11), contents[0].ID)
}

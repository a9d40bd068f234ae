package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/yatube/models"
)

func edges(t *testing.T, svc *FollowService) int64 {
	t.Helper()
	var n int64
	require.NoError(t, svc.db.Model(&models.Follow{}).Count(&n).Error)
	return n
}

func TestFollowThenUnfollowRestoresState(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	follower := mkUser(t, db, "follower")
	mkUser(t, db, "author")
	svc := NewFollowService(db)

	require.Zero(t, edges(t, svc))
	require.NoError(t, svc.Follow(ctx, follower.ID, "author"))
	require.NoError(t, svc.Follow(ctx, follower.ID, "author"))
	assert.EqualValues(t, 1, edges(t, svc), "follow is idempotent")

	require.NoError(t, svc.Unfollow(ctx, follower.ID, "author"))
	assert.Zero(t, edges(t, svc))

	require.NoError(t, svc.Unfollow(ctx, follower.ID, "author"))
	assert.Zero(t, edges(t, svc))
}

func TestFollow_SelfIsNoop(t *testing.T) {
	db := newTestDB(t)
	me := mkUser(t, db, "me")
	svc := NewFollowService(db)

	require.NoError(t, svc.Follow(context.Background(), me.ID, "me"))
	assert.Zero(t, edges(t, svc))
}

func TestFollow_UnknownAuthor(t *testing.T) {
	db := newTestDB(t)
	me := mkUser(t, db, "me")
	svc := NewFollowService(db)

	assert.ErrorIs(t, svc.Follow(context.Background(), me.ID, "nobody"), ErrNotFound)
	assert.ErrorIs(t, svc.Unfollow(context.Background(), me.ID, "nobody"), ErrNotFound)
}

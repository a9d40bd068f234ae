package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/yatube/models"
)

func TestAdmin_CreateGroup(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewAdminService(db)

	g, errs, err := svc.CreateGroup(ctx, GroupForm{Title: "Cats", Slug: "cats", Description: "meow"})
	require.NoError(t, err)
	require.Nil(t, errs)
	assert.Equal(t, "cats", g.Slug)

	_, errs, err = svc.CreateGroup(ctx, GroupForm{Title: "Cats again", Slug: "cats"})
	require.NoError(t, err)
	assert.True(t, errs.Has("slug"))

	_, errs, err = svc.CreateGroup(ctx, GroupForm{Title: "", Slug: "bad slug!"})
	require.NoError(t, err)
	assert.True(t, errs.Has("title"))
	assert.True(t, errs.Has("slug"))
}

func TestAdmin_DeleteGroupKeepsPosts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := mkUser(t, db, "auth")
	group := mkGroup(t, db, "doomed")
	post := mkPost(t, db, author, group, "survivor")

	require.NoError(t, NewAdminService(db).DeleteGroup(ctx, "doomed"))

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Nil(t, stored.GroupID)
	assert.ErrorIs(t, NewAdminService(db).DeleteGroup(ctx, "doomed"), ErrNotFound)
}

func TestAdmin_DeleteUserNullsDependents(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	gone := mkUser(t, db, "gone")
	stays := mkUser(t, db, "stays")
	post := mkPost(t, db, gone, nil, "orphan to be")
	other := mkPost(t, db, stays, nil, "regular")

	posts, _ := newPostService(t, db)
	_, err := posts.AddComment(ctx, gone.ID, other.ID, "by gone")
	require.NoError(t, err)
	follows := NewFollowService(db)
	require.NoError(t, follows.Follow(ctx, gone.ID, "stays"))
	require.NoError(t, follows.Follow(ctx, stays.ID, "gone"))

	require.NoError(t, NewAdminService(db).DeleteUser(ctx, "gone"))

	var p models.Post
	require.NoError(t, db.First(&p, post.ID).Error)
	assert.Nil(t, p.AuthorID)

	var c models.Comment
	require.NoError(t, db.Where("post_id = ?", other.ID).First(&c).Error)
	assert.Nil(t, c.AuthorID)

	var referencing int64
	require.NoError(t, db.Model(&models.Follow{}).Where("user_id = ? OR author_id = ?", gone.ID, gone.ID).Count(&referencing).Error)
	assert.Zero(t, referencing)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 1, users)

	assert.ErrorIs(t, NewAdminService(db).DeleteUser(ctx, "gone"), ErrNotFound)
}

func TestAdmin_Stats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := mkUser(t, db, "auth")
	mkGroup(t, db, "g")
	mkPost(t, db, author, nil, "one")
	mkPost(t, db, author, nil, "two")
	require.NoError(t, db.Create(&models.PageView{Day: models.DayKey(time.Now()), Path: "/", Count: 5}).Error)

	st, err := NewAdminService(db).Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, st.Users)
	assert.EqualValues(t, 1, st.Groups)
	assert.EqualValues(t, 2, st.Posts)
	assert.EqualValues(t, 5, st.TodayPageViews)
}

package services

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/yatube/models"
)

func countPosts(t *testing.T, svc *PostService) int64 {
	t.Helper()
	var n int64
	require.NoError(t, svc.db.Model(&models.Post{}).Count(&n).Error)
	return n
}

func TestCreate_Valid(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := mkUser(t, db, "auth")
	group := mkGroup(t, db, "new_test_group")
	svc, _ := newPostService(t, db)

	res, err := svc.Create(ctx, author.ID, PostForm{Text: "  Тестовый пост  ", GroupID: strconv.Itoa(int(group.ID))})
	require.NoError(t, err)
	require.Equal(t, OutcomeDone, res.Outcome)
	assert.Equal(t, "Тестовый пост", res.Post.Text)
	require.NotNil(t, res.Post.GroupID)
	assert.Equal(t, group.ID, *res.Post.GroupID)
	assert.True(t, res.Post.IsAuthor(author.ID))
	assert.EqualValues(t, 1, countPosts(t, svc))
}

func TestCreate_InvalidWritesNothing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := mkUser(t, db, "auth")
	svc, images := newPostService(t, db)

	tests := []struct {
		name  string
		form  PostForm
		field string
	}{
		{"empty text", PostForm{Text: ""}, "text"},
		{"whitespace text", PostForm{Text: "   \n "}, "text"},
		{"unknown group", PostForm{Text: "ok", GroupID: "999"}, "group"},
		{"garbage group", PostForm{Text: "ok", GroupID: "x"}, "group"},
		{"not an image", PostForm{Text: "ok", Image: upload(t, "a.png", []byte("plain text"))}, "image"},
		{"svg rejected", PostForm{Text: "ok", Image: upload(t, "a.svg", svgWithScript)}, "image"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Create(ctx, author.ID, tt.form)
			require.NoError(t, err)
			assert.Equal(t, OutcomeInvalid, res.Outcome)
			assert.True(t, res.Errors.Has(tt.field), "errors: %v", res.Errors)
			assert.Zero(t, countPosts(t, svc))
		})
	}

	entries, _ := os.ReadDir(filepath.Join(images.Root(), "posts"))
	assert.Empty(t, entries, "rejected forms leave no files behind")
}

func TestCreate_TextIsStoredAsSubmitted(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := mkUser(t, db, "auth")
	svc, _ := newPostService(t, db)

	for _, text := range []string{"if x<y then swap", "use <T any> generics", "a & b", `say "hi" & 'bye'`, "<script>alert(1)</script>"} {
		res, err := svc.Create(ctx, author.ID, PostForm{Text: text})
		require.NoError(t, err)
		require.Equal(t, OutcomeDone, res.Outcome, text)

		var stored models.Post
		require.NoError(t, db.First(&stored, res.Post.ID).Error)
		assert.Equal(t, text, stored.Text)

		form, err := svc.EditForm(ctx, author.ID, res.Post.ID)
		require.NoError(t, err)
		assert.Equal(t, text, form.Post.Text)
	}

	post := mkPost(t, db, author, nil, "post")
	_, err := svc.AddComment(ctx, author.ID, post.ID, " x < y && y > z ")
	require.NoError(t, err)
	var c models.Comment
	require.NoError(t, db.Where("post_id = ?", post.ID).First(&c).Error)
	assert.Equal(t, "x < y && y > z", c.Text)
}

func TestCreate_WithImage(t *testing.T) {
	db := newTestDB(t)
	author := mkUser(t, db, "auth")
	svc, images := newPostService(t, db)

	res, err := svc.Create(context.Background(), author.ID, PostForm{Text: "pic", Image: upload(t, "small.gif", tinyGIF)})
	require.NoError(t, err)
	require.Equal(t, OutcomeDone, res.Outcome)
	assert.FileExists(t, filepath.Join(images.Root(), res.Post.Image))
}

func TestEdit_NonAuthorDenied(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := mkUser(t, db, "auth")
	intruder := mkUser(t, db, "intruder")
	post := mkPost(t, db, author, nil, "original")
	svc, _ := newPostService(t, db)

	form, err := svc.EditForm(ctx, intruder.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDenied, form.Outcome)

	res, err := svc.Edit(ctx, intruder.ID, post.ID, PostForm{Text: "hijacked"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeDenied, res.Outcome)

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, "original", stored.Text)
}

func TestEdit_AuthorKeepsCreatedAt(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := mkUser(t, db, "auth")
	group := mkGroup(t, db, "g")
	post := mkPost(t, db, author, group, "v1")
	svc, _ := newPostService(t, db)

	var before models.Post
	require.NoError(t, db.First(&before, post.ID).Error)

	res, err := svc.Edit(ctx, author.ID, post.ID, PostForm{Text: "v2"})
	require.NoError(t, err)
	require.Equal(t, OutcomeDone, res.Outcome)
	assert.Equal(t, "v2", res.Post.Text)
	assert.Nil(t, res.Post.GroupID, "clearing the select removes the group")
	assert.True(t, before.CreatedAt.Equal(res.Post.CreatedAt))

	invalid, err := svc.Edit(ctx, author.ID, post.ID, PostForm{Text: ""})
	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalid, invalid.Outcome)

	_, err = svc.Edit(ctx, author.ID, 9999, PostForm{Text: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPost_CreatedAtIsCreateOnly(t *testing.T) {
	db := newTestDB(t)
	author := mkUser(t, db, "auth")
	post := mkPost(t, db, author, nil, "v1")

	var before models.Post
	require.NoError(t, db.First(&before, post.ID).Error)

	past := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Model(&models.Post{ID: post.ID}).Updates(models.Post{Text: "v2", CreatedAt: past}).Error)

	var after models.Post
	require.NoError(t, db.First(&after, post.ID).Error)
	assert.Equal(t, "v2", after.Text)
	assert.True(t, before.CreatedAt.Equal(after.CreatedAt))
}

func TestEdit_ReplacesImage(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := mkUser(t, db, "auth")
	svc, images := newPostService(t, db)

	created, err := svc.Create(ctx, author.ID, PostForm{Text: "pic", Image: upload(t, "one.gif", tinyGIF)})
	require.NoError(t, err)
	oldPath := filepath.Join(images.Root(), created.Post.Image)

	edited, err := svc.Edit(ctx, author.ID, created.Post.ID, PostForm{Text: "pic", Image: upload(t, "two.gif", tinyGIF)})
	require.NoError(t, err)
	require.Equal(t, OutcomeDone, edited.Outcome)
	assert.NotEqual(t, created.Post.Image, edited.Post.Image)
	assert.NoFileExists(t, oldPath)
	assert.FileExists(t, filepath.Join(images.Root(), edited.Post.Image))

	kept, err := svc.Edit(ctx, author.ID, created.Post.ID, PostForm{Text: "no new image"})
	require.NoError(t, err)
	assert.Equal(t, edited.Post.Image, kept.Post.Image)
}

func TestAddComment(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := mkUser(t, db, "auth")
	post := mkPost(t, db, author, nil, "p")
	svc, _ := newPostService(t, db)

	res, err := svc.AddComment(ctx, author.ID, post.ID, "nice")
	require.NoError(t, err)
	assert.Equal(t, OutcomeDone, res.Outcome)

	res, err = svc.AddComment(ctx, author.ID, post.ID, "  ")
	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalid, res.Outcome)

	_, err = svc.AddComment(ctx, author.ID, 777, "orphan")
	assert.ErrorIs(t, err, ErrNotFound)

	var n int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := mkUser(t, db, "auth")
	other := mkUser(t, db, "other")
	svc, _ := newPostService(t, db)
	post := mkPost(t, db, author, nil, "to delete")
	_, err := svc.AddComment(ctx, other.ID, post.ID, "c")
	require.NoError(t, err)

	denied, err := svc.Delete(ctx, other.ID, post.ID, false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDenied, denied.Outcome)
	assert.EqualValues(t, 1, countPosts(t, svc))

	done, err := svc.Delete(ctx, author.ID, post.ID, false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDone, done.Outcome)
	assert.Equal(t, "auth", done.Post.Author.Username)
	assert.Zero(t, countPosts(t, svc))

	var comments int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.Zero(t, comments)

	again := mkPost(t, db, author, nil, "admin removes")
	byAdmin, err := svc.Delete(ctx, other.ID, again.ID, true)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDone, byAdmin.Outcome)
}

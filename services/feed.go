package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/utils"
)

// FeedService assembles the read-side pages: index, group, profile, post detail and follow feed.
type FeedService struct {
	db      *gorm.DB
	perPage int
}

// NewFeedService returns a FeedService that pages by perPage.
func NewFeedService(db *gorm.DB, perPage int) *FeedService {
	if perPage <= 0 {
		perPage = 10
	}
	return &FeedService{db: db, perPage: perPage}
}

// PostPage is one page of posts, newest first.
type PostPage = utils.Page[models.Post]

type GroupFeed struct {
	Group *models.Group
	Page  *PostPage
}

type ProfileFeed struct {
	Author    *models.User
	Page      *PostPage
	PostCount int64
	// Following is true only for an authenticated viewer other than Author who follows Author.
	Following bool
}

type PostDetail struct {
	Post     *models.Post
	Comments []models.Comment
	// AuthorPostCount is 0 when the post has no author.
	AuthorPostCount int64
}

func listScope(db *gorm.DB) *gorm.DB {
	return utils.NewestFirst(db.Preload("Author").Preload("Group"))
}

func (s *FeedService) posts(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Post{})
}

// Index returns every post.
func (s *FeedService) Index(ctx context.Context, page string) (*PostPage, error) {
	return utils.PaginateQuery[models.Post](s.posts(ctx), page, s.perPage, listScope)
}

// Group returns the group identified by slug with its posts.
func (s *FeedService) Group(ctx context.Context, slug, page string) (*GroupFeed, error) {
	var group models.Group
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, notFound(err, "group "+slug)
	}
	p, err := utils.PaginateQuery[models.Post](s.posts(ctx).Where("group_id = ?", group.ID), page, s.perPage, listScope)
	if err != nil {
		return nil, err
	}
	return &GroupFeed{Group: &group, Page: p}, nil
}

// Profile returns the author's posts and whether viewerID (0 for anonymous) follows them.
func (s *FeedService) Profile(ctx context.Context, username, page string, viewerID uint) (*ProfileFeed, error) {
	author, err := s.userByName(ctx, username)
	if err != nil {
		return nil, err
	}
	p, err := utils.PaginateQuery[models.Post](s.posts(ctx).Where("author_id = ?", author.ID), page, s.perPage, listScope)
	if err != nil {
		return nil, err
	}
	feed := &ProfileFeed{Author: author, Page: p, PostCount: p.Count}
	if viewerID != 0 && viewerID != author.ID {
		var n int64
		err := s.db.WithContext(ctx).Model(&models.Follow{}).
			Where("user_id = ? AND author_id = ?", viewerID, author.ID).
			Count(&n).Error
		if err != nil {
			return nil, err
		}
		feed.Following = n > 0
	}
	return feed, nil
}

// PostDetail returns a post with its comments, oldest comment first.
func (s *FeedService) PostDetail(ctx context.Context, id uint) (*PostDetail, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Preload("Author").Preload("Group").First(&post, id).Error
	if err != nil {
		return nil, notFound(err, "post")
	}

	comments := []models.Comment{}
	err = s.db.WithContext(ctx).Preload("Author").
		Where("post_id = ?", post.ID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	detail := &PostDetail{Post: &post, Comments: comments}
	if post.AuthorID != nil {
		if err := s.posts(ctx).Where("author_id = ?", *post.AuthorID).Count(&detail.AuthorPostCount).Error; err != nil {
			return nil, err
		}
	}
	return detail, nil
}

// FollowFeed returns posts by authors viewerID follows.
func (s *FeedService) FollowFeed(ctx context.Context, viewerID uint, page string) (*PostPage, error) {
	followed := s.db.WithContext(ctx).Model(&models.Follow{}).
		Select("author_id").
		Where("user_id = ? AND author_id IS NOT NULL", viewerID)
	q := s.posts(ctx).Where("author_id IN (?)", followed)
	return utils.PaginateQuery[models.Post](q, page, s.perPage, listScope)
}

// Groups lists all groups by title.
func (s *FeedService) Groups(ctx context.Context) ([]models.Group, error) {
	groups := []models.Group{}
	err := s.db.WithContext(ctx).Order("title ASC").Find(&groups).Error
	return groups, err
}

func (s *FeedService) userByName(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, notFound(err, "user "+username)
	}
	return &u, nil
}

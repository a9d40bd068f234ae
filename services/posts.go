package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"gorm.io/gorm"

	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/utils"
)

// PostForm is the submitted post form. GroupID is the raw select value ("" for none).
type PostForm struct {
	Text    string
	GroupID string
	Image   *multipart.FileHeader
}

// PostService performs post and comment writes.
type PostService struct {
	db     *gorm.DB
	images *utils.ImageStore
}

// NewPostService returns a PostService storing images in images.
func NewPostService(db *gorm.DB, images *utils.ImageStore) *PostService {
	return &PostService{db: db, images: images}
}

func record(op string, r Result) Result {
	utils.WriteOutcomes.WithLabelValues(op, r.Outcome.String()).Inc()
	return r
}

func (s *PostService) load(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("Author").Preload("Group").First(&post, id).Error; err != nil {
		return nil, notFound(err, "post")
	}
	return &post, nil
}

// validate checks text, then group, then image. The image is only stored when
// everything before it passed.
func (s *PostService) validate(ctx context.Context, f PostForm) (text string, groupID *uint, image string, errs FieldErrors, err error) {
	errs = FieldErrors{}
	text = utils.CleanText(f.Text)
	if text == "" {
		errs.Add("text", "This field is required.")
	}

	if raw := strings.TrimSpace(f.GroupID); raw != "" {
		id, perr := ParseID(raw)
		if perr == nil {
			var n int64
			if err = s.db.WithContext(ctx).Model(&models.Group{}).Where("id = ?", id).Count(&n).Error; err != nil {
				return
			}
			if n == 0 {
				perr = ErrNotFound
			}
		}
		if perr != nil {
			errs.Add("group", "Select a valid choice.")
		} else {
			groupID = &id
		}
	}

	if f.Image != nil && !errs.Any() {
		image, err = s.images.Save(f.Image)
		switch {
		case errors.Is(err, utils.ErrNotImage), errors.Is(err, utils.ErrImageTooLarge):
			errs.Add("image", err.Error())
			err = nil
		case err != nil:
			return
		}
	}
	return
}

// Create saves a new post by actorID. Invalid input writes nothing.
func (s *PostService) Create(ctx context.Context, actorID uint, f PostForm) (Result, error) {
	text, groupID, image, errs, err := s.validate(ctx, f)
	if err != nil {
		return Result{}, err
	}
	if errs.Any() {
		return record("create", Result{Outcome: OutcomeInvalid, Errors: errs}), nil
	}

	post := models.Post{Text: text, AuthorID: &actorID, GroupID: groupID, Image: image}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		s.images.Delete(image)
		return Result{}, err
	}
	return record("create", Result{Outcome: OutcomeDone, Post: &post}), nil
}

// EditForm loads the post for its edit form. Only the author gets OutcomeDone.
func (s *PostService) EditForm(ctx context.Context, actorID, postID uint) (Result, error) {
	post, err := s.load(ctx, postID)
	if err != nil {
		return Result{}, err
	}
	if !post.IsAuthor(actorID) {
		return Result{Outcome: OutcomeDenied, Post: post}, nil
	}
	return Result{Outcome: OutcomeDone, Post: post}, nil
}

// Edit updates text, group and optionally the image of the author's post.
// created_at is never written. A new image replaces and removes the old file.
func (s *PostService) Edit(ctx context.Context, actorID, postID uint, f PostForm) (Result, error) {
	post, err := s.load(ctx, postID)
	if err != nil {
		return Result{}, err
	}
	if !post.IsAuthor(actorID) {
		return record("edit", Result{Outcome: OutcomeDenied, Post: post}), nil
	}

	text, groupID, image, errs, err := s.validate(ctx, f)
	if err != nil {
		return Result{}, err
	}
	if errs.Any() {
		return record("edit", Result{Outcome: OutcomeInvalid, Post: post, Errors: errs}), nil
	}

	updates := map[string]interface{}{"text": text, "group_id": nil}
	if groupID != nil {
		updates["group_id"] = *groupID
	}
	oldImage := post.Image
	if image != "" {
		updates["image"] = image
	}
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", post.ID).Updates(updates).Error; err != nil {
		s.images.Delete(image)
		return Result{}, err
	}
	if image != "" && oldImage != "" {
		s.images.Delete(oldImage)
	}

	post, err = s.load(ctx, postID)
	if err != nil {
		return Result{}, err
	}
	return record("edit", Result{Outcome: OutcomeDone, Post: post}), nil
}

// AddComment stores text as a comment by actorID on the post.
func (s *PostService) AddComment(ctx context.Context, actorID, postID uint, text string) (Result, error) {
	post, err := s.load(ctx, postID)
	if err != nil {
		return Result{}, err
	}
	clean := utils.CleanText(text)
	if clean == "" {
		errs := FieldErrors{}
		errs.Add("text", "This field is required.")
		return record("comment", Result{Outcome: OutcomeInvalid, Post: post, Errors: errs}), nil
	}
	c := models.Comment{PostID: post.ID, AuthorID: &actorID, Text: clean}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return Result{}, err
	}
	return record("comment", Result{Outcome: OutcomeDone, Post: post}), nil
}

// Delete removes the post, its comments and its image. Allowed for the author
// or when asAdmin is set.
func (s *PostService) Delete(ctx context.Context, actorID, postID uint, asAdmin bool) (Result, error) {
	post, err := s.load(ctx, postID)
	if err != nil {
		return Result{}, err
	}
	if !asAdmin && !post.IsAuthor(actorID) {
		return record("delete", Result{Outcome: OutcomeDenied, Post: post}), nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, post.ID).Error
	})
	if err != nil {
		return Result{}, err
	}
	s.images.Delete(post.Image)
	return record("delete", Result{Outcome: OutcomeDone, Post: post}), nil
}

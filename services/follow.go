package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/cppla/yatube/models"
)

// FollowService creates and removes follow edges.
type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

func (s *FollowService) author(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, notFound(err, "user "+username)
	}
	return &u, nil
}

// Follow makes followerID follow username. Repeated calls and self-follow are no-ops.
func (s *FollowService) Follow(ctx context.Context, followerID uint, username string) error {
	author, err := s.author(ctx, username)
	if err != nil {
		return err
	}
	if author.ID == followerID {
		return nil
	}
	edge := models.Follow{UserID: &followerID, AuthorID: &author.ID}
	return s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", followerID, author.ID).
		FirstOrCreate(&edge).Error
}

// Unfollow removes any edge from followerID to username.
func (s *FollowService) Unfollow(ctx context.Context, followerID uint, username string) error {
	author, err := s.author(ctx, username)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", followerID, author.ID).
		Delete(&models.Follow{}).Error
}

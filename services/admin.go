package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/cppla/yatube/models"
)

// GroupForm creates a group.
type GroupForm struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Stats are the counters shown by the admin stats endpoint.
type Stats struct {
	Users          int64 `json:"user_count"`
	Groups         int64 `json:"group_count"`
	Posts          int64 `json:"post_count"`
	Comments       int64 `json:"comment_count"`
	Follows        int64 `json:"follow_count"`
	TodayPageViews int64 `json:"today_page_views"`
}

// AdminService runs maintenance that touches several tables at once.
// Dependents are nulled explicitly since migrations create no foreign keys.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// CreateGroup validates and stores a new group.
func (s *AdminService) CreateGroup(ctx context.Context, f GroupForm) (*models.Group, FieldErrors, error) {
	errs := FieldErrors{}
	title := strings.TrimSpace(f.Title)
	slug := strings.TrimSpace(f.Slug)
	if title == "" || utf8.RuneCountInString(title) > 200 {
		errs.Add("title", "Title is required and at most 200 characters.")
	}
	if !models.ValidSlug(slug) {
		errs.Add("slug", "Enter a valid slug of letters, numbers, underscores or hyphens.")
	} else {
		var n int64
		if err := s.db.WithContext(ctx).Model(&models.Group{}).Where("slug = ?", slug).Count(&n).Error; err != nil {
			return nil, nil, err
		}
		if n > 0 {
			errs.Add("slug", "Group with this slug already exists.")
		}
	}
	if errs.Any() {
		return nil, errs, nil
	}
	g := models.Group{Title: title, Slug: slug, Description: strings.TrimSpace(f.Description)}
	if err := s.db.WithContext(ctx).Create(&g).Error; err != nil {
		return nil, nil, err
	}
	return &g, nil, nil
}

// DeleteGroup removes the group; its posts stay with no group.
func (s *AdminService) DeleteGroup(ctx context.Context, slug string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g models.Group
		if err := tx.Where("slug = ?", slug).First(&g).Error; err != nil {
			return notFound(err, "group "+slug)
		}
		if err := tx.Model(&models.Post{}).Where("group_id = ?", g.ID).Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&g).Error
	})
}

// DeleteUser removes the account. Posts, comments and follow edges survive with the user nulled.
func (s *AdminService) DeleteUser(ctx context.Context, username string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.Where("username = ?", username).First(&u).Error; err != nil {
			return notFound(err, "user "+username)
		}
		nullify := []struct {
			model  interface{}
			column string
		}{
			{&models.Post{}, "author_id"},
			{&models.Comment{}, "author_id"},
			{&models.Follow{}, "user_id"},
			{&models.Follow{}, "author_id"},
		}
		for _, n := range nullify {
			if err := tx.Model(n.model).Where(n.column+" = ?", u.ID).Update(n.column, nil).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&u).Error
	})
}

// Stats counts rows and today's page views.
func (s *AdminService) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	db := s.db.WithContext(ctx)
	counts := []struct {
		model interface{}
		dst   *int64
	}{
		{&models.User{}, &st.Users},
		{&models.Group{}, &st.Groups},
		{&models.Post{}, &st.Posts},
		{&models.Comment{}, &st.Comments},
		{&models.Follow{}, &st.Follows},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dst).Error; err != nil {
			return Stats{}, err
		}
	}
	err := db.Model(&models.PageView{}).
		Where("day = ?", models.DayKey(time.Now())).
		Select("COALESCE(SUM(count),0)").
		Scan(&st.TodayPageViews).Error
	return st, err
}

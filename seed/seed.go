// Package seed fills a database with demo users, groups, posts, comments and follows.
// Development use only.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"

	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/utils"
)

// Options control how much data Run creates.
type Options struct {
	Users           int
	Groups          int
	Posts           int
	CommentsPerPost int
	// FollowsPerUser is capped at Users-1.
	FollowsPerUser int
	Clean          bool
	// Password is shared by every seeded account.
	Password string
	// RandSeed makes runs reproducible; 0 picks one from the clock.
	RandSeed int64
}

// Summary reports what Run created.
type Summary struct {
	Users, Groups, Posts, Comments, Follows int
}

// Run seeds db according to opts.
func Run(ctx context.Context, db *gorm.DB, opts Options) (Summary, error) {
	var sum Summary
	if opts.RandSeed == 0 {
		opts.RandSeed = time.Now().UnixNano()
	}
	if opts.Password == "" {
		opts.Password = "password123"
	}
	faker := gofakeit.New(opts.RandSeed)
	db = db.WithContext(ctx)

	if opts.Clean {
		if err := Clear(db); err != nil {
			return sum, err
		}
	}

	hash, err := utils.HashPassword(opts.Password)
	if err != nil {
		return sum, err
	}

	users := make([]models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		users = append(users, models.User{
			Username:     fmt.Sprintf("%s%d", strings.ToLower(faker.Username()), i),
			FirstName:    faker.FirstName(),
			LastName:     faker.LastName(),
			Email:        faker.Email(),
			PasswordHash: hash,
		})
	}
	if len(users) > 0 {
		if err := db.CreateInBatches(&users, 100).Error; err != nil {
			return sum, fmt.Errorf("seed users: %w", err)
		}
	}
	sum.Users = len(users)

	groups := make([]models.Group, 0, opts.Groups)
	for i := 0; i < opts.Groups; i++ {
		word := strings.ToLower(faker.Word())
		groups = append(groups, models.Group{
			Title:       capitalize(word) + " talk",
			Slug:        fmt.Sprintf("%s-%d", slugify(word), i),
			Description: faker.Sentence(12),
		})
	}
	if len(groups) > 0 {
		if err := db.CreateInBatches(&groups, 100).Error; err != nil {
			return sum, fmt.Errorf("seed groups: %w", err)
		}
	}
	sum.Groups = len(groups)

	if len(users) == 0 {
		return sum, nil
	}

	posts := make([]models.Post, 0, opts.Posts)
	for i := 0; i < opts.Posts; i++ {
		author := users[faker.Number(0, len(users)-1)]
		p := models.Post{
			Text:      faker.Paragraph(1, 4, 12, "\n"),
			AuthorID:  &author.ID,
			CreatedAt: time.Now().Add(-time.Duration(faker.Number(0, 90*24*60)) * time.Minute),
		}
		if len(groups) > 0 && faker.Bool() {
			p.GroupID = &groups[faker.Number(0, len(groups)-1)].ID
		}
		posts = append(posts, p)
	}
	if len(posts) > 0 {
		if err := db.CreateInBatches(&posts, 100).Error; err != nil {
			return sum, fmt.Errorf("seed posts: %w", err)
		}
	}
	sum.Posts = len(posts)

	var comments []models.Comment
	for _, p := range posts {
		for j := 0; j < opts.CommentsPerPost; j++ {
			author := users[faker.Number(0, len(users)-1)]
			comments = append(comments, models.Comment{
				PostID:    p.ID,
				AuthorID:  &author.ID,
				Text:      faker.Sentence(8),
				CreatedAt: p.CreatedAt.Add(time.Duration(j+1) * time.Hour),
			})
		}
	}
	if len(comments) > 0 {
		if err := db.CreateInBatches(&comments, 200).Error; err != nil {
			return sum, fmt.Errorf("seed comments: %w", err)
		}
	}
	sum.Comments = len(comments)

	per := min(opts.FollowsPerUser, len(users)-1)
	var follows []models.Follow
	for i := range users {
		for k := 1; k <= per; k++ {
			// the k-th neighbour keeps pairs unique without bookkeeping
			author := &users[(i+k)%len(users)]
			follows = append(follows, models.Follow{UserID: &users[i].ID, AuthorID: &author.ID})
		}
	}
	if len(follows) > 0 {
		if err := db.CreateInBatches(&follows, 200).Error; err != nil {
			return sum, fmt.Errorf("seed follows: %w", err)
		}
	}
	sum.Follows = len(follows)
	return sum, nil
}

// Clear deletes every seeded table, dependents first.
func Clear(db *gorm.DB) error {
	all := db.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, m := range []interface{}{&models.Comment{}, &models.Follow{}, &models.Post{}, &models.Group{}, &models.User{}} {
		if err := all.Delete(m).Error; err != nil {
			return fmt.Errorf("clear %T: %w", m, err)
		}
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "group"
	}
	return b.String()
}

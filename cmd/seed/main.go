// Command seed fills the configured database with demo data.
package main

import (
	"context"
	"flag"

	"github.com/cppla/yatube/config"
	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/seed"
	"github.com/cppla/yatube/utils"
)

func main() {
	users := flag.Int("users", 20, "number of users to create")
	groups := flag.Int("groups", 5, "number of groups to create")
	posts := flag.Int("posts", 120, "number of posts to create")
	comments := flag.Int("comments", 3, "comments per post")
	follows := flag.Int("follows", 4, "follows per user")
	clean := flag.Bool("clean", false, "delete existing users, groups, posts, comments and follows first")
	password := flag.String("password", "password123", "password of every seeded account")
	flag.Parse()

	cfg := config.Load()
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer utils.Logger.Sync()

	db := config.InitDatabase(models.All()...)
	sum, err := seed.Run(context.Background(), db, seed.Options{
		Users:           *users,
		Groups:          *groups,
		Posts:           *posts,
		CommentsPerPost: *comments,
		FollowsPerUser:  *follows,
		Clean:           *clean,
		Password:        *password,
	})
	if err != nil {
		utils.Sugar.Fatalf("seeding failed: %v", err)
	}
	utils.Sugar.Infow("seeding done",
		"users", sum.Users, "groups", sum.Groups, "posts", sum.Posts,
		"comments", sum.Comments, "follows", sum.Follows)
}

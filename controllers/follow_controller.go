package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/yatube/middleware"
	"github.com/cppla/yatube/services"
)

// FollowController serves the follow feed and the follow/unfollow links.
type FollowController struct {
	feed    *services.FeedService
	follows *services.FollowService
}

func NewFollowController(feed *services.FeedService, follows *services.FollowService) *FollowController {
	return &FollowController{feed: feed, follows: follows}
}

// Index lists posts by the authors the viewer follows.
func (f *FollowController) Index(ctx *gin.Context) {
	page, err := f.feed.FollowFeed(ctx.Request.Context(), middleware.CurrentUserID(ctx), ctx.Query("page"))
	if err != nil {
		fail(ctx, err)
		return
	}
	render(ctx, http.StatusOK, "follow.html", gin.H{"Title": "Following", "Page": page})
}

// Follow subscribes the viewer to the author in the path.
func (f *FollowController) Follow(ctx *gin.Context) {
	if err := f.follows.Follow(ctx.Request.Context(), middleware.CurrentUserID(ctx), ctx.Param("username")); err != nil {
		fail(ctx, err)
		return
	}
	redirect(ctx, "/follow/")
}

// Unfollow removes the subscription.
func (f *FollowController) Unfollow(ctx *gin.Context) {
	if err := f.follows.Unfollow(ctx.Request.Context(), middleware.CurrentUserID(ctx), ctx.Param("username")); err != nil {
		fail(ctx, err)
		return
	}
	redirect(ctx, "/follow/")
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cppla/yatube/config"
	"github.com/cppla/yatube/middleware"
	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/services"
)

// PostController serves the feed pages and the post write forms.
type PostController struct {
	cfg   config.AppConfig
	feed  *services.FeedService
	posts *services.PostService
}

// NewPostController creates a new PostController instance.
func NewPostController(cfg config.AppConfig, feed *services.FeedService, posts *services.PostService) *PostController {
	return &PostController{cfg: cfg, feed: feed, posts: posts}
}

// Index lists all posts.
func (p *PostController) Index(ctx *gin.Context) {
	page, err := p.feed.Index(ctx.Request.Context(), ctx.Query("page"))
	if err != nil {
		fail(ctx, err)
		return
	}
	render(ctx, http.StatusOK, "index.html", gin.H{"Title": "Latest updates", "Page": page})
}

// GroupPosts lists the posts of one group.
func (p *PostController) GroupPosts(ctx *gin.Context) {
	g, err := p.feed.Group(ctx.Request.Context(), ctx.Param("slug"), ctx.Query("page"))
	if err != nil {
		fail(ctx, err)
		return
	}
	render(ctx, http.StatusOK, "group_list.html", gin.H{"Title": g.Group.Title, "Group": g.Group, "Page": g.Page})
}

// Profile lists an author's posts with the follow button state.
func (p *PostController) Profile(ctx *gin.Context) {
	pr, err := p.feed.Profile(ctx.Request.Context(), ctx.Param("username"), ctx.Query("page"), middleware.CurrentUserID(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	render(ctx, http.StatusOK, "profile.html", gin.H{
		"Title":     "Profile of " + pr.Author.FullName(),
		"Author":    pr.Author,
		"Page":      pr.Page,
		"PostCount": pr.PostCount,
		"Following": pr.Following,
	})
}

// Detail shows a post with its comments.
func (p *PostController) Detail(ctx *gin.Context) {
	id, err := services.ParseID(ctx.Param("id"))
	if err != nil {
		fail(ctx, err)
		return
	}
	d, err := p.feed.PostDetail(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	viewerID := middleware.CurrentUserID(ctx)
	render(ctx, http.StatusOK, "post_detail.html", gin.H{
		"Title":           d.Post.String(),
		"Post":            d.Post,
		"Comments":        d.Comments,
		"AuthorPostCount": d.AuthorPostCount,
		"CanEdit":         d.Post.IsAuthor(viewerID),
		"CanDelete":       d.Post.IsAuthor(viewerID) || (viewerID != 0 && p.cfg.IsAdmin(middleware.CurrentUsername(ctx))),
	})
}

// CreateForm shows the empty post form.
func (p *PostController) CreateForm(ctx *gin.Context) {
	p.renderForm(ctx, http.StatusOK, nil, services.PostForm{}, services.FieldErrors{})
}

// Create stores the submitted post and redirects to the author's profile.
func (p *PostController) Create(ctx *gin.Context) {
	form, ok := p.bindForm(ctx)
	if !ok {
		return
	}
	res, err := p.posts.Create(ctx.Request.Context(), middleware.CurrentUserID(ctx), form)
	if err != nil {
		fail(ctx, err)
		return
	}
	if res.Outcome == services.OutcomeInvalid {
		p.renderForm(ctx, http.StatusOK, nil, form, res.Errors)
		return
	}
	redirect(ctx, "/profile/"+middleware.CurrentUsername(ctx)+"/")
}

// EditForm shows the form filled with the post. Non-authors go back to the post.
func (p *PostController) EditForm(ctx *gin.Context) {
	id, err := services.ParseID(ctx.Param("id"))
	if err != nil {
		fail(ctx, err)
		return
	}
	res, err := p.posts.EditForm(ctx.Request.Context(), middleware.CurrentUserID(ctx), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	if res.Outcome == services.OutcomeDenied {
		redirect(ctx, detailURL(id))
		return
	}
	form := services.PostForm{Text: res.Post.Text}
	if res.Post.GroupID != nil {
		form.GroupID = strconv.FormatUint(uint64(*res.Post.GroupID), 10)
	}
	p.renderForm(ctx, http.StatusOK, res.Post, form, services.FieldErrors{})
}

// Edit saves the author's changes and redirects to the post.
func (p *PostController) Edit(ctx *gin.Context) {
	id, err := services.ParseID(ctx.Param("id"))
	if err != nil {
		fail(ctx, err)
		return
	}
	form, ok := p.bindForm(ctx)
	if !ok {
		return
	}
	res, err := p.posts.Edit(ctx.Request.Context(), middleware.CurrentUserID(ctx), id, form)
	if err != nil {
		fail(ctx, err)
		return
	}
	if res.Outcome == services.OutcomeInvalid {
		p.renderForm(ctx, http.StatusOK, res.Post, form, res.Errors)
		return
	}
	redirect(ctx, detailURL(id))
}

// AddComment stores a comment; valid or not, the caller lands on the post again.
func (p *PostController) AddComment(ctx *gin.Context) {
	id, err := services.ParseID(ctx.Param("id"))
	if err != nil {
		fail(ctx, err)
		return
	}
	if _, err := p.posts.AddComment(ctx.Request.Context(), middleware.CurrentUserID(ctx), id, ctx.PostForm("text")); err != nil {
		fail(ctx, err)
		return
	}
	redirect(ctx, detailURL(id))
}

// Delete removes a post for its author or an admin.
func (p *PostController) Delete(ctx *gin.Context) {
	id, err := services.ParseID(ctx.Param("id"))
	if err != nil {
		fail(ctx, err)
		return
	}
	asAdmin := p.cfg.IsAdmin(middleware.CurrentUsername(ctx))
	res, err := p.posts.Delete(ctx.Request.Context(), middleware.CurrentUserID(ctx), id, asAdmin)
	if err != nil {
		fail(ctx, err)
		return
	}
	switch {
	case res.Outcome == services.OutcomeDenied:
		redirect(ctx, detailURL(id))
	case res.Post.Author != nil:
		redirect(ctx, "/profile/"+res.Post.Author.Username+"/")
	default:
		redirect(ctx, "/")
	}
}

func (p *PostController) bindForm(ctx *gin.Context) (services.PostForm, bool) {
	form := services.PostForm{Text: ctx.PostForm("text"), GroupID: ctx.PostForm("group")}
	fh, err := ctx.FormFile("image")
	switch {
	case err == nil:
		form.Image = fh
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		fail(ctx, err)
		return form, false
	}
	return form, true
}

func (p *PostController) renderForm(ctx *gin.Context, status int, post *models.Post, form services.PostForm, errs services.FieldErrors) {
	groups, err := p.feed.Groups(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	title := "New post"
	if post != nil {
		title = "Edit post"
	}
	render(ctx, status, "create_post.html", gin.H{
		"Title":  title,
		"IsEdit": post != nil,
		"Post":   post,
		"Form":   form,
		"Errors": errs,
		"Groups": groups,
	})
}

func detailURL(id uint) string {
	return "/posts/" + strconv.FormatUint(uint64(id), 10) + "/"
}

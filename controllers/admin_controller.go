package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/yatube/services"
	"github.com/cppla/yatube/utils"
)

// AdminController exposes maintenance endpoints as JSON.
type AdminController struct {
	admin *services.AdminService
	cache utils.ResponseCache
}

// NewAdminController creates a new AdminController instance.
func NewAdminController(admin *services.AdminService, cache utils.ResponseCache) *AdminController {
	return &AdminController{admin: admin, cache: cache}
}

// ClearCache drops every cached page.
func (a *AdminController) ClearCache(ctx *gin.Context) {
	if err := a.cache.Clear(ctx.Request.Context()); err != nil {
		utils.Sugar.Errorw("cache clear failed", "err", err)
		utils.Error(ctx, http.StatusInternalServerError, utils.CodeCacheClear, "failed to clear cache")
		return
	}
	utils.Success(ctx, gin.H{"cleared": true})
}

// Stats returns row counts and today's page views.
func (a *AdminController) Stats(ctx *gin.Context) {
	st, err := a.admin.Stats(ctx.Request.Context())
	if err != nil {
		utils.Sugar.Errorw("stats failed", "err", err)
		utils.Error(ctx, http.StatusInternalServerError, utils.CodeStats, "failed to load stats")
		return
	}
	utils.Success(ctx, st)
}

// CreateGroup adds a group from a JSON body.
func (a *AdminController) CreateGroup(ctx *gin.Context) {
	var req services.GroupForm
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, utils.CodeBadPayload, "invalid request payload")
		return
	}
	g, errs, err := a.admin.CreateGroup(ctx.Request.Context(), req)
	if err != nil {
		utils.Sugar.Errorw("create group failed", "err", err)
		utils.Error(ctx, http.StatusInternalServerError, utils.CodeGroupCreate, "failed to create group")
		return
	}
	if errs.Any() {
		utils.Respond(ctx, http.StatusBadRequest, utils.CodeInvalidGroup, "invalid group", errs)
		ctx.Abort()
		return
	}
	utils.Created(ctx, g)
}

// DeleteGroup removes a group by slug; its posts stay ungrouped.
func (a *AdminController) DeleteGroup(ctx *gin.Context) {
	a.deleted(ctx, a.admin.DeleteGroup(ctx.Request.Context(), ctx.Param("slug")), "group", utils.CodeNoSuchGroup)
}

// DeleteUser removes an account; its posts, comments and follows stay anonymous.
func (a *AdminController) DeleteUser(ctx *gin.Context) {
	a.deleted(ctx, a.admin.DeleteUser(ctx.Request.Context(), ctx.Param("username")), "user", utils.CodeNoSuchUser)
}

func (a *AdminController) deleted(ctx *gin.Context, err error, what string, missing utils.Code) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, missing, what+" not found")
	case err != nil:
		utils.Sugar.Errorw("delete failed", "what", what, "err", err)
		utils.Error(ctx, http.StatusInternalServerError, utils.CodeDelete, "failed to delete "+what)
	default:
		utils.Success(ctx, gin.H{"deleted": true})
	}
}

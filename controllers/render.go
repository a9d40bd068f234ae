package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/yatube/middleware"
	"github.com/cppla/yatube/services"
	"github.com/cppla/yatube/utils"
)

// render adds the viewer to data and writes the named page.
func render(ctx *gin.Context, status int, name string, data gin.H) {
	if _, ok := data["Viewer"]; !ok {
		data["Viewer"] = middleware.CurrentUsername(ctx)
	}
	ctx.HTML(status, name, data)
}

// NotFound renders the generic 404 page. The router also uses it for unknown paths.
func NotFound(ctx *gin.Context) {
	render(ctx, http.StatusNotFound, "404.html", gin.H{"Title": "Page not found", "Path": ctx.Request.URL.Path})
}

// fail maps a service error onto the 404 page or a logged 500.
func fail(ctx *gin.Context, err error) {
	if errors.Is(err, services.ErrNotFound) {
		NotFound(ctx)
		return
	}
	utils.Sugar.Errorw("request failed", "method", ctx.Request.Method, "path", ctx.Request.URL.Path, "err", err)
	ctx.String(http.StatusInternalServerError, "internal server error")
}

func redirect(ctx *gin.Context, location string) {
	ctx.Redirect(http.StatusFound, location)
}

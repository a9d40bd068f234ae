package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AboutController serves the static about pages.
type AboutController struct{}

func NewAboutController() *AboutController { return &AboutController{} }

func (a *AboutController) Author(ctx *gin.Context) {
	render(ctx, http.StatusOK, "author.html", gin.H{"Title": "About the author"})
}

func (a *AboutController) Tech(ctx *gin.Context) {
	render(ctx, http.StatusOK, "tech.html", gin.H{"Title": "Technologies"})
}

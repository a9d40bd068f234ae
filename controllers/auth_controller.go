package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cppla/yatube/config"
	"github.com/cppla/yatube/middleware"
	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/services"
	"github.com/cppla/yatube/utils"
)

// AuthController handles signup, login and logout pages.
type AuthController struct {
	cfg       config.AppConfig
	accounts  *services.AccountService
	blacklist *utils.TokenBlacklist
}

func NewAuthController(cfg config.AppConfig, accounts *services.AccountService, blacklist *utils.TokenBlacklist) *AuthController {
	return &AuthController{cfg: cfg, accounts: accounts, blacklist: blacklist}
}

// SignupForm shows the registration page.
func (a *AuthController) SignupForm(ctx *gin.Context) {
	a.renderSignup(ctx, services.SignupForm{}, services.FieldErrors{})
}

// Signup registers the user, logs them in and sends them to the main page.
func (a *AuthController) Signup(ctx *gin.Context) {
	form := services.SignupForm{
		FirstName:       ctx.PostForm("first_name"),
		LastName:        ctx.PostForm("last_name"),
		Username:        ctx.PostForm("username"),
		Email:           ctx.PostForm("email"),
		Password:        ctx.PostForm("password1"),
		PasswordConfirm: ctx.PostForm("password2"),
	}
	user, errs, err := a.accounts.Signup(ctx.Request.Context(), form)
	if err != nil {
		fail(ctx, err)
		return
	}
	if errs.Any() {
		form.Password, form.PasswordConfirm = "", ""
		a.renderSignup(ctx, form, errs)
		return
	}
	if err := a.startSession(ctx, user); err != nil {
		fail(ctx, err)
		return
	}
	utils.Sugar.Infow("user signed up", "user_id", user.ID, "username", user.Username)
	redirect(ctx, "/")
}

// LoginForm shows the login page, keeping "next" for after the login.
func (a *AuthController) LoginForm(ctx *gin.Context) {
	a.renderLogin(ctx, http.StatusOK, ctx.Query("next"), "", "")
}

// Login checks the credentials and redirects to next (or the main page).
func (a *AuthController) Login(ctx *gin.Context) {
	username := ctx.PostForm("username")
	next := ctx.PostForm("next")
	user, err := a.accounts.Authenticate(ctx.Request.Context(), username, ctx.PostForm("password"))
	if errors.Is(err, services.ErrInvalidCredentials) {
		a.renderLogin(ctx, http.StatusOK, next, username, "Please enter a correct username and password.")
		return
	}
	if err != nil {
		fail(ctx, err)
		return
	}
	if err := a.startSession(ctx, user); err != nil {
		fail(ctx, err)
		return
	}
	redirect(ctx, safeNext(next))
}

// Logout revokes the current token until its expiry and clears the cookie.
func (a *AuthController) Logout(ctx *gin.Context) {
	if token := ctx.GetString(middleware.ContextTokenKey); token != "" {
		if claims, err := utils.ParseToken(token); err == nil {
			a.blacklist.Add(ctx.Request.Context(), token, claims.Expiry())
		}
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(utils.TokenCookieName, "", -1, "/", "", a.secureCookie(), true)
	render(ctx, http.StatusOK, "logged_out.html", gin.H{"Title": "Logged out", "Viewer": ""})
}

func (a *AuthController) startSession(ctx *gin.Context, user *models.User) error {
	token, err := utils.GenerateToken(user.ID, user.Username, utils.SessionTTL)
	if err != nil {
		return err
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(utils.TokenCookieName, token, int(utils.SessionTTL.Seconds()), "/", "", a.secureCookie(), true)
	return nil
}

func (a *AuthController) secureCookie() bool {
	return a.cfg.AppEnv == "production"
}

func (a *AuthController) renderLogin(ctx *gin.Context, status int, next, username, msg string) {
	render(ctx, status, "login.html", gin.H{"Title": "Log in", "Next": next, "Username": username, "Error": msg})
}

func (a *AuthController) renderSignup(ctx *gin.Context, form services.SignupForm, errs services.FieldErrors) {
	render(ctx, http.StatusOK, "signup.html", gin.H{"Title": "Sign up", "Form": form, "Errors": errs})
}

// safeNext allows only local absolute paths as the post-login target.
// Browsers drop tabs and newlines and read a backslash as a slash, so those
// are removed before checking that no scheme or host survives.
func safeNext(next string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r < 0x20 || r == 0x7f:
			return -1
		case r == '\\':
			return '/'
		}
		return r
	}, next)
	if !strings.HasPrefix(cleaned, "/") || strings.HasPrefix(cleaned, "//") {
		return "/"
	}
	u, err := url.Parse(cleaned)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return cleaned
}

package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cppla/yatube/config"
	"github.com/cppla/yatube/utils"
)

const (
	// ContextUserIDKey is the key used to store authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextUsernameKey stores the username inside Gin context.
	ContextUsernameKey = "username"
	// ContextTokenKey keeps the raw session token so logout can revoke it.
	ContextTokenKey = "session_token"
)

// Identify resolves the session token from the cookie or a Bearer header.
// Requests without a valid token continue anonymously.
func Identify(blacklist *utils.TokenBlacklist) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := sessionToken(ctx)
		if token == "" {
			ctx.Next()
			return
		}
		if blacklist != nil && blacklist.Contains(ctx.Request.Context(), token) {
			ctx.Next()
			return
		}
		claims, err := utils.ParseToken(token)
		if err != nil {
			ctx.Next()
			return
		}
		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextUsernameKey, claims.Username)
		ctx.Set(ContextTokenKey, token)
		ctx.Next()
	}
}

func sessionToken(ctx *gin.Context) string {
	if authHeader := ctx.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if c, err := ctx.Cookie(utils.TokenCookieName); err == nil {
		return c
	}
	return ""
}

// CurrentUserID returns the authenticated user id, 0 for anonymous requests.
func CurrentUserID(ctx *gin.Context) uint {
	if v, ok := ctx.Get(ContextUserIDKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// CurrentUsername returns the authenticated username, "" for anonymous requests.
func CurrentUsername(ctx *gin.Context) string {
	return ctx.GetString(ContextUsernameKey)
}

// LoginRequired redirects anonymous callers to loginURL with the original URI in "next".
func LoginRequired(loginURL string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if CurrentUserID(ctx) != 0 {
			ctx.Next()
			return
		}
		ctx.Redirect(http.StatusFound, LoginRedirect(loginURL, ctx.Request.URL.RequestURI()))
		ctx.Abort()
	}
}

// LoginRedirect builds "<loginURL>?next=<uri>", keeping slashes readable.
func LoginRedirect(loginURL, uri string) string {
	next := strings.ReplaceAll(url.QueryEscape(uri), "%2F", "/")
	return loginURL + "?next=" + next
}

// AdminRequired allows only configured admin usernames.
func AdminRequired(cfg config.AppConfig) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if CurrentUserID(ctx) == 0 {
			utils.Error(ctx, http.StatusUnauthorized, utils.CodeLoginNeeded, "login required")
			return
		}
		if !cfg.IsAdmin(CurrentUsername(ctx)) {
			utils.Error(ctx, http.StatusForbidden, utils.CodeAdminOnly, "admin only")
			return
		}
		ctx.Next()
	}
}

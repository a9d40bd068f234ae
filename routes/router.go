package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/cppla/yatube/config"
	"github.com/cppla/yatube/controllers"
	"github.com/cppla/yatube/middleware"
	"github.com/cppla/yatube/services"
	"github.com/cppla/yatube/templates"
	"github.com/cppla/yatube/utils"
)

// Deps are the collaborators the router hands to middlewares and controllers.
type Deps struct {
	Config    config.AppConfig
	DB        *gorm.DB
	Cache     utils.ResponseCache
	Images    *utils.ImageStore
	Blacklist *utils.TokenBlacklist
}

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(d Deps) (*gin.Engine, error) {
	cfg := d.Config
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = int64(max(cfg.MaxUploadMB, 1)) << 20
	// access log and panics go to their own rolling file
	if cfg.GinPath != "" {
		gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
		if err != nil {
			return nil, err
		}
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, true))
	} else {
		r.Use(gin.Recovery())
	}

	tmpl, err := templates.Load(map[string]any{"media": d.Images.URL})
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))
	r.Use(middleware.Identify(d.Blacklist))
	r.Use(middleware.PageViewRecorder(d.DB))

	r.StaticFS("/static", http.FS(templates.Static()))
	r.Static("/media", d.Images.Root())

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	feed := services.NewFeedService(d.DB, cfg.PagePerPage)
	postController := controllers.NewPostController(cfg, feed, services.NewPostService(d.DB, d.Images))
	followController := controllers.NewFollowController(feed, services.NewFollowService(d.DB))
	authController := controllers.NewAuthController(cfg, services.NewAccountService(d.DB), d.Blacklist)
	aboutController := controllers.NewAboutController()
	adminController := controllers.NewAdminController(services.NewAdminService(d.DB), d.Cache)

	ttl := time.Duration(cfg.IndexCacheSeconds) * time.Second
	r.GET("/", middleware.CachePage(d.Cache, ttl, "page:index:"), postController.Index)
	r.GET("/group/:slug/", postController.GroupPosts)
	r.GET("/profile/:username/", postController.Profile)
	r.GET("/posts/:id/", postController.Detail)

	login := middleware.LoginRequired(cfg.LoginURL)
	writes := middleware.RateLimit(cfg.RateLimitPerMinute)

	r.GET("/create/", login, postController.CreateForm)
	r.POST("/create/", login, writes, postController.Create)
	r.GET("/posts/:id/edit/", login, postController.EditForm)
	r.POST("/posts/:id/edit/", login, writes, postController.Edit)
	r.POST("/posts/:id/comment/", login, writes, postController.AddComment)
	r.POST("/posts/:id/delete/", login, writes, postController.Delete)

	r.GET("/follow/", login, followController.Index)
	r.GET("/profile/:username/follow/", login, followController.Follow)
	r.GET("/profile/:username/unfollow/", login, followController.Unfollow)

	auth := r.Group("/auth")
	auth.GET("/signup/", authController.SignupForm)
	auth.POST("/signup/", writes, authController.Signup)
	auth.GET("/login/", authController.LoginForm)
	auth.POST("/login/", writes, authController.Login)
	auth.GET("/logout/", authController.Logout)

	about := r.Group("/about")
	about.GET("/author/", aboutController.Author)
	about.GET("/tech/", aboutController.Tech)

	admin := r.Group("/admin", middleware.AdminRequired(cfg))
	admin.POST("/cache/clear/", adminController.ClearCache)
	admin.GET("/stats/", adminController.Stats)
	admin.POST("/groups/", adminController.CreateGroup)
	admin.DELETE("/groups/:slug/", adminController.DeleteGroup)
	admin.DELETE("/users/:username/", adminController.DeleteUser)

	r.NoRoute(controllers.NotFound)

	return r, nil
}

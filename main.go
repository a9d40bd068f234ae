package main

import (
	"github.com/cppla/yatube/config"
	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/routes"
	"github.com/cppla/yatube/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer utils.Logger.Sync()

	models.PostPreviewLength = cfg.PostSymbols
	db := config.InitDatabase(models.All()...)

	var cache utils.ResponseCache
	blacklist := utils.NewTokenBlacklist(nil)
	if rc, err := utils.NewRedisClient(cfg); err != nil {
		utils.Sugar.Warnf("redis unavailable (%v), using in-process page cache and session blacklist", err)
		cache = utils.NewMemoryCache()
	} else {
		cache = utils.NewRedisCache(rc, "yatube:page:")
		blacklist = utils.NewTokenBlacklist(rc)
	}

	r, err := routes.SetupRouter(routes.Deps{
		Config:    cfg,
		DB:        db,
		Cache:     cache,
		Images:    utils.NewImageStore(cfg.MediaRoot, cfg.MaxUploadMB),
		Blacklist: blacklist,
	})
	if err != nil {
		utils.Sugar.Fatalf("router setup failed: %v", err)
	}

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}

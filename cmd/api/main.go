package main

import (
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/studio-matra/portfolio-backend/config"
	"github.com/studio-matra/portfolio-backend/internal/bootstrap"
	cronjob "github.com/studio-matra/portfolio-backend/internal/cron"
	"github.com/studio-matra/portfolio-backend/internal/importer"
	"github.com/studio-matra/portfolio-backend/internal/media"
	"github.com/studio-matra/portfolio-backend/internal/order"
	"github.com/studio-matra/portfolio-backend/internal/portfolio"
	"github.com/studio-matra/portfolio-backend/internal/records"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	mediaClient := media.NewClient(media.Config{
		CloudName:  cfg.Cloudinary.CloudName,
		APIKey:     cfg.Cloudinary.APIKey,
		APISecret:  cfg.Cloudinary.APISecret,
		BaseFolder: cfg.Cloudinary.BaseFolder,
	})
	if !mediaClient.Enabled() {
		log.Println("Cloudinary not configured: imports empty, uploads disabled")
	}

	var cache *importer.Cache
	if cfg.Cache.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		cache = importer.NewCache(rdb, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	}

	recordStore := records.NewStore(cfg.App.DataFile)
	orderStore := order.NewStore(mediaClient)
	imp := importer.New(mediaClient, cache)
	svc := portfolio.NewService(recordStore, mediaClient, imp, orderStore)

	scheduler := cronjob.NewScheduler(svc, cfg.App.ReimportCron)
	scheduler.Start()
	defer scheduler.Stop()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "portfolio-backend",
		Version:        cfg.App.Version,
		AdminSecret:    cfg.Admin.Secret,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Media:          mediaClient,
		Service:        svc,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}

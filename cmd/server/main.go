package main

import (
	"context"
	"log"
	"strings"

	"github.com/meilisearch/meilisearch-go"

	"github.com/atulpawar07/sp-cricket-hub/internal/bootstrap"
	"github.com/atulpawar07/sp-cricket-hub/internal/config"
	"github.com/atulpawar07/sp-cricket-hub/internal/server"
	"github.com/atulpawar07/sp-cricket-hub/pkg/database"
	"github.com/atulpawar07/sp-cricket-hub/pkg/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.DSN(), !cfg.IsProduction())
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	redisClient, err := database.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("%v", err)
	}

	imageStorage, err := storage.New(ctx, storage.Config{
		Provider:            cfg.StorageProvider,
		CloudinaryCloudName: cfg.CloudinaryCloudName,
		CloudinaryAPIKey:    cfg.CloudinaryAPIKey,
		CloudinaryAPISecret: cfg.CloudinaryAPISecret,
		CloudinaryFolder:    cfg.CloudinaryUploadFolder,
		R2AccountID:         cfg.R2AccountID,
		R2AccessKeyID:       cfg.R2AccessKeyID,
		R2SecretAccessKey:   cfg.R2SecretAccessKey,
		R2Bucket:            cfg.R2Bucket,
		R2PublicURL:         cfg.R2PublicURL,
	})
	if err != nil {
		log.Fatalf("failed to initialize %s storage: %v", cfg.StorageProvider, err)
	}

	var meiliClient meilisearch.ServiceManager
	if host := cfg.MeiliSearchHost; host != "" {
		if !strings.HasPrefix(host, "http") {
			host = "http://" + host + ":7700"
		}
		meiliClient = meilisearch.New(host, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	} else {
		log.Println("MEILISEARCH_HOST not set, search is disabled")
	}

	srv := server.NewServer(cfg, db, redisClient, imageStorage, meiliClient)

	if err := bootstrap.PromoteAdmin(ctx, db, srv.Roles(), cfg.AdminEmail); err != nil {
		log.Printf("Failed to promote ADMIN_EMAIL: %v", err)
	}

	log.Printf("Listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

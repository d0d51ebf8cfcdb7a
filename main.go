package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/gianghaison/gianghaison.me/config"
	"github.com/gianghaison/gianghaison.me/media"
	"github.com/gianghaison/gianghaison.me/models"
	"github.com/gianghaison/gianghaison.me/routes"
	"github.com/gianghaison/gianghaison.me/storage"
	"github.com/gianghaison/gianghaison.me/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer utils.Logger.Sync()

	db := config.InitDatabase(
		&models.Post{},
		&models.Artwork{},
		&models.SiteSettings{},
		&models.PageView{},
		&models.DailyView{},
	)

	store, err := storage.NewMinioStore(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.MediaPublicURL,
		cfg.StorageUseSSL,
	)
	if err != nil {
		utils.Logger.Fatal("object store init failed", zap.Error(err))
	}

	router := routes.SetupRouter(db, media.NewPipeline(store))

	utils.Logger.Info("server starting", zap.String("port", cfg.AppPort))
	if err := utils.GraceServer(":"+cfg.AppPort, router); err != nil {
		utils.Logger.Fatal("server exited", zap.Error(err))
	}
}

package main

import (
	"log"

	"anoa.com/tccscheduler/internal/bootstrap"
	"anoa.com/tccscheduler/internal/config"
	"anoa.com/tccscheduler/internal/entity"
	"anoa.com/tccscheduler/internal/metrics"
	"anoa.com/tccscheduler/internal/server"
	"anoa.com/tccscheduler/pkg/database"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedSecretariatUser(db); err != nil {
			log.Fatalf("failed to seed secretariat user: %v", err)
		}
	}

	metrics.Register()

	srv := server.NewServer(db, cfg)
	if err := srv.Run(cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Local{},
		&entity.Presentation{},
		&entity.Event{},
		&entity.EventParticipant{},
	)
}

package database

import (
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/config"
	"github.com/Rutujpatil0403/InterviewX-sub000/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config, log *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	log.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName))
	return db
}

func AutoMigrate(db *gorm.DB, log *zap.Logger) {
	err := db.AutoMigrate(
		&models.User{},
		&models.InterviewTemplate{},
		&models.TemplateQuestion{},
		&models.Interview{},
		&models.InterviewAnswer{},
		&models.AISession{},
		&models.TranscriptEntry{},
	)
	if err != nil {
		log.Fatal("failed to auto-migrate", zap.Error(err))
	}
	log.Info("database migrated")
}

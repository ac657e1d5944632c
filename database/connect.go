package database

import (
	"cinema_factory/config"
	"cinema_factory/model"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	log.Infow("Connection Opened to Database", "host", cfg.Host, "db", cfg.Name)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("Database Migrated")

	SeedData(db)
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Section{},
		&model.Asset{},
		&model.TransactionRecord{},
		&model.CallbackEvent{},
		&model.Faq{},
	)
}

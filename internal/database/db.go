package database

import (
	"mesa-backend/internal/config"
	"mesa-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to database")
	}

	if err := Migrate(DB); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	log.Info().Msg("database connected, migrations applied")
}

// Migrate creates or updates the schema. Split out from Init so tests can
// run it against their own connection.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Establishment{},
		&models.Admin{},
		&models.Waiter{},
		&models.Category{},
		&models.Product{},
		&models.Table{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
		&models.Review{},
		&models.Closure{},
	)
}

package main

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fairwayclub/fantasy-golf/internal/models"
	"github.com/fairwayclub/fantasy-golf/pkg/config"
	"github.com/fairwayclub/fantasy-golf/pkg/database"
)

func main() {
	logger := logrus.New()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "up":
		migrateUp(db, logger)
	case "down":
		migrateDown(db, logger)
	case "seed":
		migrateUp(db, logger)
		seed(db, logger)
	default:
		logger.Fatalf("Unknown command %q (expected up, down or seed)", command)
	}
}

func migrateUp(db *database.DB, logger *logrus.Logger) {
	logger.Info("Running migrations...")

	// pgcrypto provides gen_random_uuid for uuid primary keys
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		logger.Fatalf("Failed to enable pgcrypto: %v", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Golfer{},
		&models.Season{},
		&models.Tournament{},
		&models.Score{},
		&models.Pick{},
		&models.PickHistory{},
		&models.Setting{},
	)
	if err != nil {
		logger.Fatalf("Migration failed: %v", err)
	}
	logger.Info("Migrations completed")
}

func migrateDown(db *database.DB, logger *logrus.Logger) {
	logger.Warn("Dropping all tables...")
	tables := []interface{}{
		&models.PickHistory{},
		&models.Pick{},
		&models.Score{},
		&models.Tournament{},
		&models.Season{},
		&models.Golfer{},
		&models.RefreshToken{},
		&models.User{},
		&models.Setting{},
	}
	if err := db.Migrator().DropTable(tables...); err != nil {
		logger.Fatalf("Drop failed: %v", err)
	}
	logger.Info("All tables dropped")
}

func seed(db *database.DB, logger *logrus.Logger) {
	logger.Info("Seeding database...")

	for key, value := range models.SettingDefaults {
		setting := models.Setting{Key: key, Value: value}
		if err := db.Where("key = ?", key).FirstOrCreate(&setting).Error; err != nil {
			logger.Fatalf("Failed to seed setting %s: %v", key, err)
		}
	}

	season := models.Season{
		Name:      "2026",
		StartDate: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
		Status:    models.SeasonActive,
	}
	if err := db.Where("name = ?", season.Name).FirstOrCreate(&season).Error; err != nil {
		logger.Fatalf("Failed to seed season: %v", err)
	}

	golfers := []models.Golfer{
		{FirstName: "Tom", LastName: "Bradshaw"},
		{FirstName: "Mick", LastName: "O'Donnell"},
		{FirstName: "Harry", LastName: "Whitfield"},
		{FirstName: "Dave", LastName: "Cullen"},
		{FirstName: "Pete", LastName: "Marsh"},
		{FirstName: "Alan", LastName: "Forsythe"},
		{FirstName: "Rob", LastName: "Kenny"},
		{FirstName: "Jim", LastName: "Talbot"},
	}
	for i := range golfers {
		golfers[i].Price = 3_000_000
		golfers[i].IsActive = true
		err := db.Where("first_name = ? AND last_name = ?", golfers[i].FirstName, golfers[i].LastName).
			FirstOrCreate(&golfers[i]).Error
		if err != nil {
			logger.Fatalf("Failed to seed golfer: %v", err)
		}
	}

	logger.Info("Seed completed")
}

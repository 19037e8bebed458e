package config

import (
	"os"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jatin-wig/Food-Delivery-Customer-Support/models"
)

// Settings holds everything read from the environment.
type Settings struct {
	Port         string
	DBPath       string
	MenuPath     string
	GeminiAPIKey string
	GeminiModel  string
}

// Load reads settings from the environment with sensible defaults.
func Load() Settings {
	return Settings{
		Port:         getEnv("PORT", "8080"),
		DBPath:       getEnv("DB_PATH", "support.db"),
		MenuPath:     os.Getenv("MENU_PATH"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the sqlite database and migrates the schema.
// Pass ":memory:" for an ephemeral database in tests.
func InitDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.Order{},
		&models.Ticket{},
	); err != nil {
		return nil, err
	}

	return db, nil
}

package config

import (
	"log"
	"os"

	"parcel-delivery-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to verify identity tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "parcel_delivery_super_secret_2024"))

// StripeSecretKey authenticates against the payment gateway
var StripeSecretKey = getEnv("STRIPE_SECRET_KEY", "")

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	var err error
	dsn := getEnv("DB_PATH", "parcel_delivery.db")
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.User{},
		&models.Rider{},
		&models.Parcel{},
		&models.Payment{},
		&models.TrackingEvent{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("✅ Database connected and migrated successfully")
}

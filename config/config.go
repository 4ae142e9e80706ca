package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDraftDB  int    `mapstructure:"REDIS_DRAFT_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Listing drafts.
	DraftTTL      time.Duration `mapstructure:"DRAFT_TTL"`
	PreviewDir    string        `mapstructure:"PREVIEW_DIR"`
	CatalogFile   string        `mapstructure:"CATALOG_FILE"`
	ListingAPIURL string        `mapstructure:"LISTING_API_URL"`

	// Cloudinary.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `mapstructure:"CLOUDINARY_FOLDER"`

	// Booking.
	BookingEnforceMaxQty bool `mapstructure:"BOOKING_ENFORCE_MAX_QTY"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real environment variables take precedence.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "eventify")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DRAFT_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("DRAFT_TTL", "24h")
	v.SetDefault("PREVIEW_DIR", "./tmp/previews")
	v.SetDefault("CATALOG_FILE", "")
	v.SetDefault("LISTING_API_URL", "")
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")
	v.SetDefault("CLOUDINARY_FOLDER", "eventify/services")
	v.SetDefault("BOOKING_ENFORCE_MAX_QTY", false)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

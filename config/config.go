package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort               string `mapstructure:"APP_PORT"`
	Env                   string `mapstructure:"ENV"`
	LogLevel              string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin     int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	RequestTimeoutSeconds int    `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	CORSAllowedOrigins    string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	JWTSecret             string `mapstructure:"JWT_SECRET"`

	// Storage.
	StoreBackend string `mapstructure:"STORE_BACKEND"` // "mongo" or "memory"
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Calendar days are cut in this zone.
	Timezone string `mapstructure:"TIMEZONE"`

	// Redis configuration.
	RedisAddr           string `mapstructure:"REDIS_ADDR"`
	RedisPassword       string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB        int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB        int    `mapstructure:"REDIS_QUEUE_DB"`
	TeamCacheTTLSeconds int    `mapstructure:"TEAM_CACHE_TTL_SECONDS"`

	// Notifications.
	NotifyTimeoutSeconds    int    `mapstructure:"NOTIFY_TIMEOUT_SECONDS"`
	NotifyAsync             bool   `mapstructure:"NOTIFY_ASYNC"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Sample image storage.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 15)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("STORE_BACKEND", "mongo")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "homecollect")
	viper.SetDefault("TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("TEAM_CACHE_TTL_SECONDS", 300)
	viper.SetDefault("NOTIFY_TIMEOUT_SECONDS", 10)
	viper.SetDefault("NOTIFY_ASYNC", true)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location resolves TIMEZONE, falling back to UTC for unknown zones.
func Location() *time.Location {
	loc, err := time.LoadLocation(AppConfig.Timezone)
	if err != nil {
		log.Printf("unknown TIMEZONE %q, using UTC", AppConfig.Timezone)
		return time.UTC
	}
	return loc
}

func AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(AppConfig.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func TeamCacheTTL() time.Duration {
	return time.Duration(AppConfig.TeamCacheTTLSeconds) * time.Second
}

func NotifyTimeout() time.Duration {
	return time.Duration(AppConfig.NotifyTimeoutSeconds) * time.Second
}

package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Marketplace backend.
	BackendBaseURL    string `mapstructure:"BACKEND_BASE_URL"`
	BackendTimeoutSec int    `mapstructure:"BACKEND_TIMEOUT_SEC"`
	DemoMode          bool   `mapstructure:"DEMO_MODE"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisGeoDB     int    `mapstructure:"REDIS_GEO_DB"`

	// Geolocation.
	GeoTimeoutSec    int    `mapstructure:"GEO_TIMEOUT_SEC"`
	NominatimBaseURL string `mapstructure:"NOMINATIM_BASE_URL"`
	BDCBaseURL       string `mapstructure:"BDC_BASE_URL"`

	// Radius expansion.
	SearchRadiusKm    float64 `mapstructure:"SEARCH_RADIUS_KM"`
	RadiusStepKm      float64 `mapstructure:"RADIUS_STEP_KM"`
	RadiusCeilingKm   float64 `mapstructure:"RADIUS_CEILING_KM"`
	SparseThreshold   int     `mapstructure:"SPARSE_THRESHOLD"`
	SparseMaxRadiusKm float64 `mapstructure:"SPARSE_MAX_RADIUS_KM"`
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

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:3000/api")
	viper.SetDefault("BACKEND_TIMEOUT_SEC", 15)
	viper.SetDefault("DEMO_MODE", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("REDIS_GEO_DB", 2)
	viper.SetDefault("GEO_TIMEOUT_SEC", 10)
	viper.SetDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org")
	viper.SetDefault("BDC_BASE_URL", "https://api.bigdatacloud.net")
	viper.SetDefault("SEARCH_RADIUS_KM", 5.0)
	viper.SetDefault("RADIUS_STEP_KM", 5.0)
	viper.SetDefault("RADIUS_CEILING_KM", 25.0)
	viper.SetDefault("SPARSE_THRESHOLD", 1)
	viper.SetDefault("SPARSE_MAX_RADIUS_KM", 10.0)

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

package config

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Booking BookingConfig
}

type AppConfig struct {
	Port              string
	Env               string
	LogLevel          string
	Location          *time.Location
	CORSAllowedOrigin string
}

type DBConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MigrateOnStart bool
	MigrationsPath string
}

// URL returns the connection string in the form golang-migrate expects
func (c DBConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// DSN returns the keyword/value connection string used by the gorm postgres driver
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig describes how bearer tokens issued by the identity provider are verified
type JWTConfig struct {
	Secret string
	Issuer string
}

type BookingConfig struct {
	UniqueSlot         bool
	CancellationWindow time.Duration
	SlotLockTTL        time.Duration
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_TIMEZONE", "UTC")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MIGRATE_ON_START", true)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("REDIS_ENABLED", true)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("BOOKING_UNIQUE_SLOT", true)
	viper.SetDefault("CANCELLATION_WINDOW", "24h")
	viper.SetDefault("SLOT_LOCK_TTL", "5s")
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments pass plain environment variables
	_ = godotenv.Load()

	setDefaults()
	viper.AutomaticEnv()

	location, err := time.LoadLocation(viper.GetString("APP_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	cancellationWindow, err := time.ParseDuration(viper.GetString("CANCELLATION_WINDOW"))
	if err != nil {
		cancellationWindow = 24 * time.Hour
	}

	slotLockTTL, err := time.ParseDuration(viper.GetString("SLOT_LOCK_TTL"))
	if err != nil {
		slotLockTTL = 5 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port:              viper.GetString("APP_PORT"),
			Env:               viper.GetString("APP_ENV"),
			LogLevel:          viper.GetString("LOG_LEVEL"),
			Location:          location,
			CORSAllowedOrigin: viper.GetString("CORS_ALLOWED_ORIGIN"),
		},
		DB: DBConfig{
			Host:           viper.GetString("DB_HOST"),
			Port:           viper.GetString("DB_PORT"),
			User:           viper.GetString("DB_USER"),
			Password:       viper.GetString("DB_PASSWORD"),
			Name:           viper.GetString("DB_NAME"),
			SSLMode:        viper.GetString("DB_SSLMODE"),
			MigrateOnStart: viper.GetBool("DB_MIGRATE_ON_START"),
			MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
			Issuer: viper.GetString("JWT_ISSUER"),
		},
		Booking: BookingConfig{
			UniqueSlot:         viper.GetBool("BOOKING_UNIQUE_SLOT"),
			CancellationWindow: cancellationWindow,
			SlotLockTTL:        slotLockTTL,
		},
	}

	if config.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return config, nil
}

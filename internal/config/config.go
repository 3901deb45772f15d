package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the connection string for the database.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// KafkaConfig holds the event broker settings.
type KafkaConfig struct {
	Brokers []string
}

// ServiceConfig holds all configuration for the seat service.
type ServiceConfig struct {
	Port             string
	AppEnv           string
	DBConfig         DatabaseConfig
	KafkaConfig      KafkaConfig
	DefaultSeatCount int
	CacheTTL         time.Duration
	CacheSweepEvery  time.Duration
}

// Load reads configuration from environment variables, loading a .env file
// first when one is present.
func Load() (*ServiceConfig, error) {
	_ = godotenv.Load()

	defaultSeats, err := getEnvInt("SEATS_DEFAULT_COUNT", 51)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getEnvDuration("SEATS_CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	sweepEvery, err := getEnvDuration("SEATS_CACHE_SWEEP_INTERVAL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	return &ServiceConfig{
		Port:   ":" + getEnv("SEATS_SERVICE_PORT", "8080"),
		AppEnv: getEnv("APP_ENV", "development"),
		DBConfig: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "seats"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		KafkaConfig: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		},
		DefaultSeatCount: defaultSeats,
		CacheTTL:         cacheTTL,
		CacheSweepEvery:  sweepEvery,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

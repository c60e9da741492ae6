// Package config reads the console's settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// Config holds every setting of the console.
type Config struct {
	Port            string
	StoreBackend    string
	StorePath       string
	MongoURI        string
	MongoDB         string
	MongoCollection string
	JWTSecret       string
	JWTExpiry       time.Duration
	MQTTBroker      string
	MQTTTopic       string
	MQTTClientID    string
	LogLevel        string
	LogFormat       string
	// LoginRateLimit is the number of login attempts allowed per client per
	// minute.
	LoginRateLimit int
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the environment alone.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		StoreBackend:    strings.ToLower(getEnv("STORE_BACKEND", BackendSQLite)),
		StorePath:       getEnv("STORE_PATH", "fleet.db"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "fleet"),
		MongoCollection: getEnv("MONGO_COLLECTION", "localstore"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		MQTTBroker:      os.Getenv("MQTT_BROKER"),
		MQTTTopic:       getEnv("MQTT_TOPIC", "fleet/alerts"),
		MQTTClientID:    getEnv("MQTT_CLIENT_ID", "fleet-console"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
	}

	switch cfg.StoreBackend {
	case BackendSQLite, BackendMongo, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	exp, err := time.ParseDuration(getEnv("JWT_EXPIRY", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY: %w", err)
	}
	cfg.JWTExpiry = exp

	limit, err := strconv.Atoi(getEnv("LOGIN_RATE_LIMIT", "10"))
	if err != nil || limit <= 0 {
		return nil, fmt.Errorf("invalid LOGIN_RATE_LIMIT %q", os.Getenv("LOGIN_RATE_LIMIT"))
	}
	cfg.LoginRateLimit = limit

	return cfg, nil
}

// SetupLogging applies the level and format to the standard logrus logger.
func (c *Config) SetupLogging() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	log.SetLevel(level)
	if c.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

// MQTTEnabled reports whether alerts should be published to a broker.
func (c *Config) MQTTEnabled() bool {
	return c.MQTTBroker != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "STORE_BACKEND", "STORE_PATH", "MONGO_URI", "MONGO_DB", "MONGO_COLLECTION",
		"JWT_SECRET", "JWT_EXPIRY", "MQTT_BROKER", "MQTT_TOPIC", "MQTT_CLIENT_ID",
		"LOG_LEVEL", "LOG_FORMAT", "LOGIN_RATE_LIMIT",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, "fleet.db", cfg.StorePath)
	assert.Equal(t, "fleet", cfg.MongoDB)
	assert.Equal(t, "localstore", cfg.MongoCollection)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "fleet/alerts", cfg.MQTTTopic)
	assert.Equal(t, "fleet-console", cfg.MQTTClientID)
	assert.Equal(t, 10, cfg.LoginRateLimit)
	assert.False(t, cfg.MQTTEnabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "Memory")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("MQTT_BROKER", "tcp://localhost:1883")
	t.Setenv("LOGIN_RATE_LIMIT", "3")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.True(t, cfg.MQTTEnabled())
	assert.Equal(t, 3, cfg.LoginRateLimit)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"STORE_BACKEND", "redis"},
		{"JWT_EXPIRY", "tomorrow"},
		{"LOGIN_RATE_LIMIT", "0"},
		{"LOGIN_RATE_LIMIT", "many"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestSetupLogging(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)
	defer log.SetFormatter(&log.TextFormatter{})

	cfg := &Config{LogLevel: "debug", LogFormat: "json"}
	require.NoError(t, cfg.SetupLogging())
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)

	cfg.LogLevel = "loud"
	assert.Error(t, cfg.SetupLogging())
}

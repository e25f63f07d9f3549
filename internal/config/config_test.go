package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestResolveDatabaseURLPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		override string
		env      string
		want     string
	}{
		{"override wins", "/tmp/isolated.db", "postgres://u:p@db/health", "sqlite:///tmp/isolated.db"},
		{"environment next", "", "postgres://u:p@db/health", "postgres://u:p@db/health"},
		{"default last", "", "", DefaultDatabaseURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDatabaseURL(tt.override, tt.env))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "mysql://u:p@tcp(localhost:3306)/health")
	t.Setenv("APP_PORT", "")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_ECHO", "true")

	cfg := LoadConfig("")
	assert.Equal(t, "mysql://u:p@tcp(localhost:3306)/health", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.True(t, cfg.DBEcho)

	cfg = LoadConfig("/tmp/override.db")
	assert.Equal(t, "sqlite:///tmp/override.db", cfg.DatabaseURL)
}

func TestLoadConfigBadLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")
	assert.Equal(t, logrus.InfoLevel, LoadConfig("").LogLevel)
}

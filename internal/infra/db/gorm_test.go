package db

import (
	"testing"

	"github.com/NasaVasa/haltwatch/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := config.Config{
		DBHost:     "db.internal",
		DBPort:     5432,
		DBUser:     "haltwatch",
		DBPassword: "secret",
		DBName:     "trackers",
		DBSSLMode:  "require",
	}

	assert.Equal(t, "host=db.internal user=haltwatch password=secret dbname=trackers port=5432 sslmode=require TimeZone=UTC", DSN(cfg))
}

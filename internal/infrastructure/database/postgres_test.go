package database

import (
	"testing"

	"telehealth-api/config"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db", Port: "5433", User: "app", Password: "secret",
		Name: "telehealth", SSLMode: "require", TimeZone: "UTC",
	}

	assert.Equal(t,
		"host=db user=app password=secret dbname=telehealth port=5433 sslmode=require TimeZone=UTC",
		DSN(cfg))
}

func TestMigrateDown_RejectsNonPositiveSteps(t *testing.T) {
	err := MigrateDown(nil, 0)
	assert.EqualError(t, err, "migrate down: steps must be positive, got 0")
}

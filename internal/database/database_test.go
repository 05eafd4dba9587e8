package database

import (
	"testing"

	"github.com/fakeguard/fakeguard/internal/config"
	"github.com/fakeguard/fakeguard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, m := range []interface{}{&models.Report{}, &models.Alert{}, &models.PlatformNotification{}, &models.SystemLog{}} {
		assert.True(t, db.Migrator().HasTable(m))
	}
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	err := Connect(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

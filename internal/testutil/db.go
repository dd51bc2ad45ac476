// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"etalase/internal/database"
	"etalase/pkg/config"
	"etalase/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory SQLite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := database.Open(config.DBConfig{Driver: "sqlite", DSN: dsn}, false, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

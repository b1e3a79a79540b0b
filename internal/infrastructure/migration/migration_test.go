package migration

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Each runner call gets its own connection: the sqlite migrate driver owns
// the sql.DB it is handed and closes it with the migrate instance.
func openTestDB(t *testing.T, path string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestRunner_UpAppliesSqliteDialectScripts(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "kursly.db")

	scriptsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)

	runner := NewRunner(scriptsPath, "sqlite")
	require.NoError(t, runner.Up(openTestDB(t, dbPath)))

	version, dirty, err := runner.Version(openTestDB(t, dbPath))
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)

	db := openTestDB(t, dbPath)
	for _, table := range []string{"users", "plans", "subscriptions", "payments", "videos"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestRunner_DownRollsBackSqliteDialectScripts(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "kursly.db")

	scriptsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)

	runner := NewRunner(scriptsPath, "sqlite")
	require.NoError(t, runner.Up(openTestDB(t, dbPath)))
	require.NoError(t, runner.Down(openTestDB(t, dbPath), 1))

	db := openTestDB(t, dbPath)
	assert.False(t, db.Migrator().HasTable("subscriptions"))
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"go_duduolingo/internal/config"
	"go_duduolingo/internal/model"
	"go_duduolingo/internal/repository"
	"go_duduolingo/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// writeConfig は dsn の sqlite を使う config.yaml を一時ディレクトリに作ります
func writeConfig(t *testing.T, driver, dsn string) string {
	t.Helper()
	dir := t.TempDir()
	content := fmt.Sprintf("database:\n  driver: %s\n  url: %s\nlog:\n  level: error\n", driver, dsn)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	return dir
}

func openDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	db, err := repository.NewDB(config.DatabaseConfig{Driver: config.DriverSQLite, URL: dsn}, testutil.DiscardLogger())
	require.NoError(t, err)
	return db
}

func closeDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestRun_Once(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "duduolingo.db")
	db := openDB(t, dsn)
	testutil.SeedUser(t, db, "alice", 100)
	testutil.SeedProgress(t, db, model.KindBrick, "alice", 1, 4)
	testutil.SeedProgress(t, db, model.KindStep, "alice", 1, 9)
	closeDB(t, db)

	code := run([]string{"-config", writeConfig(t, config.DriverSQLite, dsn), "-once"})
	require.Equal(t, 0, code)

	db = openDB(t, dsn)
	defer closeDB(t, db)
	var user model.User
	require.NoError(t, db.First(&user, "username = ?", "alice").Error)
	assert.Equal(t, 4.0, user.TotalScore)
}

func TestRun_ExitCodes(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "duduolingo.db")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "異常系: 不明なフラグ", args: []string{"-unknown"}, want: 2},
		{name: "異常系: 不正なドライバー設定", args: []string{"-config", writeConfig(t, "mysql", dsn), "-once"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, run(tt.args))
		})
	}
}

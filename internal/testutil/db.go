// Package testutil はテスト用のDB準備とデータ投入のヘルパーです
package testutil

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"go_duduolingo/internal/config"
	"go_duduolingo/internal/model"
	"go_duduolingo/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// DiscardLogger はテスト中のログを捨てるロガー
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewSQLiteDB はテストごとに独立したインメモリ sqlite を作成し、スキーマを適用します
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := repository.NewDB(config.DatabaseConfig{Driver: config.DriverSQLite, URL: dsn}, DiscardLogger())
	require.NoError(t, err, "Failed to open in-memory sqlite")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// Brick はテスト用の Brick を組み立てます。words は word, definition, type の順で並べます。
func Brick(groupID int64, language string, level int, image string, words ...string) *model.Brick {
	b := &model.Brick{GroupID: groupID, Language: language, Level: level, GroupNumber: int(groupID), Image: image}
	fillSlots(&b.WordSlots, words)
	return b
}

// Step はテスト用の Step を組み立てます
func Step(groupID int64, language string, day int, image, video string, words ...string) *model.Step {
	s := &model.Step{GroupID: groupID, Language: language, Day: day, Image: image, Video: video}
	fillSlots(&s.WordSlots, words)
	return s
}

func fillSlots(slots *model.WordSlots, words []string) {
	for i := 0; i+2 < len(words); i += 3 {
		slots.SetSlot(i/3+1, words[i], words[i+1], words[i+2])
	}
}

// SeedBricks は Brick をまとめて投入します
func SeedBricks(t *testing.T, db *gorm.DB, bricks ...*model.Brick) {
	t.Helper()
	require.NoError(t, db.Create(bricks).Error, "Failed to seed bricks")
}

// SeedSteps は Step をまとめて投入します
func SeedSteps(t *testing.T, db *gorm.DB, steps ...*model.Step) {
	t.Helper()
	require.NoError(t, db.Create(steps).Error, "Failed to seed steps")
}

// SeedUser はユーザーを直接投入します
func SeedUser(t *testing.T, db *gorm.DB, username string, total float64) *model.User {
	t.Helper()
	user := &model.User{Username: username, TotalScore: total}
	require.NoError(t, db.Create(user).Error, "Failed to seed user")
	return user
}

// SeedProgress は進捗行を直接投入します
func SeedProgress(t *testing.T, db *gorm.DB, kind model.ContentKind, username string, groupID int64, score float64) {
	t.Helper()
	entry := &model.ProgressEntry{Username: username, GroupID: groupID, Score: score, Completed: true}
	require.NoError(t, db.Table(kind.ProgressTable()).Create(entry).Error, "Failed to seed progress")
}

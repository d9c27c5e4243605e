// internal/service/content_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"go_duduolingo/internal/media"
	"go_duduolingo/internal/model"
	"go_duduolingo/internal/repository"
	"go_duduolingo/internal/repository/mocks"
	"go_duduolingo/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestContentService(t *testing.T) (ContentService, *gorm.DB) {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	svc := NewContentService(db,
		repository.NewGormContentRepository(),
		repository.NewGormProgressRepository(),
		media.NewResolver("/data/images", "/data/videos"),
	)
	return svc, db
}

func TestContentService_ListBricks(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestContentService(t)
	testutil.SeedBricks(t, db,
		testutil.Brick(1, "es", 1, `C:\Users\dev\images\perro.png`, "perro", "dog", "Good", "gato", "cat", "Bad"),
		testutil.Brick(2, "en", 2, ""),
	)

	views, err := svc.ListBricks(ctx, nil)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, int64(1), views[0].GroupID)
	assert.Equal(t, []model.WordView{
		{Text: "perro", Definition: "dog", Type: "Good"},
		{Text: "gato", Definition: "cat", Type: "Bad"},
	}, views[0].Words)
	require.NotNil(t, views[0].ImageURL)
	assert.Equal(t, "/data/images/perro.png", *views[0].ImageURL)
	assert.Nil(t, views[1].ImageURL)
	assert.Empty(t, views[1].Words)

	views, err = svc.ListBricks(ctx, strPtr("en"))
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "en", views[0].Language)

	// 空の language は全件
	views, err = svc.ListBricks(ctx, strPtr(""))
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestContentService_ListSteps_ShowVideo(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestContentService(t)
	testutil.SeedSteps(t, db,
		testutil.Step(1, "es", 1, `imgs\day1.png`, `vids\day1.mp4`),
		testutil.Step(2, "es", 2, `imgs\day2.png`, `vids\day2.mp4`),
	)
	testutil.SeedProgress(t, db, model.KindStep, "alice", 1, 5)

	// ユーザー指定なしは全て画像
	views, err := svc.ListSteps(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, views, 2)
	for _, v := range views {
		assert.False(t, v.ShowVideo)
		assert.NotNil(t, v.ImageURL)
		assert.Nil(t, v.Video)
	}

	// 完了済みのステップだけ動画になる
	views, err = svc.ListSteps(ctx, nil, strPtr("alice"))
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.True(t, views[0].ShowVideo)
	assert.Nil(t, views[0].ImageURL)
	require.NotNil(t, views[0].Video)
	assert.Equal(t, "/data/videos/day1.mp4", *views[0].Video)
	assert.False(t, views[1].ShowVideo)
	require.NotNil(t, views[1].ImageURL)
	assert.Equal(t, "/data/images/day2.png", *views[1].ImageURL)

	// 他のユーザーには影響しない
	views, err = svc.ListSteps(ctx, nil, strPtr("bob"))
	require.NoError(t, err)
	assert.False(t, views[0].ShowVideo)
}

func TestContentService_StorageError(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	contentRepo := mocks.NewContentRepository(t)
	svc := NewContentService(db, contentRepo, mocks.NewProgressRepository(t), media.NewResolver("/i", "/v"))

	contentRepo.On("ListBricks", ctx, db, (*string)(nil)).Return(nil, errors.New("no such table: bricks")).Once()
	contentRepo.On("ListSteps", ctx, db, strPtr("es")).Return(nil, errors.New("no such table: steps")).Once()

	_, err := svc.ListBricks(ctx, nil)
	assert.ErrorIs(t, err, model.ErrInternalServer)
	_, err = svc.ListSteps(ctx, strPtr(" es "), nil)
	assert.ErrorIs(t, err, model.ErrInternalServer)
}

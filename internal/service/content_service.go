// internal/service/content_service.go
package service

import (
	"context"
	"strings"

	"go_duduolingo/internal/media"
	"go_duduolingo/internal/middleware"
	"go_duduolingo/internal/model"
	"go_duduolingo/internal/repository"

	"gorm.io/gorm"
)

// ContentService は Brick / Step をフロントエンド向けの形に変換して返します
type ContentService interface {
	ListBricks(ctx context.Context, language *string) ([]model.BrickView, error)
	// ListSteps は username を指定するとそのユーザーの完了状態で show_video を決めます
	ListSteps(ctx context.Context, language *string, username *string) ([]model.StepView, error)
}

type contentService struct {
	db          *gorm.DB
	contentRepo repository.ContentRepository
	progRepo    repository.ProgressRepository
	resolver    *media.Resolver
}

func NewContentService(db *gorm.DB, contentRepo repository.ContentRepository, progRepo repository.ProgressRepository, resolver *media.Resolver) ContentService {
	return &contentService{
		db:          db,
		contentRepo: contentRepo,
		progRepo:    progRepo,
		resolver:    resolver,
	}
}

// optional は空白だけの値を未指定として扱います
func optional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *contentService) ListBricks(ctx context.Context, language *string) ([]model.BrickView, error) {
	logger := middleware.GetLogger(ctx)

	bricks, err := s.contentRepo.ListBricks(ctx, s.db, optional(language))
	if err != nil {
		logger.Error("Failed to list bricks", "error", err)
		return nil, model.NewStorageError("単語グループの取得に失敗しました。", err)
	}

	views := make([]model.BrickView, 0, len(bricks))
	for _, b := range bricks {
		views = append(views, model.BrickView{
			GroupID:     b.GroupID,
			Language:    b.Language,
			Level:       b.Level,
			GroupNumber: b.GroupNumber,
			Words:       b.Words(),
			Scene:       b.Scene,
			ImageURL:    s.resolver.ImageURL(b.Image),
		})
	}
	return views, nil
}

func (s *contentService) ListSteps(ctx context.Context, language *string, username *string) ([]model.StepView, error) {
	logger := middleware.GetLogger(ctx)

	steps, err := s.contentRepo.ListSteps(ctx, s.db, optional(language))
	if err != nil {
		logger.Error("Failed to list steps", "error", err)
		return nil, model.NewStorageError("ステップの取得に失敗しました。", err)
	}

	completed := map[int64]bool{}
	if name := optional(username); name != nil {
		entries, err := s.progRepo.ListByUsername(ctx, s.db, model.KindStep, *name)
		if err != nil {
			logger.Error("Failed to list step progress", "error", err, "username", *name)
			return nil, model.NewStorageError("学習進捗の取得に失敗しました。", err)
		}
		for _, e := range entries {
			completed[e.GroupID] = e.Completed
		}
	}

	views := make([]model.StepView, 0, len(steps))
	for _, st := range steps {
		view := model.StepView{
			GroupID:   st.GroupID,
			Language:  st.Language,
			Day:       st.Day,
			Words:     st.Words(),
			ShowVideo: completed[st.GroupID],
		}
		// 完了済みなら画像の代わりに動画を見せる
		if view.ShowVideo {
			view.Video = s.resolver.VideoURL(st.Video)
		} else {
			view.ImageURL = s.resolver.ImageURL(st.Image)
		}
		views = append(views, view)
	}
	return views, nil
}

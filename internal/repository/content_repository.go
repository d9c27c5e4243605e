//go:generate mockery --name ContentRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"go_duduolingo/internal/middleware"
	"go_duduolingo/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContentRepository は取込済みの Brick / Step を扱います。
// リクエスト処理中は読み取り専用で、Save* は取込コマンドからのみ使われます。
type ContentRepository interface {
	ListBricks(ctx context.Context, db *gorm.DB, language *string) ([]*model.Brick, error)
	ListSteps(ctx context.Context, db *gorm.DB, language *string) ([]*model.Step, error)
	ListGroupIDs(ctx context.Context, db *gorm.DB, kind model.ContentKind, language *string) ([]int64, error)
	GroupExists(ctx context.Context, db *gorm.DB, kind model.ContentKind, groupID int64) (bool, error)
	// MaxGroupID は登録済みの最大 group_id を返します。空なら0
	MaxGroupID(ctx context.Context, db *gorm.DB, kind model.ContentKind) (int64, error)
	SaveBricks(ctx context.Context, db *gorm.DB, bricks []*model.Brick) error
	SaveSteps(ctx context.Context, db *gorm.DB, steps []*model.Step) error
	CountByLanguage(ctx context.Context, db *gorm.DB, kind model.ContentKind) (map[string]int64, error)
}

type gormContentRepository struct{}

func NewGormContentRepository() ContentRepository {
	return &gormContentRepository{}
}

func byLanguage(db *gorm.DB, language *string) *gorm.DB {
	if language != nil {
		return db.Where("language = ?", *language)
	}
	return db
}

func (r *gormContentRepository) ListBricks(ctx context.Context, db *gorm.DB, language *string) ([]*model.Brick, error) {
	logger := middleware.GetLogger(ctx)
	var bricks []*model.Brick

	result := byLanguage(db.WithContext(ctx), language).Order("group_id ASC").Find(&bricks)
	if result.Error != nil {
		logger.Error("Error listing bricks in DB", "error", result.Error)
		return nil, fmt.Errorf("gormContentRepository.ListBricks: %w", result.Error)
	}
	return bricks, nil
}

func (r *gormContentRepository) ListSteps(ctx context.Context, db *gorm.DB, language *string) ([]*model.Step, error) {
	logger := middleware.GetLogger(ctx)
	var steps []*model.Step

	result := byLanguage(db.WithContext(ctx), language).Order("group_id ASC").Find(&steps)
	if result.Error != nil {
		logger.Error("Error listing steps in DB", "error", result.Error)
		return nil, fmt.Errorf("gormContentRepository.ListSteps: %w", result.Error)
	}
	return steps, nil
}

func (r *gormContentRepository) ListGroupIDs(ctx context.Context, db *gorm.DB, kind model.ContentKind, language *string) ([]int64, error) {
	logger := middleware.GetLogger(ctx)
	var ids []int64

	query := byLanguage(db.WithContext(ctx).Table(kind.ContentTable()), language)
	result := query.Order("group_id ASC").Pluck("group_id", &ids)
	if result.Error != nil {
		logger.Error("Error listing group ids in DB", "error", result.Error, "kind", string(kind))
		return nil, fmt.Errorf("gormContentRepository.ListGroupIDs: %w", result.Error)
	}
	return ids, nil
}

func (r *gormContentRepository) GroupExists(ctx context.Context, db *gorm.DB, kind model.ContentKind, groupID int64) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64

	result := db.WithContext(ctx).Table(kind.ContentTable()).Where("group_id = ?", groupID).Count(&count)
	if result.Error != nil {
		logger.Error("Error checking group existence in DB",
			"error", result.Error,
			"kind", string(kind),
			"group_id", groupID,
		)
		return false, fmt.Errorf("gormContentRepository.GroupExists: %w", result.Error)
	}
	return count > 0, nil
}

func (r *gormContentRepository) MaxGroupID(ctx context.Context, db *gorm.DB, kind model.ContentKind) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var maxID int64

	result := db.WithContext(ctx).Table(kind.ContentTable()).Select("COALESCE(MAX(group_id), 0)").Scan(&maxID)
	if result.Error != nil {
		logger.Error("Error reading max group id in DB", "error", result.Error, "kind", string(kind))
		return 0, fmt.Errorf("gormContentRepository.MaxGroupID: %w", result.Error)
	}
	return maxID, nil
}

func (r *gormContentRepository) SaveBricks(ctx context.Context, db *gorm.DB, bricks []*model.Brick) error {
	if len(bricks) == 0 {
		return nil
	}
	logger := middleware.GetLogger(ctx)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "group_id"}},
			UpdateAll: true,
		}).CreateInBatches(bricks, 100).Error
	})
	if err != nil {
		logger.Error("Error saving bricks in DB", "error", err, "count", len(bricks))
		return fmt.Errorf("gormContentRepository.SaveBricks: %w", err)
	}
	return nil
}

func (r *gormContentRepository) SaveSteps(ctx context.Context, db *gorm.DB, steps []*model.Step) error {
	if len(steps) == 0 {
		return nil
	}
	logger := middleware.GetLogger(ctx)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "group_id"}},
			UpdateAll: true,
		}).CreateInBatches(steps, 100).Error
	})
	if err != nil {
		logger.Error("Error saving steps in DB", "error", err, "count", len(steps))
		return fmt.Errorf("gormContentRepository.SaveSteps: %w", err)
	}
	return nil
}

type languageCount struct {
	Language string
	Count    int64
}

func (r *gormContentRepository) CountByLanguage(ctx context.Context, db *gorm.DB, kind model.ContentKind) (map[string]int64, error) {
	logger := middleware.GetLogger(ctx)
	var rows []languageCount

	result := db.WithContext(ctx).Table(kind.ContentTable()).
		Select("language, COUNT(*) AS count").
		Group("language").
		Order("language ASC").
		Scan(&rows)
	if result.Error != nil {
		logger.Error("Error counting content by language in DB", "error", result.Error, "kind", string(kind))
		return nil, fmt.Errorf("gormContentRepository.CountByLanguage: %w", result.Error)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Language] = row.Count
	}
	return counts, nil
}

//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"
	"time"

	"go_duduolingo/internal/middleware"
	"go_duduolingo/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository は user_bricks / user_steps を種別で切り替えて扱います
type ProgressRepository interface {
	// Upsert は (username, group_id) の行を作成、または score/completed を上書きします
	Upsert(ctx context.Context, tx *gorm.DB, kind model.ContentKind, entry *model.ProgressEntry) error
	ListByUsername(ctx context.Context, db *gorm.DB, kind model.ContentKind, username string) ([]*model.ProgressEntry, error)
	// ResetScores は既存行の score を0にし completed を外します。language が nil なら全行が対象
	ResetScores(ctx context.Context, tx *gorm.DB, kind model.ContentKind, username string, language *string) (int64, error)
	// SumScores は kind の進捗スコアの合計を返します
	SumScores(ctx context.Context, db *gorm.DB, kind model.ContentKind, username string) (float64, error)
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) Upsert(ctx context.Context, tx *gorm.DB, kind model.ContentKind, entry *model.ProgressEntry) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Table(kind.ProgressTable()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}, {Name: "group_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "completed", "updated_at"}),
		}).
		Create(entry)
	if result.Error != nil {
		logger.Error("Error upserting progress in DB",
			"error", result.Error,
			"kind", string(kind),
			"username", entry.Username,
			"group_id", entry.GroupID,
		)
		return fmt.Errorf("gormProgressRepository.Upsert: %w", result.Error)
	}
	return nil
}

func (r *gormProgressRepository) ListByUsername(ctx context.Context, db *gorm.DB, kind model.ContentKind, username string) ([]*model.ProgressEntry, error) {
	logger := middleware.GetLogger(ctx)
	var entries []*model.ProgressEntry

	result := db.WithContext(ctx).Table(kind.ProgressTable()).
		Where("username = ?", username).
		Order("group_id ASC").
		Find(&entries)
	if result.Error != nil {
		logger.Error("Error listing progress by username in DB",
			"error", result.Error,
			"kind", string(kind),
			"username", username,
		)
		return nil, fmt.Errorf("gormProgressRepository.ListByUsername: %w", result.Error)
	}
	return entries, nil
}

func (r *gormProgressRepository) ResetScores(ctx context.Context, tx *gorm.DB, kind model.ContentKind, username string, language *string) (int64, error) {
	logger := middleware.GetLogger(ctx)

	query := tx.WithContext(ctx).Table(kind.ProgressTable()).Where("username = ?", username)
	if language != nil {
		groupIDs := tx.Session(&gorm.Session{NewDB: true}).
			Table(kind.ContentTable()).
			Select("group_id").
			Where("language = ?", *language)
		query = query.Where("group_id IN (?)", groupIDs)
	}

	result := query.Updates(map[string]interface{}{
		"score":      0,
		"completed":  false,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		logger.Error("Error resetting progress in DB",
			"error", result.Error,
			"kind", string(kind),
			"username", username,
		)
		return 0, fmt.Errorf("gormProgressRepository.ResetScores: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormProgressRepository) SumScores(ctx context.Context, db *gorm.DB, kind model.ContentKind, username string) (float64, error) {
	logger := middleware.GetLogger(ctx)

	var total float64
	result := db.WithContext(ctx).Table(kind.ProgressTable()).
		Select("COALESCE(SUM(score), 0)").
		Where("username = ?", username).
		Scan(&total)
	if result.Error != nil {
		logger.Error("Error summing progress scores in DB",
			"error", result.Error,
			"kind", string(kind),
			"username", username,
		)
		return 0, fmt.Errorf("gormProgressRepository.SumScores: %w", result.Error)
	}
	return total, nil
}

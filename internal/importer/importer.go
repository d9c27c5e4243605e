package importer

import (
	"context"
	"fmt"
	"sort"

	"go_duduolingo/internal/middleware"
	"go_duduolingo/internal/model"
	"go_duduolingo/internal/repository"

	"gorm.io/gorm"
)

// Importer はファイルを読み込み、コンテンツテーブルに upsert します。
// group_id を持つ行は同じ番号の行を上書きするので、何度実行しても結果は同じです。
// group_id のない行は常に新しい番号で追加されます。
type Importer struct {
	db   *gorm.DB
	repo repository.ContentRepository
}

func New(db *gorm.DB, repo repository.ContentRepository) *Importer {
	return &Importer{db: db, repo: repo}
}

// Import は path のファイルを kind のテーブルに取り込みます
func (im *Importer) Import(ctx context.Context, kind model.ContentKind, path, sheet string) (*Result, error) {
	logger := middleware.GetLogger(ctx).With("kind", string(kind), "file", path)

	records, err := ReadRecords(path, sheet)
	if err != nil {
		return nil, err
	}

	if !kind.Valid() {
		return nil, fmt.Errorf("unknown content kind %q: %w", kind, model.ErrInvalidInput)
	}

	// 採番は登録済みの最大値の続きから。保存と同じ tx で行う
	var result *Result
	err = im.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		storedMax, err := im.repo.MaxGroupID(ctx, tx, kind)
		if err != nil {
			return fmt.Errorf("failed to read max group id: %w", err)
		}
		if kind == model.KindStep {
			var steps []*model.Step
			steps, result = ParseSteps(records, storedMax)
			if err := im.repo.SaveSteps(ctx, tx, steps); err != nil {
				return fmt.Errorf("failed to save steps: %w", err)
			}
			return nil
		}
		var bricks []*model.Brick
		bricks, result = ParseBricks(records, storedMax)
		if err := im.repo.SaveBricks(ctx, tx, bricks); err != nil {
			return fmt.Errorf("failed to save bricks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, w := range result.Warnings {
		logger.Debug("Row skipped", "reason", w)
	}
	logger.Info("Content imported", "rows", result.Rows, "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

// LanguageCount は言語ごとの件数です
type LanguageCount struct {
	Language string
	Count    int64
}

// Summary は取り込み後の言語別件数を言語名順で返します
func (im *Importer) Summary(ctx context.Context, kind model.ContentKind) ([]LanguageCount, error) {
	counts, err := im.repo.CountByLanguage(ctx, im.db, kind)
	if err != nil {
		return nil, err
	}
	summary := make([]LanguageCount, 0, len(counts))
	for lang, n := range counts {
		summary = append(summary, LanguageCount{Language: lang, Count: n})
	}
	sort.Slice(summary, func(i, j int) bool { return summary[i].Language < summary[j].Language })
	return summary, nil
}

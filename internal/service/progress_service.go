package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go_duduolingo/internal/middleware"
	"go_duduolingo/internal/model"
	"go_duduolingo/internal/repository"

	"gorm.io/gorm"
)

// ProgressService はユーザーごとのスコア台帳です。Brick と Step は kind で切り替えます。
type ProgressService interface {
	GetUserProgress(ctx context.Context, kind model.ContentKind, username string) (*model.UserProgress, error)
	UpsertScore(ctx context.Context, kind model.ContentKind, username string, groupID *int64, rawScore json.RawMessage) (*model.ScoreResult, error)
	ResetProgress(ctx context.Context, kind model.ContentKind, username string, language *string) error
	// RecalculateTotals は全ユーザーの total_score を Brick 進捗から再計算し、更新した人数を返します
	RecalculateTotals(ctx context.Context) (int, error)
}

type progressService struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	progRepo    repository.ProgressRepository
	contentRepo repository.ContentRepository
}

func NewProgressService(db *gorm.DB, userRepo repository.UserRepository, progRepo repository.ProgressRepository, contentRepo repository.ContentRepository) ProgressService {
	return &progressService{
		db:          db,
		userRepo:    userRepo,
		progRepo:    progRepo,
		contentRepo: contentRepo,
	}
}

func validateKind(kind model.ContentKind) error {
	if !kind.Valid() {
		return model.NewAppError(model.CodeValidation, "不明なコンテンツ種別です。", "kind", model.ErrInvalidInput)
	}
	return nil
}

// GetUserProgress は現在のコンテンツ全グループ分のスコアを返します。
// 読み取りのみで total_score は保存しません。
func (s *progressService) GetUserProgress(ctx context.Context, kind model.ContentKind, username string) (*model.UserProgress, error) {
	if err := validateKind(kind); err != nil {
		return nil, err
	}
	name, err := normalizeUsername(username)
	if err != nil {
		return nil, err
	}
	logger := middleware.GetLogger(ctx).With("username", name, "kind", string(kind))

	groupIDs, err := s.contentRepo.ListGroupIDs(ctx, s.db, kind, nil)
	if err != nil {
		logger.Error("Failed to list content groups", "error", err)
		return nil, model.NewStorageError("コンテンツの取得に失敗しました。", err)
	}

	entries, err := s.progRepo.ListByUsername(ctx, s.db, kind, name)
	if err != nil {
		logger.Error("Failed to list user progress", "error", err)
		return nil, model.NewStorageError("学習進捗の取得に失敗しました。", err)
	}
	byGroup := make(map[int64]*model.ProgressEntry, len(entries))
	for _, e := range entries {
		byGroup[e.GroupID] = e
	}

	groups := make([]model.GroupProgress, 0, len(groupIDs))
	for _, id := range groupIDs {
		gp := model.GroupProgress{GroupID: id, State: model.Absent()}
		if e, ok := byGroup[id]; ok {
			gp.State = model.Recorded(e.Score)
			gp.Completed = e.Completed
		}
		groups = append(groups, gp)
	}

	// 返す合計はこの種別の行の和。Brick では users.total_score と同じ値になる
	total, err := s.progRepo.SumScores(ctx, s.db, kind, name)
	if err != nil {
		logger.Error("Failed to sum user scores", "error", err)
		return nil, model.NewStorageError("合計スコアの計算に失敗しました。", err)
	}

	logger.Debug("Retrieved user progress", "groups", len(groups), "recorded", len(entries))
	return &model.UserProgress{
		Username:   name,
		Kind:       kind,
		Groups:     groups,
		TotalScore: total,
	}, nil
}

func (s *progressService) UpsertScore(ctx context.Context, kind model.ContentKind, username string, groupID *int64, rawScore json.RawMessage) (*model.ScoreResult, error) {
	if err := validateKind(kind); err != nil {
		return nil, err
	}
	name, err := normalizeUsername(username)
	if err != nil {
		return nil, err
	}
	if groupID == nil {
		return nil, model.NewAppError(model.CodeValidation, "グループIDは必須項目です。", "group_id", model.ErrInvalidInput)
	}
	score := model.CoerceScore(rawScore)
	logger := middleware.GetLogger(ctx).With("username", name, "kind", string(kind), "group_id", *groupID)

	var result *model.ScoreResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.contentRepo.GroupExists(ctx, tx, kind, *groupID)
		if err != nil {
			logger.Error("Failed to check content group", "error", err)
			return model.NewStorageError("コンテンツの確認に失敗しました。", err)
		}
		if !exists {
			logger.Warn("Score submitted for unknown group")
			return model.NewAppError(model.CodeNotFound, "指定されたグループが見つかりません。", "group_id", model.ErrNotFound)
		}

		if err := s.userRepo.EnsureExists(ctx, tx, name); err != nil {
			logger.Error("Failed to ensure user exists", "error", err)
			return model.NewStorageError("ユーザーの登録に失敗しました。", err)
		}
		// 同一ユーザーの合計再計算を直列化する
		if _, err := s.userRepo.LockForUpdate(ctx, tx, name); err != nil {
			logger.Error("Failed to lock user row", "error", err)
			return model.NewStorageError("ユーザーの取得に失敗しました。", err)
		}

		entry := &model.ProgressEntry{Username: name, GroupID: *groupID, Score: score, Completed: true}
		if err := s.progRepo.Upsert(ctx, tx, kind, entry); err != nil {
			logger.Error("Failed to upsert progress", "error", err)
			return model.NewStorageError("スコアの保存に失敗しました。", err)
		}

		total, err := s.kindTotal(ctx, tx, kind, name)
		if err != nil {
			return err
		}
		result = &model.ScoreResult{Score: score, TotalScore: total}
		return nil
	})
	if err != nil {
		return nil, asStorageError(err, "スコアの保存に失敗しました。")
	}

	logger.Info("Score recorded", "score", result.Score, "total_score", result.TotalScore)
	return result, nil
}

// ResetProgress は既存の進捗行のスコアを0に戻します (行の作成・削除はしない)。
// language を指定した場合はその言語のグループだけが対象です。
func (s *progressService) ResetProgress(ctx context.Context, kind model.ContentKind, username string, language *string) error {
	if err := validateKind(kind); err != nil {
		return err
	}
	name, err := normalizeUsername(username)
	if err != nil {
		return err
	}
	if language != nil {
		trimmed := strings.TrimSpace(*language)
		if trimmed == "" {
			language = nil
		} else {
			language = &trimmed
		}
	}
	logger := middleware.GetLogger(ctx).With("username", name, "kind", string(kind))

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.userRepo.LockForUpdate(ctx, tx, name)
		userExists := err == nil
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			logger.Error("Failed to lock user row", "error", err)
			return model.NewStorageError("ユーザーの取得に失敗しました。", err)
		}

		affected, err := s.progRepo.ResetScores(ctx, tx, kind, name, language)
		if err != nil {
			logger.Error("Failed to reset progress", "error", err)
			return model.NewStorageError("学習進捗のリセットに失敗しました。", err)
		}
		logger.Info("Progress reset", "rows", affected, "language_scoped", language != nil)

		if !userExists || !kind.FeedsTotalScore() {
			return nil
		}
		_, err = s.recomputeTotal(ctx, tx, name)
		return err
	})
	if err != nil {
		return asStorageError(err, "学習進捗のリセットに失敗しました。")
	}
	return nil
}

func (s *progressService) RecalculateTotals(ctx context.Context) (int, error) {
	logger := middleware.GetLogger(ctx)

	usernames, err := s.userRepo.ListUsernames(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list users for recalculation", "error", err)
		return 0, model.NewStorageError("ユーザー一覧の取得に失敗しました。", err)
	}

	updated := 0
	var errs []error
	for _, name := range usernames {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if _, err := s.userRepo.LockForUpdate(ctx, tx, name); err != nil {
				return err
			}
			_, err := s.recomputeTotal(ctx, tx, name)
			return err
		})
		if err != nil {
			logger.Error("Failed to recalculate total score", "username", name, "error", err)
			errs = append(errs, err)
			continue
		}
		updated++
	}

	logger.Info("Total scores recalculated", "users", len(usernames), "updated", updated, "failed", len(errs))
	if len(errs) > 0 {
		return updated, model.NewStorageError("合計スコアの再計算に失敗したユーザーがいます。", errors.Join(errs...))
	}
	return updated, nil
}

// kindTotal は kind の合計を返します。total_score に集計される種別なら users にも書き戻します
func (s *progressService) kindTotal(ctx context.Context, tx *gorm.DB, kind model.ContentKind, username string) (float64, error) {
	if kind.FeedsTotalScore() {
		return s.recomputeTotal(ctx, tx, username)
	}
	total, err := s.progRepo.SumScores(ctx, tx, kind, username)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to sum user scores", "username", username, "kind", string(kind), "error", err)
		return 0, model.NewStorageError("合計スコアの計算に失敗しました。", err)
	}
	return total, nil
}

// recomputeTotal は Brick 進捗の合計を users.total_score に書き戻します。tx 内で呼び出すこと
func (s *progressService) recomputeTotal(ctx context.Context, tx *gorm.DB, username string) (float64, error) {
	logger := middleware.GetLogger(ctx).With("username", username)

	total, err := s.progRepo.SumScores(ctx, tx, model.LeaderboardKind, username)
	if err != nil {
		logger.Error("Failed to sum user scores", "error", err)
		return 0, model.NewStorageError("合計スコアの計算に失敗しました。", err)
	}
	if err := s.userRepo.UpdateTotalScore(ctx, tx, username, total); err != nil {
		logger.Error("Failed to persist total score", "error", err, "total_score", total)
		return 0, model.NewStorageError("合計スコアの保存に失敗しました。", err)
	}
	return total, nil
}

// asStorageError は AppError 以外 (コミット失敗など) を StorageError に包みます
func asStorageError(err error, message string) error {
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return model.NewStorageError(message, err)
}

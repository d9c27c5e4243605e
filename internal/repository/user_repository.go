//go:generate mockery --name UserRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_duduolingo/internal/middleware"
	"go_duduolingo/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *model.User) error
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*model.User, error)
	// EnsureExists はユーザーが無ければ total_score=0 で作成します (既存なら何もしない)
	EnsureExists(ctx context.Context, db *gorm.DB, username string) error
	// LockForUpdate はトランザクション内でユーザー行をロックして取得します (postgres のみ FOR UPDATE)
	LockForUpdate(ctx context.Context, tx *gorm.DB, username string) (*model.User, error)
	UpdateTotalScore(ctx context.Context, db *gorm.DB, username string, total float64) error
	ListTop(ctx context.Context, db *gorm.DB, limit int) ([]*model.User, error)
	ListUsernames(ctx context.Context, db *gorm.DB) ([]string, error)
}

type gormUserRepository struct{}

func NewGormUserRepository() UserRepository {
	return &gormUserRepository{}
}

func (r *gormUserRepository) Create(ctx context.Context, db *gorm.DB, user *model.User) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(user)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			logger.Warn("Duplicate key error on create user",
				"error", result.Error,
				"username", user.Username,
			)
			return model.ErrConflict
		}
		logger.Error("Error creating user in DB",
			"error", result.Error,
			"username", user.Username,
		)
		return fmt.Errorf("gormUserRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormUserRepository) FindByUsername(ctx context.Context, db *gorm.DB, username string) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User

	result := db.WithContext(ctx).Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			logger.Debug("User not found by username", "username", username)
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user by username in DB",
			"error", result.Error,
			"username", username,
		)
		return nil, fmt.Errorf("gormUserRepository.FindByUsername: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) EnsureExists(ctx context.Context, db *gorm.DB, username string) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "username"}}, DoNothing: true}).
		Create(&model.User{Username: username})
	if result.Error != nil {
		logger.Error("Error ensuring user exists in DB",
			"error", result.Error,
			"username", username,
		)
		return fmt.Errorf("gormUserRepository.EnsureExists: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		logger.Info("User registered implicitly", "username", username)
	}
	return nil
}

func (r *gormUserRepository) LockForUpdate(ctx context.Context, tx *gorm.DB, username string) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User

	query := tx.WithContext(ctx)
	if isPostgres(tx) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	result := query.Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error locking user row in DB",
			"error", result.Error,
			"username", username,
		)
		return nil, fmt.Errorf("gormUserRepository.LockForUpdate: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) UpdateTotalScore(ctx context.Context, db *gorm.DB, username string, total float64) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", username).
		Update("total_score", total)
	if result.Error != nil {
		logger.Error("Error updating total score in DB",
			"error", result.Error,
			"username", username,
			"total_score", total,
		)
		return fmt.Errorf("gormUserRepository.UpdateTotalScore: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormUserRepository) ListTop(ctx context.Context, db *gorm.DB, limit int) ([]*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var users []*model.User

	result := db.WithContext(ctx).
		Order("total_score DESC").
		Order("created_at ASC").
		Order("username ASC").
		Limit(limit).
		Find(&users)
	if result.Error != nil {
		logger.Error("Error listing top users in DB", "error", result.Error, "limit", limit)
		return nil, fmt.Errorf("gormUserRepository.ListTop: %w", result.Error)
	}
	return users, nil
}

func (r *gormUserRepository) ListUsernames(ctx context.Context, db *gorm.DB) ([]string, error) {
	logger := middleware.GetLogger(ctx)
	var usernames []string

	result := db.WithContext(ctx).Model(&model.User{}).Order("username ASC").Pluck("username", &usernames)
	if result.Error != nil {
		logger.Error("Error listing usernames in DB", "error", result.Error)
		return nil, fmt.Errorf("gormUserRepository.ListUsernames: %w", result.Error)
	}
	return usernames, nil
}

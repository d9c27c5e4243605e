// internal/service/user_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"go_duduolingo/internal/middleware"
	"go_duduolingo/internal/model"
	"go_duduolingo/internal/repository"

	"gorm.io/gorm"
)

type UserService interface {
	// Login はユーザー名だけでログインします。未登録なら作成して "new" を返します
	Login(ctx context.Context, username string) (*model.LoginResponse, error)
}

type userService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
}

func NewUserService(db *gorm.DB, userRepo repository.UserRepository) UserService {
	return &userService{db: db, userRepo: userRepo}
}

// normalizeUsername は前後の空白を除去し、空ならバリデーションエラーを返します
func normalizeUsername(username string) (string, error) {
	name := strings.TrimSpace(username)
	if name == "" {
		return "", model.NewAppError(model.CodeValidation, "ユーザー名は必須項目です。", "username", model.ErrInvalidInput)
	}
	return name, nil
}

func (s *userService) Login(ctx context.Context, username string) (*model.LoginResponse, error) {
	name, err := normalizeUsername(username)
	if err != nil {
		return nil, err
	}
	logger := middleware.GetLogger(ctx).With("username", name)

	_, err = s.userRepo.FindByUsername(ctx, s.db, name)
	if err == nil {
		logger.Info("Existing user logged in")
		return &model.LoginResponse{Status: model.LoginStatusExisting, Username: name}, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		logger.Error("Failed to look up user", "error", err)
		return nil, model.NewStorageError("ユーザーの取得に失敗しました。", err)
	}

	if err := s.userRepo.Create(ctx, s.db, &model.User{Username: name}); err != nil {
		// 同時ログインで先に作成された場合は既存ユーザー扱い
		if errors.Is(err, model.ErrConflict) {
			logger.Info("User created concurrently, treating as existing")
			return &model.LoginResponse{Status: model.LoginStatusExisting, Username: name}, nil
		}
		logger.Error("Failed to create user", "error", err)
		return nil, model.NewStorageError("ユーザーの作成に失敗しました。", err)
	}

	logger.Info("New user registered")
	return &model.LoginResponse{Status: model.LoginStatusNew, Username: name}, nil
}

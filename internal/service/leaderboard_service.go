package service

import (
	"context"

	"go_duduolingo/internal/config"
	"go_duduolingo/internal/middleware"
	"go_duduolingo/internal/model"
	"go_duduolingo/internal/repository"

	"gorm.io/gorm"
)

type LeaderboardService interface {
	// Top は total_score の高い順に最大 n 人を返します。n <= 0 は既定値
	Top(ctx context.Context, n int) ([]model.LeaderboardEntry, error)
}

type leaderboardService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	cfg      config.AppConfig
}

func NewLeaderboardService(db *gorm.DB, userRepo repository.UserRepository, cfg config.AppConfig) LeaderboardService {
	return &leaderboardService{db: db, userRepo: userRepo, cfg: cfg}
}

func (s *leaderboardService) limit(n int) int {
	if n <= 0 {
		n = s.cfg.LeaderboardLimit
	}
	if n <= 0 {
		n = config.DefaultLeaderboardLimit
	}
	if s.cfg.LeaderboardMax > 0 && n > s.cfg.LeaderboardMax {
		n = s.cfg.LeaderboardMax
	}
	return n
}

func (s *leaderboardService) Top(ctx context.Context, n int) ([]model.LeaderboardEntry, error) {
	logger := middleware.GetLogger(ctx)
	limit := s.limit(n)

	users, err := s.userRepo.ListTop(ctx, s.db, limit)
	if err != nil {
		logger.Error("Failed to list leaderboard", "error", err, "limit", limit)
		return nil, model.NewStorageError("ランキングの取得に失敗しました。", err)
	}

	entries := make([]model.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, model.LeaderboardEntry{Username: u.Username, TotalScore: u.TotalScore})
	}
	return entries, nil
}

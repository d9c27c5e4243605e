package model

import (
	"time"
)

// ログイン時のステータス
const (
	LoginStatusNew      = "new"
	LoginStatusExisting = "existing"
)

// User はユーザー名だけで識別される学習者です。
// TotalScore は Brick 進捗スコアの合計をキャッシュしたもので、Brick の書き込み時に再計算されます。
type User struct {
	Username   string    `gorm:"primaryKey;type:varchar(255)" json:"username"`
	TotalScore float64   `gorm:"not null;default:0;index" json:"total_score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// LoginRequest はログインAPIのリクエストボディ
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=255"`
}

// LoginResponse はログインAPIのレスポンス
type LoginResponse struct {
	Status   string `json:"status"`
	Username string `json:"username"`
}

// LeaderboardEntry はランキングの1行
type LeaderboardEntry struct {
	Username   string  `json:"username"`
	TotalScore float64 `json:"total_score"`
}

// LeaderboardResponse は GET /leaderboard のレスポンス
type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

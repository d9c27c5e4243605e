// internal/model/progress.go
package model

import (
	"time"
)

// ProgressEntry はユーザーとコンテンツグループごとのスコアです。
// (username, group_id) の複合主キーで、1ユーザー1グループにつき最大1行。
// Brick 用は user_bricks、Step 用は user_steps テーブルに保存されます。
type ProgressEntry struct {
	Username  string    `gorm:"primaryKey;type:varchar(255)"`
	GroupID   int64     `gorm:"column:group_id;primaryKey;autoIncrement:false"`
	Score     float64   `gorm:"not null"`
	Completed bool      `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScoreState は進捗の有無を区別したスコアです。
// 未記録 (Absent) と 0点 は内部では別物として扱い、APIでは両方 0 になります。
type ScoreState struct {
	Score    float64
	Recorded bool
}

// Recorded は記録済みのスコアを返します
func Recorded(score float64) ScoreState {
	return ScoreState{Score: score, Recorded: true}
}

// Absent は未記録を表します
func Absent() ScoreState {
	return ScoreState{}
}

// Value はAPI境界での値 (未記録は0)
func (s ScoreState) Value() float64 {
	if !s.Recorded {
		return 0
	}
	return s.Score
}

// GroupProgress は1グループ分の進捗
type GroupProgress struct {
	GroupID   int64
	State     ScoreState
	Completed bool
}

// UserProgress は GetUserProgress の結果
type UserProgress struct {
	Username   string
	Kind       ContentKind
	Groups     []GroupProgress
	TotalScore float64
}

// ScoreResult は UpsertScore の結果
type ScoreResult struct {
	Score      float64
	TotalScore float64
}

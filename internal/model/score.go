// internal/model/score.go
package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// UpsertScoreRequest は POST /user_brick, POST /user_step のリクエストDTO
type UpsertScoreRequest struct {
	Username string          `json:"username" validate:"required,max=255"`
	GroupID  *int64          `json:"group_id" validate:"required"`
	Score    json.RawMessage `json:"score"` // 数値以外も受け付ける (CoerceScore 参照)
}

// UpsertScoreResponse はスコア更新のレスポンスDTO
type UpsertScoreResponse struct {
	Success    bool    `json:"success"`
	Score      float64 `json:"score"`
	TotalScore float64 `json:"total_score"`
}

// ResetProgressRequest は POST /user_bricks/reset, POST /user_steps/reset のリクエストDTO
type ResetProgressRequest struct {
	Username string  `json:"username" validate:"required,max=255"`
	Language *string `json:"language"`
}

// SuccessResponse は {success: true} だけを返すレスポンス
type SuccessResponse struct {
	Success bool `json:"success"`
}

// GroupScore はユーザー進捗一覧の1要素
type GroupScore struct {
	GroupID int64   `json:"group_id"`
	Score   float64 `json:"score"`
}

// BrickProgressResponse は GET /user_bricks/{username} のレスポンス
type BrickProgressResponse struct {
	Username   string       `json:"username"`
	Bricks     []GroupScore `json:"bricks"`
	TotalScore float64      `json:"total_score"`
}

// StepProgressResponse は GET /user_steps/{username} のレスポンス
type StepProgressResponse struct {
	Username   string       `json:"username"`
	Steps      []GroupScore `json:"steps"`
	TotalScore float64      `json:"total_score"`
}

// CoerceScore はリクエストの score を数値に変換します。
// 数値として解釈できない値はエラーにせず 0 として扱います (意図的な寛容さ)。
//   - JSON number        -> その値
//   - 数値文字列 ("5.5") -> パースした値
//   - true / false       -> 1 / 0
//   - 未指定, null, その他 -> 0
func CoerceScore(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return 0
	}
}

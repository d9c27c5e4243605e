// internal/model/content.go
package model

import (
	"fmt"
	"strings"
)

// ContentKind はコンテンツ(Brick/Step)の種別です。
// 種別ごとにコンテンツテーブルと進捗テーブルが分かれています。
type ContentKind string

const (
	KindBrick ContentKind = "brick"
	KindStep  ContentKind = "step"
)

// AllKinds は全種別
var AllKinds = []ContentKind{KindBrick, KindStep}

// LeaderboardKind は users.total_score に集計される種別です。
// Step のスコアは種別ごとの合計としてだけ返し、total_score には含めません。
const LeaderboardKind = KindBrick

// FeedsTotalScore はこの種別の書き込みで total_score を再計算するかを返します
func (k ContentKind) FeedsTotalScore() bool {
	return k == LeaderboardKind
}

func (k ContentKind) Valid() bool {
	return k == KindBrick || k == KindStep
}

// ContentTable はコンテンツテーブル名を返します
func (k ContentKind) ContentTable() string {
	if k == KindStep {
		return "steps"
	}
	return "bricks"
}

// ProgressTable は進捗テーブル名を返します
func (k ContentKind) ProgressTable() string {
	if k == KindStep {
		return "user_steps"
	}
	return "user_bricks"
}

// ParseContentKind は CLI 引数などから種別を解釈します
func ParseContentKind(s string) (ContentKind, error) {
	k := ContentKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown content kind %q: %w", s, ErrInvalidInput)
	}
	return k, nil
}

// MaxWordSlots は1グループあたりの単語スロット数
const MaxWordSlots = 8

// WordSlots は CSV 由来の固定長スロット (word1..word8)
type WordSlots struct {
	Word1       string `gorm:"column:word1"`
	Definition1 string `gorm:"column:definition1"`
	Type1       string `gorm:"column:type1"`
	Word2       string `gorm:"column:word2"`
	Definition2 string `gorm:"column:definition2"`
	Type2       string `gorm:"column:type2"`
	Word3       string `gorm:"column:word3"`
	Definition3 string `gorm:"column:definition3"`
	Type3       string `gorm:"column:type3"`
	Word4       string `gorm:"column:word4"`
	Definition4 string `gorm:"column:definition4"`
	Type4       string `gorm:"column:type4"`
	Word5       string `gorm:"column:word5"`
	Definition5 string `gorm:"column:definition5"`
	Type5       string `gorm:"column:type5"`
	Word6       string `gorm:"column:word6"`
	Definition6 string `gorm:"column:definition6"`
	Type6       string `gorm:"column:type6"`
	Word7       string `gorm:"column:word7"`
	Definition7 string `gorm:"column:definition7"`
	Type7       string `gorm:"column:type7"`
	Word8       string `gorm:"column:word8"`
	Definition8 string `gorm:"column:definition8"`
	Type8       string `gorm:"column:type8"`
}

// WordView はレスポンス用の単語
type WordView struct {
	Text       string `json:"text"`
	Definition string `json:"definition"`
	Type       string `json:"type"`
}

func (s *WordSlots) slot(i int) (*string, *string, *string) {
	switch i {
	case 1:
		return &s.Word1, &s.Definition1, &s.Type1
	case 2:
		return &s.Word2, &s.Definition2, &s.Type2
	case 3:
		return &s.Word3, &s.Definition3, &s.Type3
	case 4:
		return &s.Word4, &s.Definition4, &s.Type4
	case 5:
		return &s.Word5, &s.Definition5, &s.Type5
	case 6:
		return &s.Word6, &s.Definition6, &s.Type6
	case 7:
		return &s.Word7, &s.Definition7, &s.Type7
	case 8:
		return &s.Word8, &s.Definition8, &s.Type8
	}
	return nil, nil, nil
}

// SetSlot は i 番目 (1始まり) のスロットを設定します。範囲外は無視します。
func (s *WordSlots) SetSlot(i int, word, definition, typ string) {
	w, d, t := s.slot(i)
	if w == nil {
		return
	}
	*w, *d, *t = word, definition, typ
}

// Words は空でないスロットを順番に返します
func (s WordSlots) Words() []WordView {
	words := make([]WordView, 0, MaxWordSlots)
	for i := 1; i <= MaxWordSlots; i++ {
		w, d, t := s.slot(i)
		if strings.TrimSpace(*w) == "" {
			continue
		}
		words = append(words, WordView{Text: *w, Definition: *d, Type: *t})
	}
	return words
}

// Brick は単語グループ (レベル別)
type Brick struct {
	GroupID     int64  `gorm:"column:group_id;primaryKey;autoIncrement:false"`
	Language    string `gorm:"not null;index"`
	Level       int    `gorm:"not null"`
	GroupNumber int    `gorm:"not null"`
	WordSlots
	Scene string
	Image string
}

func (Brick) TableName() string {
	return "bricks"
}

// Step は日別レッスン。完了状態はユーザーごとの進捗側で持ちます。
type Step struct {
	GroupID  int64  `gorm:"column:group_id;primaryKey;autoIncrement:false"`
	Language string `gorm:"not null;index"`
	Day      int    `gorm:"not null"`
	WordSlots
	Image string
	Video string
}

func (Step) TableName() string {
	return "steps"
}

// BrickView は GET /api/bricks の1要素
type BrickView struct {
	GroupID     int64      `json:"group_id"`
	Language    string     `json:"language"`
	Level       int        `json:"level"`
	GroupNumber int        `json:"group_number"`
	Words       []WordView `json:"words"`
	Scene       string     `json:"scene"`
	ImageURL    *string    `json:"image_url"`
}

// StepView は GET /api/steps の1要素
type StepView struct {
	GroupID   int64      `json:"group_id"`
	Language  string     `json:"language"`
	Day       int        `json:"day"`
	Words     []WordView `json:"words"`
	ImageURL  *string    `json:"image_url"`
	Video     *string    `json:"video"`
	ShowVideo bool       `json:"show_video"`
}

package importer

import (
	"fmt"
	"strconv"
	"strings"

	"go_duduolingo/internal/model"
)

// Result は取り込み結果の集計です
type Result struct {
	Kind     model.ContentKind
	Rows     int
	Imported int
	Skipped  int
	Warnings []string
}

// header は列名 (小文字) から列番号を引くための表です
type header map[string]int

func newHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		h[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, utf8BOM)))] = i
	}
	return h
}

func (h header) get(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// unquoted は前後の空白とダブルクォートを取り除きます
func (h header) unquoted(row []string, name string) string {
	return strings.Trim(h.get(row, name), `"`)
}

// number は0以上の整数だけを受け付けます。それ以外は ok=false
func number(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (h header) words(row []string, slots *model.WordSlots, unquote bool) {
	for i := 1; i <= model.MaxWordSlots; i++ {
		def := h.get(row, fmt.Sprintf("definition%d", i))
		if unquote {
			def = h.unquoted(row, fmt.Sprintf("definition%d", i))
		}
		slots.SetSlot(i,
			h.get(row, fmt.Sprintf("word%d", i)),
			def,
			h.get(row, fmt.Sprintf("type%d", i)),
		)
	}
}

// groupIDs は group_id が空や数値でない行に、登録済みとファイル内の最大値の続きから番号を振ります
type groupIDs struct {
	max     int64
	pending []*int64
}

func (g *groupIDs) take(raw string, dst *int64) {
	if n, ok := number(raw); ok {
		*dst = int64(n)
		if *dst > g.max {
			g.max = *dst
		}
		return
	}
	g.pending = append(g.pending, dst)
}

func (g *groupIDs) assign() {
	for _, dst := range g.pending {
		g.max++
		*dst = g.max
	}
}

// ParseBricks は word_groups 形式の行を Brick に変換します。
// language が空か level が0の行は読み飛ばします。group_id のない行には storedMax より大きい番号を振ります。
func ParseBricks(records [][]string, storedMax int64) ([]*model.Brick, *Result) {
	result := &Result{Kind: model.KindBrick}
	if len(records) == 0 {
		return nil, result
	}
	h := newHeader(records[0])
	ids := groupIDs{max: storedMax}
	bricks := make([]*model.Brick, 0, len(records)-1)

	for i, row := range records[1:] {
		result.Rows++
		level, _ := number(h.get(row, "level"))
		language := h.get(row, "language")
		if language == "" || level == 0 {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: missing language or level", i+2))
			continue
		}
		groupNumber, _ := number(h.get(row, "group_number"))

		b := &model.Brick{
			Language:    language,
			Level:       level,
			GroupNumber: groupNumber,
			Scene:       h.unquoted(row, "scene"),
			Image:       h.get(row, "image"),
		}
		h.words(row, &b.WordSlots, true)
		ids.take(h.get(row, "group_id"), &b.GroupID)
		bricks = append(bricks, b)
	}
	ids.assign()
	result.Imported = len(bricks)
	return bricks, result
}

// ParseSteps は Steps_data 形式の行を Step に変換します。日付列のヘッダーは "Day" です。
// language が空か day が0の行は読み飛ばします。
func ParseSteps(records [][]string, storedMax int64) ([]*model.Step, *Result) {
	result := &Result{Kind: model.KindStep}
	if len(records) == 0 {
		return nil, result
	}
	h := newHeader(records[0])
	ids := groupIDs{max: storedMax}
	steps := make([]*model.Step, 0, len(records)-1)

	for i, row := range records[1:] {
		result.Rows++
		day, _ := number(h.get(row, "day"))
		language := h.get(row, "language")
		if language == "" || day == 0 {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: missing language or day", i+2))
			continue
		}

		s := &model.Step{
			Language: language,
			Day:      day,
			Image:    h.get(row, "image"),
			Video:    h.get(row, "video"),
		}
		h.words(row, &s.WordSlots, false)
		ids.take(h.get(row, "group_id"), &s.GroupID)
		steps = append(steps, s)
	}
	ids.assign()
	result.Imported = len(steps)
	return steps, result
}

// Package importer は単語グループ (Brick) と Step のコンテンツを CSV / Excel から取り込みます。
package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const utf8BOM = "\ufeff"

// ReadRecords はファイルの拡張子で CSV か Excel かを判定し、ヘッダー行を含む全行を返します。
// Excel は sheet を指定しなければ先頭シートを読みます。
func ReadRecords(path, sheet string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer f.Close()
		return readCSV(f)
	case ".xlsx", ".xlsm":
		return readExcel(path, sheet)
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}

// readCSV は先頭が "//" のコメント行ならそれを読み飛ばしてから CSV を読みます
func readCSV(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	first, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	first = strings.TrimPrefix(first, utf8BOM)

	var body io.Reader = br
	if !strings.HasPrefix(strings.TrimSpace(first), "//") {
		body = io.MultiReader(strings.NewReader(first), br)
	}

	cr := csv.NewReader(body)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return records, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %q: %w", sheet, err)
	}
	// Excel でもコメント行の扱いは CSV と揃える
	if len(rows) > 0 && len(rows[0]) > 0 && strings.HasPrefix(strings.TrimSpace(rows[0][0]), "//") {
		rows = rows[1:]
	}
	return rows, nil
}

// cmd/import/main.go はコンテンツ (Brick / Step) を CSV か Excel から取り込みます。
//
//	go run ./cmd/import -kind brick -file data/word_groups.csv
//	go run ./cmd/import -kind step -file data/Steps_data.xlsx -sheet Sheet1
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"go_duduolingo/internal/config"
	"go_duduolingo/internal/importer"
	"go_duduolingo/internal/logging"
	"go_duduolingo/internal/model"
	"go_duduolingo/internal/repository"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run は終了コードを返します。DB は return 前に必ず閉じます
func run(args []string) int {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	configDir := fs.String("config", "configs", "directory containing config.yaml")
	kindFlag := fs.String("kind", "brick", "content kind to import: brick or step")
	file := fs.String("file", "", "path to a .csv or .xlsx file")
	sheet := fs.String("sheet", "", "Excel sheet name (default: first sheet)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *file == "" {
		fmt.Fprintln(os.Stderr, "-file is required")
		fs.Usage()
		return 2
	}
	kind, err := model.ParseContentKind(*kindFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if err := config.LoadConfig(*configDir); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		return 1
	}
	logger := logging.NewLogger(os.Stderr, config.Cfg.Log.Level, os.Getenv("APP_ENV"))
	slog.SetDefault(logger)

	db, err := repository.NewDB(config.Cfg.Database, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		return 1
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	ctx := context.Background()
	im := importer.New(db, repository.NewGormContentRepository())

	result, err := im.Import(ctx, kind, *file, *sheet)
	if err != nil {
		slog.Error("Import failed", slog.Any("error", err), slog.String("file", *file))
		return 1
	}
	fmt.Printf("Successfully imported %d %s rows (%d read, %d skipped)\n", result.Imported, kind, result.Rows, result.Skipped)

	summary, err := im.Summary(ctx, kind)
	if err != nil {
		slog.Error("Failed to verify import", slog.Any("error", err))
		return 1
	}
	fmt.Printf("\nBy Language (%s):\n", kind.ContentTable())
	for _, c := range summary {
		fmt.Printf("  %s: %d\n", c.Language, c.Count)
	}
	return 0
}

package repository

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go_duduolingo/internal/config"
	"go_duduolingo/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	slogGorm "github.com/orandin/slog-gorm" // slogGormはエイリアス
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ensureSQLiteDir はファイルパス指定の sqlite なら親ディレクトリを作成します
func ensureSQLiteDir(dsn string) error {
	if dsn == "" || dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create sqlite directory %q: %w", dir, err)
	}
	return nil
}

// NewDB は設定に応じて sqlite または postgres に接続し、スキーマを準備します
func NewDB(cfg config.DatabaseConfig, appLogger *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.URL)
	case config.DriverSQLite, "":
		if err := ensureSQLiteDir(cfg.URL); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	// APP_ENV=dev のときだけSQLを全件出力する
	gormLogLevel := gormlogger.Warn
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		gormLogLevel = gormlogger.Info
	}
	slogGormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(500*time.Millisecond),
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: slogGormLogger.LogMode(gormLogLevel),
		// 一意制約違反を gorm.ErrDuplicatedKey に変換する
		TranslateError: true,
	})
	if err != nil {
		appLogger.Error("Failed to connect to database with GORM", slog.Any("error", err), slog.String("driver", cfg.Driver))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}

	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	if db.Dialector.Name() == config.DriverSQLite {
		// sqlite は書き込みを1コネクションで直列化する。
		// インメモリDBはコネクションが閉じると消えるので寿命も無期限にする
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(0)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			appLogger.Error("Error enabling sqlite foreign keys", slog.Any("error", err))
			sqlDB.Close()
			return nil, err
		}
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := Migrate(db); err != nil {
		appLogger.Error("Error migrating database schema", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	appLogger.Info("Database connection established with GORM", slog.String("driver", db.Dialector.Name()))
	return db, nil
}

// Migrate はテーブルが無ければ作成します (既存データには触れない)
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Brick{}, &model.Step{}); err != nil {
		return fmt.Errorf("migrate content tables: %w", err)
	}
	for _, kind := range model.AllKinds {
		if err := db.Table(kind.ProgressTable()).AutoMigrate(&model.ProgressEntry{}); err != nil {
			return fmt.Errorf("migrate %s: %w", kind.ProgressTable(), err)
		}
	}
	return nil
}

// isDuplicateKey は一意制約違反かどうかを判定します。
// TranslateError 済みのエラーと pgconn の生エラーの両方を扱います。
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isPostgres は行ロックを取るかどうかの判定に使います
func isPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == config.DriverPostgres
}

// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "DuDuolingo"
	AppVersion = "1.0.0"
)

// DBドライバ
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// デフォルト設定値
const (
	DefaultServerPort        = ":5000"
	DefaultDatabaseDriver    = DriverSQLite
	DefaultDatabaseURL       = "data/duduolingo.db"
	DefaultLogLevel          = "info"
	DefaultLeaderboardLimit  = 10
	DefaultLeaderboardMax    = 100
	DefaultImagePrefix       = "/data/images"
	DefaultVideoPrefix       = "/data/videos"
	DefaultDetectEndpoint    = "https://api.moondream.ai/v1"
	DefaultDetectTimeout     = 30 * time.Second
	DefaultReconcileInterval = time.Hour
)

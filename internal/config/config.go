// internal/config/config.go
package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite | postgres
	URL    string `mapstructure:"url"`    // sqlite ならファイルパス、postgres なら DSN
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type AppConfig struct {
	LeaderboardLimit int `mapstructure:"leaderboard_limit"`
	LeaderboardMax   int `mapstructure:"leaderboard_max"`
}

type MediaConfig struct {
	ImageDir    string `mapstructure:"image_dir"`
	VideoDir    string `mapstructure:"video_dir"`
	SoundDir    string `mapstructure:"sound_dir"`
	ImagePrefix string `mapstructure:"image_prefix"`
	VideoPrefix string `mapstructure:"video_prefix"`
}

type DetectConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type ReconcileConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	CORS      CORSConfig      `mapstructure:"cors"`
	App       AppConfig       `mapstructure:"app"`
	Media     MediaConfig     `mapstructure:"media"`
	Detect    DetectConfig    `mapstructure:"detect"`
	Reconcile ReconcileConfig `mapstructure:"reconcile"`
}

var Cfg Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("database.driver", DefaultDatabaseDriver)
	v.SetDefault("database.url", DefaultDatabaseURL)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"*"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 300)
	v.SetDefault("app.leaderboard_limit", DefaultLeaderboardLimit)
	v.SetDefault("app.leaderboard_max", DefaultLeaderboardMax)
	v.SetDefault("media.image_dir", "data/images")
	v.SetDefault("media.video_dir", "data/videos")
	v.SetDefault("media.sound_dir", "data/sound")
	v.SetDefault("media.image_prefix", DefaultImagePrefix)
	v.SetDefault("media.video_prefix", DefaultVideoPrefix)
	v.SetDefault("detect.endpoint", DefaultDetectEndpoint)
	v.SetDefault("detect.timeout", DefaultDetectTimeout)
	v.SetDefault("reconcile.interval", DefaultReconcileInterval)
}

// Load は path 配下の config.yaml と環境変数から設定を読み込みます。
// .env があれば先に読み込みます (MOONDREAM_API_KEY など)。
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	// APP_DATABASE_URL -> database.url
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("detect.api_key", "APP_DETECT_API_KEY", "MOONDREAM_API_KEY")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return Config{}, err
	}

	// --- 不正値の補正 ---
	if cfg.App.LeaderboardLimit <= 0 {
		log.Printf("Leaderboard limit invalid, using default '%d'", DefaultLeaderboardLimit)
		cfg.App.LeaderboardLimit = DefaultLeaderboardLimit
	}
	if cfg.App.LeaderboardMax < cfg.App.LeaderboardLimit {
		cfg.App.LeaderboardMax = cfg.App.LeaderboardLimit
	}
	if cfg.Reconcile.Interval <= 0 {
		cfg.Reconcile.Interval = DefaultReconcileInterval
	}
	if cfg.Detect.Timeout <= 0 {
		cfg.Detect.Timeout = DefaultDetectTimeout
	}
	cfg.Database.Driver = strings.ToLower(cfg.Database.Driver)
	if cfg.Database.Driver != DriverSQLite && cfg.Database.Driver != DriverPostgres {
		return Config{}, errors.New("database.driver must be 'sqlite' or 'postgres'")
	}
	if cfg.Detect.APIKey == "" {
		log.Println("Warning: detect.api_key is not set, /detect will be disabled")
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", cfg.Server.Port)
	log.Printf("Database Driver: %s", cfg.Database.Driver)
	log.Printf("Leaderboard Limit: %d", cfg.App.LeaderboardLimit)

	return cfg, nil
}

// LoadConfig は Load の結果をパッケージ変数 Cfg に格納します
func LoadConfig(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	Cfg = cfg
	return nil
}

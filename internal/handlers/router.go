package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go_duduolingo/internal/config"
	"go_duduolingo/internal/middleware"
	"go_duduolingo/internal/model"
	"go_duduolingo/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

// Services はルーターが依存するサービス群です
type Services struct {
	User        service.UserService
	Progress    service.ProgressService
	Leaderboard service.LeaderboardService
	Content     service.ContentService
	Detect      service.DetectService
}

// NewRouter はミドルウェアと全ルートを登録した chi ルーターを返します。
// db は /health の疎通確認にだけ使います。
func NewRouter(cfg config.Config, db *gorm.DB, svc Services, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}).Handler)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	userHandler := NewUserHandler(svc.User)
	brickHandler := NewProgressHandler(svc.Progress, model.KindBrick)
	stepHandler := NewProgressHandler(svc.Progress, model.KindStep)
	leaderboardHandler := NewLeaderboardHandler(svc.Leaderboard)
	contentHandler := NewContentHandler(svc.Content)
	detectHandler := NewDetectHandler(svc.Detect)

	r.Post("/login", userHandler.Login)

	r.Get("/user_bricks/{username}", brickHandler.GetUserProgress)
	r.Post("/user_brick", brickHandler.UpsertScore)
	r.Post("/user_bricks/reset", brickHandler.ResetProgress)

	r.Get("/user_steps/{username}", stepHandler.GetUserProgress)
	r.Post("/user_step", stepHandler.UpsertScore)
	r.Post("/user_steps/reset", stepHandler.ResetProgress)

	r.Get("/leaderboard", leaderboardHandler.GetLeaderboard)

	r.Route("/api", func(r chi.Router) {
		r.Get("/bricks", contentHandler.ListBricks)
		r.Get("/steps", contentHandler.ListSteps)
	})

	r.Post("/detect", detectHandler.Detect)

	// 静的ファイル
	mountStatic(r, cfg.Media.ImagePrefix, cfg.Media.ImageDir)
	mountStatic(r, cfg.Media.VideoPrefix, cfg.Media.VideoDir)
	mountStatic(r, "/sound", cfg.Media.SoundDir)

	r.Get("/health", healthHandler(db))

	return r
}

// mountStatic は prefix 以下を dir のファイルで配信します。dir が空なら登録しません
func mountStatic(r chi.Router, prefix, dir string) {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" || dir == "" {
		return
	}
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
	r.Get(prefix+"/*", fs.ServeHTTP)
}

func healthHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.GetLogger(r.Context())
		sqlDB, err := db.DB()
		if err != nil {
			logger.Error("Health check failed: could not get DB object", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		if err := sqlDB.PingContext(r.Context()); err != nil {
			logger.Error("Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}

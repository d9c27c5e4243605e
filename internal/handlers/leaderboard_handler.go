package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"go_duduolingo/internal/middleware"
	"go_duduolingo/internal/model"
	"go_duduolingo/internal/service"
	"go_duduolingo/internal/webutil"
)

type LeaderboardHandler struct {
	service service.LeaderboardService
}

func NewLeaderboardHandler(s service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: s}
}

// parseLimit は ?limit を読み取ります。未指定は0 (既定件数)、整数でない・負の値はエラー
func parseLimit(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, model.NewAppError(model.CodeValidation, "limit は0以上の整数で指定してください。", "limit", model.ErrInvalidInput)
	}
	return n, nil
}

// GetLeaderboard は GET /leaderboard のハンドラ
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		webutil.HandleError(w, r, err)
		return
	}

	entries, err := h.service.Top(r.Context(), limit)
	if err != nil {
		webutil.HandleError(w, r, err)
		return
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.LeaderboardResponse{Leaderboard: entries}, middleware.GetLogger(r.Context()))
}

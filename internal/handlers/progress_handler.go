package handlers

import (
	"net/http"

	"go_duduolingo/internal/middleware"
	"go_duduolingo/internal/model"
	"go_duduolingo/internal/service"
	"go_duduolingo/internal/webutil"

	"github.com/go-chi/chi/v5"
)

// ProgressHandler は Brick / Step どちらかの進捗エンドポイントを担当します。
// 同じハンドラを kind 違いで2つ生成してルーティングします。
type ProgressHandler struct {
	service service.ProgressService
	kind    model.ContentKind
}

func NewProgressHandler(s service.ProgressService, kind model.ContentKind) *ProgressHandler {
	return &ProgressHandler{service: s, kind: kind}
}

// GetUserProgress は GET /user_bricks/{username}, GET /user_steps/{username} のハンドラ。
// 記録のないグループはスコア0で返します。
func (h *ProgressHandler) GetUserProgress(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	progress, err := h.service.GetUserProgress(r.Context(), h.kind, username)
	if err != nil {
		webutil.HandleError(w, r, err)
		return
	}

	scores := make([]model.GroupScore, 0, len(progress.Groups))
	for _, g := range progress.Groups {
		scores = append(scores, model.GroupScore{GroupID: g.GroupID, Score: g.State.Value()})
	}

	var resp interface{}
	if h.kind == model.KindStep {
		resp = model.StepProgressResponse{Username: progress.Username, Steps: scores, TotalScore: progress.TotalScore}
	} else {
		resp = model.BrickProgressResponse{Username: progress.Username, Bricks: scores, TotalScore: progress.TotalScore}
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, middleware.GetLogger(r.Context()))
}

// UpsertScore は POST /user_brick, POST /user_step のハンドラ
func (h *ProgressHandler) UpsertScore(w http.ResponseWriter, r *http.Request) {
	var req model.UpsertScoreRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, r, err)
		return
	}

	result, err := h.service.UpsertScore(r.Context(), h.kind, req.Username, req.GroupID, req.Score)
	if err != nil {
		webutil.HandleError(w, r, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.UpsertScoreResponse{
		Success:    true,
		Score:      result.Score,
		TotalScore: result.TotalScore,
	}, middleware.GetLogger(r.Context()))
}

// ResetProgress は POST /user_bricks/reset, POST /user_steps/reset のハンドラ
func (h *ProgressHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	var req model.ResetProgressRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, r, err)
		return
	}

	if err := h.service.ResetProgress(r.Context(), h.kind, req.Username, req.Language); err != nil {
		webutil.HandleError(w, r, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.SuccessResponse{Success: true}, middleware.GetLogger(r.Context()))
}

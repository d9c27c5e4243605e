package handlers

import (
	"net/http"

	"go_duduolingo/internal/middleware"
	"go_duduolingo/internal/model"
	"go_duduolingo/internal/service"
	"go_duduolingo/internal/webutil"
)

type ContentHandler struct {
	service service.ContentService
}

func NewContentHandler(s service.ContentService) *ContentHandler {
	return &ContentHandler{service: s}
}

// queryParam はクエリに key があればその値へのポインタ、なければ nil を返します
func queryParam(r *http.Request, key string) *string {
	q := r.URL.Query()
	if !q.Has(key) {
		return nil
	}
	v := q.Get(key)
	return &v
}

// ListBricks は GET /api/bricks?language= のハンドラ
func (h *ContentHandler) ListBricks(w http.ResponseWriter, r *http.Request) {
	bricks, err := h.service.ListBricks(r.Context(), queryParam(r, "language"))
	if err != nil {
		webutil.HandleError(w, r, err)
		return
	}
	if bricks == nil {
		bricks = []model.BrickView{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, bricks, middleware.GetLogger(r.Context()))
}

// ListSteps は GET /api/steps?language=&username= のハンドラ。
// username を渡すと完了済みの Step に動画を付けて返します
func (h *ContentHandler) ListSteps(w http.ResponseWriter, r *http.Request) {
	steps, err := h.service.ListSteps(r.Context(), queryParam(r, "language"), queryParam(r, "username"))
	if err != nil {
		webutil.HandleError(w, r, err)
		return
	}
	if steps == nil {
		steps = []model.StepView{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, steps, middleware.GetLogger(r.Context()))
}

// Package handlers は HTTP リクエストを解析してサービス層を呼び出し、JSON レスポンスを返します。
package handlers

import (
	"net/http"

	"go_duduolingo/internal/middleware"
	"go_duduolingo/internal/model"
	"go_duduolingo/internal/service"
	"go_duduolingo/internal/webutil"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// Login は POST /login のハンドラです。未登録のユーザー名なら作成します
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, r, err)
		return
	}

	resp, err := h.service.Login(r.Context(), req.Username)
	if err != nil {
		webutil.HandleError(w, r, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, middleware.GetLogger(r.Context()))
}

package handlers

import (
	"errors"
	"io"
	"net/http"

	"go_duduolingo/internal/middleware"
	"go_duduolingo/internal/model"
	"go_duduolingo/internal/service"
	"go_duduolingo/internal/webutil"
)

// maxUploadSize はアップロード画像の上限サイズ
const maxUploadSize = 10 << 20

type DetectHandler struct {
	service service.DetectService
}

func NewDetectHandler(s service.DetectService) *DetectHandler {
	return &DetectHandler{service: s}
}

// respondDetectError は検出APIの形 ({found:false, bbox:[], error}) でエラーを返します。
// フロントエンドは error キーだけを見るため、共通のエラー形式は使いません。
func respondDetectError(w http.ResponseWriter, r *http.Request, err error) {
	logger := middleware.GetLogger(r.Context())
	status := webutil.MapErrorToStatusCode(err)

	msg := "サーバー内部でエラーが発生しました。"
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	if status >= http.StatusInternalServerError {
		logger.Error("Detect request failed", "status", status, "error", err)
	} else {
		logger.Warn("Detect request rejected", "status", status, "error", err)
	}

	webutil.RespondWithJSON(w, status, model.DetectResponse{
		Found: false,
		BBox:  []float64{},
		Error: msg,
	}, logger)
}

// Detect は POST /detect?target= のハンドラ。multipart の file フィールドに画像を受け取ります
func (h *DetectHandler) Detect(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	target := r.URL.Query().Get("target")

	file, header, err := r.FormFile("file")
	if err != nil {
		respondDetectError(w, r, model.NewAppError(model.CodeValidation, "画像ファイルは必須です。", "file", model.ErrInvalidInput))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		respondDetectError(w, r, model.NewAppError(model.CodeInvalidBody, "画像ファイルを読み取れませんでした。", "file", model.ErrInvalidInput))
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(image)
	}

	resp, err := h.service.Detect(r.Context(), target, image, mimeType)
	if err != nil {
		respondDetectError(w, r, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, middleware.GetLogger(r.Context()))
}

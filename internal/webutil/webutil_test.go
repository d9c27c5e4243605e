package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_duduolingo/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "NotFound", err: model.NewAppError(model.CodeNotFound, "x", "", model.ErrNotFound), want: http.StatusNotFound},
		{name: "Validation", err: model.NewAppError(model.CodeValidation, "x", "username", model.ErrInvalidInput), want: http.StatusBadRequest},
		{name: "Conflict", err: fmt.Errorf("wrap: %w", model.ErrConflict), want: http.StatusConflict},
		{name: "Unavailable", err: model.NewAppError(model.CodeFeatureDisabled, "x", "", model.ErrUnavailable), want: http.StatusServiceUnavailable},
		{name: "Storage", err: model.NewStorageError("x", errors.New("disk full")), want: http.StatusInternalServerError},
		{name: "原因がNotFoundでもStorageは500", err: model.NewStorageError("x", model.ErrNotFound), want: http.StatusInternalServerError},
		{name: "未知のエラー", err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestHandleError_StorageDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	HandleError(rr, req, model.NewStorageError("スコアの保存に失敗しました。", errors.New("no such table: user_bricks")))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, model.CodeStorage, resp.Error.Code)
	assert.Equal(t, "スコアの保存に失敗しました。", resp.Error.Message)
	assert.Equal(t, "no such table: user_bricks", resp.Error.Detail)
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantErr   bool
		wantCode  string
		wantField string
		wantMsg   string
	}{
		{name: "正常系", body: `{"username":"alice","group_id":3,"score":"5","extra":true}`},
		{name: "異常系: 空ボディ", body: ``, wantErr: true, wantCode: model.CodeInvalidBody},
		{name: "異常系: 不正なJSON", body: `{"username":`, wantErr: true, wantCode: model.CodeInvalidBody},
		{name: "異常系: username なし", body: `{"group_id":3}`, wantErr: true, wantCode: model.CodeValidation, wantField: "username", wantMsg: "ユーザー名は必須項目です。"},
		{name: "異常系: group_id なし", body: `{"username":"alice"}`, wantErr: true, wantCode: model.CodeValidation, wantField: "group_id", wantMsg: "グループIDは必須項目です。"},
		{name: "異常系: username が長すぎる", body: `{"username":"` + strings.Repeat("a", 256) + `","group_id":1}`, wantErr: true, wantCode: model.CodeValidation, wantField: "username", wantMsg: "ユーザー名は255文字以下で入力してください。"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/user_brick", strings.NewReader(tt.body))
			var dst model.UpsertScoreRequest

			err := DecodeAndValidate(req, &dst)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "alice", dst.Username)
				require.NotNil(t, dst.GroupID)
				assert.Equal(t, int64(3), *dst.GroupID)
				assert.Equal(t, 5.0, model.CoerceScore(dst.Score))
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrInvalidInput)
			var appErr *model.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.wantCode, appErr.Code)
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, appErr.Field)
			}
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, appErr.Message)
			}
		})
	}
}

func TestDecodeAndValidate_GroupIDZero(t *testing.T) {
	// group_id: 0 は「未指定」ではない
	req := httptest.NewRequest(http.MethodPost, "/user_brick", strings.NewReader(`{"username":"alice","group_id":0}`))
	var dst model.UpsertScoreRequest
	require.NoError(t, DecodeAndValidate(req, &dst))
	require.NotNil(t, dst.GroupID)
	assert.Equal(t, int64(0), *dst.GroupID)
}

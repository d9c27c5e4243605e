// internal/model/error.go
package model

import "errors"

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrConflict       = errors.New("resource conflict") // 重複エラー用
	ErrUnavailable    = errors.New("service unavailable")
)

// エラーコード
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidBody     = "INVALID_REQUEST_BODY"
	CodeNotFound        = "NOT_FOUND"
	CodeStorage         = "STORAGE_ERROR"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
	CodeUpstream        = "UPSTREAM_ERROR"
	CodeFeatureDisabled = "FEATURE_DISABLED"
)

// AppError はクライアントへ返す情報と根本原因のエラーを保持します
type AppError struct {
	Code    string
	Message string
	Field   string
	Detail  string // StorageError の場合は下位のエラーメッセージをそのまま返す
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError は AppError を生成します
func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Field:   field,
		Err:     err,
	}
}

// NewStorageError はDB操作の失敗を表す AppError を生成します。
// cause のメッセージは detail としてクライアントにも返されます。
func NewStorageError(message string, cause error) *AppError {
	appErr := NewAppError(CodeStorage, message, "", errors.Join(ErrInternalServer, cause))
	if cause != nil {
		appErr.Detail = cause.Error()
	}
	return appErr
}

// ErrorDetail はエラーレスポンスの中身
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

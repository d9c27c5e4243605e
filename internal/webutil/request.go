package webutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go_duduolingo/internal/model"

	"github.com/go-playground/validator/v10"
)

// DecodeJSONBody はリクエストボディをデコードします。
// 未知のフィールドは無視します (フロントエンドが余分なキーを送るため)。
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.NewAppError(model.CodeInvalidBody, "リクエストボディが必要です。", "", model.ErrInvalidInput)
	}
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return model.NewAppError(model.CodeInvalidBody, "リクエストボディが必要です。", "", model.ErrInvalidInput)
		}
		appErr := model.NewAppError(model.CodeInvalidBody, "リクエストボディのJSONが不正です。", "", model.ErrInvalidInput)
		appErr.Detail = err.Error()
		return appErr
	}
	return nil
}

// DecodeAndValidate はデコード後に validate タグで検証します
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := DecodeJSONBody(r, dst); err != nil {
		return err
	}
	if err := Validator.Struct(dst); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return NewValidationErrorResponse(validationErrs)
		}
		return model.NewAppError(model.CodeValidation, "入力値が不正です。", "", model.ErrInvalidInput)
	}
	return nil
}

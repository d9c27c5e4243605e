package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/ja" // 日本語ロケール
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja" // 日本語翻訳
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"username": "ユーザー名",
	"group_id": "グループID",
	"score":    "スコア",
	"language": "言語",
}

// fieldLabel は json タグ名を日本語の項目名に変換します (未登録ならそのまま)
func fieldLabel(fe validator.FieldError) string {
	if label, ok := fieldNameTranslations[fe.Field()]; ok {
		return label
	}
	return fe.Field()
}

// overrideTranslation は既定の日本語メッセージを差し替えます。
// withParam が true のときは {1} にタグのパラメータ (max=255 の 255) が入ります。
func overrideTranslation(tag, template string, withParam bool) {
	err := Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
		return ut.Add(tag, template, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		params := []string{fieldLabel(fe)}
		if withParam {
			params = append(params, fe.Param())
		}
		t, _ := ut.T(tag, params...)
		return t
	})
	if err != nil {
		log.Fatalf("failed to register %s translation: %v", tag, err)
	}
}

func init() {
	Validator = validator.New()

	// エラーの Field() に json タグ名を使う
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	japanese := ja.New()
	uni := ut.New(japanese, japanese)
	var found bool
	Trans, found = uni.GetTranslator("ja")
	if !found {
		log.Fatal("translator not found")
	}
	if err := ja_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	overrideTranslation("required", "{0}は必須項目です。", false)
	overrideTranslation("max", "{0}は{1}文字以下で入力してください。", true)
}

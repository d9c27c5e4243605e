// Package media は取込時に保存されたファイルパスを公開URLに変換します
package media

import (
	"strings"
)

// Resolver は保存パスのファイル名部分だけを取り出し、公開プレフィックスに付け替えます。
// 取込データは Windows のパス (C:\...\a.png) を含むことがあるため区切りは / と \ の両方を扱います。
type Resolver struct {
	ImagePrefix string
	VideoPrefix string
}

func NewResolver(imagePrefix, videoPrefix string) *Resolver {
	return &Resolver{
		ImagePrefix: strings.TrimRight(imagePrefix, "/"),
		VideoPrefix: strings.TrimRight(videoPrefix, "/"),
	}
}

// ImageURL は画像の公開URLを返します。保存パスが空なら nil
func (r *Resolver) ImageURL(stored string) *string {
	return join(r.ImagePrefix, stored)
}

// VideoURL は動画の公開URLを返します。保存パスが空なら nil
func (r *Resolver) VideoURL(stored string) *string {
	return join(r.VideoPrefix, stored)
}

// Basename は / と \ のどちらの区切りでも最後の要素を返します
func Basename(stored string) string {
	stored = strings.TrimSpace(stored)
	if i := strings.LastIndexAny(stored, `/\`); i >= 0 {
		return stored[i+1:]
	}
	return stored
}

func join(prefix, stored string) *string {
	name := Basename(stored)
	if name == "" {
		return nil
	}
	url := prefix + "/" + name
	return &url
}

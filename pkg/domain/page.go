package domain

import (
	"encoding/base64"
	"fmt"
)

// PageType は塗り絵ブックの1ページの種類を表します。
type PageType string

const (
	PageTypeCover PageType = "cover"
	PageTypePage  PageType = "page"
)

// DefaultMimeType は画像モデルが MIME タイプを返さなかった場合に使う値です。
const DefaultMimeType = "image/jpeg"

// Page は生成された1枚の白黒線画と、その識別子・種類を保持します。
type Page struct {
	ID        int      `json:"id"` // 表紙は 0、塗り絵ページは 1 から
	Type      PageType `json:"type"`
	ImageData []byte   `json:"-"`
	MimeType  string   `json:"mimeType"`
	Prompt    string   `json:"prompt,omitempty"` // 画像生成に使ったプロンプト
}

// ContentType は MIME タイプを返します。未設定の場合は DefaultMimeType です。
func (p Page) ContentType() string {
	if p.MimeType == "" {
		return DefaultMimeType
	}
	return p.MimeType
}

// DataURI はブラウザでそのまま表示できる data URI 形式の文字列を返します。
func (p Page) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", p.ContentType(), base64.StdEncoding.EncodeToString(p.ImageData))
}

// IsCover は表紙かどうかを返します。
func (p Page) IsCover() bool {
	return p.Type == PageTypeCover
}

// String はページの情報を文字列で返します。
func (p Page) String() string {
	if p.IsCover() {
		return "Cover Page"
	}
	return fmt.Sprintf("Page %d", p.ID)
}

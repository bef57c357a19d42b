package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrMissingInput はテーマか名前が空のときに返されます。
	ErrMissingInput = errors.New("Please provide both a theme and a name.")
	// ErrBookNotFound は指定された ID の塗り絵ブックが存在しないときに返されます。
	ErrBookNotFound = errors.New("coloring book not found")
	// ErrEmptyBook はページを1枚も持たないブックを出力しようとしたときに返されます。
	ErrEmptyBook = errors.New("coloring book has no pages")
)

// BookRequest はユーザーから受け取る生成リクエストです。
type BookRequest struct {
	Theme     string `json:"theme"`
	ChildName string `json:"childName"`
}

// Normalize は前後の空白を取り除いたリクエストを返します。
func (r BookRequest) Normalize() BookRequest {
	return BookRequest{
		Theme:     strings.TrimSpace(r.Theme),
		ChildName: strings.TrimSpace(r.ChildName),
	}
}

// Validate はテーマと名前の両方が指定されているかを検証します。
func (r BookRequest) Validate() error {
	n := r.Normalize()
	if n.Theme == "" || n.ChildName == "" {
		return ErrMissingInput
	}
	return nil
}

// ColoringBook は1冊分の塗り絵ブック（表紙＋ページ）です。
type ColoringBook struct {
	ID        string    `json:"id,omitempty"`
	Theme     string    `json:"theme"`
	ChildName string    `json:"childName"`
	Prompts   []string  `json:"prompts,omitempty"`
	Pages     []Page    `json:"pages"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewColoringBook はリクエストから空のブックを作成します。
func NewColoringBook(req BookRequest) *ColoringBook {
	n := req.Normalize()
	return &ColoringBook{
		Theme:     n.Theme,
		ChildName: n.ChildName,
		CreatedAt: time.Now(),
	}
}

// Title は表紙に描かれるタイトルです。
func (b *ColoringBook) Title() string {
	return BookTitle(b.ChildName)
}

// BookTitle は名前から表紙のタイトルを組み立てます。
func BookTitle(childName string) string {
	return fmt.Sprintf("%s's Coloring Book!", childName)
}

// Cover は表紙ページを返します。まだ生成されていない場合は nil です。
func (b *ColoringBook) Cover() *Page {
	for i := range b.Pages {
		if b.Pages[i].IsCover() {
			p := b.Pages[i]
			return &p
		}
	}
	return nil
}

// ColoringPages は表紙を除いた塗り絵ページを順番通りに返します。
func (b *ColoringBook) ColoringPages() []Page {
	pages := make([]Page, 0, len(b.Pages))
	for _, p := range b.Pages {
		if p.Type == PageTypePage {
			pages = append(pages, p)
		}
	}
	return pages
}

// PDFFileName はダウンロード用の PDF ファイル名を返します。
func (b *ColoringBook) PDFFileName() string {
	return PDFFileName(b.ChildName, b.Theme)
}

// ScenePlan はテキストモデルが生成したシーンプロンプトの一覧です。
// prompts コマンドで保存し、image コマンドで読み込みます。
type ScenePlan struct {
	Theme   string   `json:"theme"`
	Prompts []string `json:"prompts"`
}

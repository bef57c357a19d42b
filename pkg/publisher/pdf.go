package publisher

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/shouni/go-coloring-kit/pkg/domain"

	"github.com/go-pdf/fpdf"
)

// DefaultMarginMM は画像の周囲に確保する余白 (mm) です。
const DefaultMarginMM = 10.0

const pdfCreator = "go-coloring-kit"

// PDFRenderer は塗り絵ブックを A4 縦の PDF に変換します。
type PDFRenderer struct {
	margin float64
}

// NewPDFRenderer は PDFRenderer を初期化します。margin が 0 以下の場合は DefaultMarginMM を使います。
func NewPDFRenderer(margin float64) *PDFRenderer {
	if margin <= 0 {
		margin = DefaultMarginMM
	}
	return &PDFRenderer{margin: margin}
}

// Render は表紙を先頭に、ブックのページ順で1ページ1画像の PDF を w に書き出します。
// 画像は縦横比を保ったまま余白の内側に収め、中央に配置します。
func (r *PDFRenderer) Render(w io.Writer, book *domain.ColoringBook) error {
	if book == nil || len(book.Pages) == 0 {
		return domain.ErrEmptyBook
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(book.Title(), true)
	pdf.SetCreator(pdfCreator, false)
	pdf.SetAutoPageBreak(false, 0)
	pageW, pageH := pdf.GetPageSize()

	for i, page := range book.Pages {
		if len(page.ImageData) == 0 {
			return fmt.Errorf("%s の画像データが空です", page)
		}

		name := fmt.Sprintf("page_%d", i)
		opts := fpdf.ImageOptions{ImageType: imageType(page.ContentType())}
		info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(page.ImageData))
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("%s の画像を PDF に登録できませんでした: %w", page, err)
		}

		x, y, wd, ht := fitRect(info.Width(), info.Height(), pageW, pageH, r.margin)
		pdf.AddPage()
		pdf.ImageOptions(name, x, y, wd, ht, false, opts, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("PDF の書き出しに失敗しました: %w", err)
	}
	return nil
}

// fitRect は縦横比を保ったまま、余白を除いた領域に収まる最大の矩形を中央寄せで返します。
func fitRect(imgW, imgH, pageW, pageH, margin float64) (x, y, w, h float64) {
	areaW := pageW - 2*margin
	areaH := pageH - 2*margin
	if imgW <= 0 || imgH <= 0 {
		return margin, margin, areaW, areaH
	}

	scale := min(areaW/imgW, areaH/imgH)
	w = imgW * scale
	h = imgH * scale
	x = (pageW - w) / 2
	y = (pageH - h) / 2
	return x, y, w, h
}

func imageType(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	default:
		return "JPG"
	}
}

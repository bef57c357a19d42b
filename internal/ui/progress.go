// Package ui は CLI の進捗表示とチャットの表示を扱います。
package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/shouni/go-coloring-kit/pkg/domain"
	"github.com/shouni/go-coloring-kit/pkg/generator"

	"github.com/schollz/progressbar/v3"
)

// BookProgress は生成済みページ数をプログレスバーで表示します。
type BookProgress struct {
	mu    sync.Mutex
	bar   *progressbar.ProgressBar
	pages int
}

// NewBookProgress は表紙と pageCount 枚のページ分のプログレスバーを作成します。
func NewBookProgress(w io.Writer, pageCount int) *BookProgress {
	bar := progressbar.NewOptions(
		pageCount+1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(generator.MsgBrainstorming),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
	return &BookProgress{bar: bar}
}

// Callback は BookGenerator に渡す進捗コールバックを返します。
func (p *BookProgress) Callback() generator.ProgressFunc {
	return func(message string, pages []domain.Page) {
		p.mu.Lock()
		defer p.mu.Unlock()

		p.bar.Describe(message)
		if n := len(pages); n > p.pages {
			_ = p.bar.Add(n - p.pages)
			p.pages = n
		}
	}
}

// Finish はプログレスバーを完了状態にします。
func (p *BookProgress) Finish() {
	_ = p.bar.Finish()
}

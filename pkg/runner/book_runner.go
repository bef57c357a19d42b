package runner

import (
	"context"

	"github.com/shouni/go-coloring-kit/pkg/domain"
	"github.com/shouni/go-coloring-kit/pkg/generator"
)

// ColoringBookRunner はシーン生成から全ページの描画までを一括で実行します。
type ColoringBookRunner struct {
	generator *generator.BookGenerator
}

// NewColoringBookRunner は依存関係を注入して初期化します。
func NewColoringBookRunner(gen *generator.BookGenerator) *ColoringBookRunner {
	return &ColoringBookRunner{generator: gen}
}

// Run は塗り絵ブックを1冊生成します。
func (br *ColoringBookRunner) Run(ctx context.Context, req domain.BookRequest, onProgress generator.ProgressFunc) (*domain.ColoringBook, error) {
	return br.generator.Generate(ctx, req, onProgress)
}

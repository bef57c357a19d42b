package runner

import (
	"context"
	"io"

	"github.com/shouni/go-coloring-kit/pkg/domain"
	"github.com/shouni/go-coloring-kit/pkg/publisher"
)

// DefaultPublishRunner は pkg/publisher を利用した標準実装です。
type DefaultPublishRunner struct {
	publisher *publisher.Publisher
	renderer  *publisher.PDFRenderer
}

func NewDefaultPublishRunner(pub *publisher.Publisher, renderer *publisher.PDFRenderer) *DefaultPublishRunner {
	return &DefaultPublishRunner{
		publisher: pub,
		renderer:  renderer,
	}
}

// Run は PDF・画像・プロンプトを outputDir に保存します。
func (pr *DefaultPublishRunner) Run(ctx context.Context, book *domain.ColoringBook, outputDir string) (publisher.PublishResult, error) {
	return pr.publisher.Publish(ctx, book, outputDir)
}

// RenderPDF は保存処理を行わず、PDF だけを w に書き出します。
// HTTP のダウンロードレスポンスなどで使います。
func (pr *DefaultPublishRunner) RenderPDF(w io.Writer, book *domain.ColoringBook) error {
	return pr.renderer.Render(w, book)
}

// SavePlan はシーンプランを JSON で保存します。
func (pr *DefaultPublishRunner) SavePlan(ctx context.Context, plan domain.ScenePlan, path string) error {
	return pr.publisher.WritePlan(ctx, plan, path)
}

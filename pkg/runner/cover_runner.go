package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-coloring-kit/pkg/domain"
	"github.com/shouni/go-coloring-kit/pkg/generator"
	"github.com/shouni/go-coloring-kit/pkg/publisher"
)

// ColoringCoverRunner は表紙だけを生成して保存する実行実体です。
type ColoringCoverRunner struct {
	generator *generator.BookGenerator
	publisher *publisher.Publisher
}

// NewColoringCoverRunner は依存関係を注入して初期化します。
func NewColoringCoverRunner(gen *generator.BookGenerator, pub *publisher.Publisher) *ColoringCoverRunner {
	return &ColoringCoverRunner{
		generator: gen,
		publisher: pub,
	}
}

// Run は表紙を生成し、outputDir に保存したパスを返します。
func (cr *ColoringCoverRunner) Run(ctx context.Context, req domain.BookRequest, outputDir string) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	req = req.Normalize()

	slog.InfoContext(ctx, "Executing cover generation", "theme", req.Theme, "child_name", req.ChildName)
	cover, err := cr.generator.RenderCover(ctx, req.Theme, req.ChildName)
	if err != nil {
		return "", err
	}

	outputPath, err := cr.publisher.SavePage(ctx, *cover, outputDir)
	if err != nil {
		slog.Error("Failed to save image", "error", err)
		return "", fmt.Errorf("表紙の保存に失敗しました: %w", err)
	}
	return outputPath, nil
}

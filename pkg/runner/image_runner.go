package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/go-coloring-kit/pkg/domain"
	"github.com/shouni/go-coloring-kit/pkg/generator"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// ColoringImageRunner は保存済みのシーンプランから表紙とページを描画します。
type ColoringImageRunner struct {
	generator *generator.BookGenerator
	reader    remoteio.InputReader
}

// NewColoringImageRunner は依存関係を注入して初期化します。
func NewColoringImageRunner(gen *generator.BookGenerator, reader remoteio.InputReader) *ColoringImageRunner {
	return &ColoringImageRunner{generator: gen, reader: reader}
}

// Run はシーンプランから塗り絵ブックを描画します。
func (ir *ColoringImageRunner) Run(ctx context.Context, plan domain.ScenePlan, childName string, onProgress generator.ProgressFunc) (*domain.ColoringBook, error) {
	slog.InfoContext(ctx, "ImageRunner: Rendering pages from plan", "theme", plan.Theme, "scenes", len(plan.Prompts))
	return ir.generator.RenderBook(ctx, plan, childName, onProgress)
}

// LoadPlan はローカルパスまたは gs:// などの URI からシーンプランを読み込みます。
func (ir *ColoringImageRunner) LoadPlan(ctx context.Context, planPath string) (domain.ScenePlan, error) {
	rc, err := ir.reader.Open(ctx, planPath)
	if err != nil {
		return domain.ScenePlan{}, fmt.Errorf("シーンプランを開けませんでした (path: %s): %w", planPath, err)
	}
	defer rc.Close()

	plan, err := DecodeScenePlan(rc)
	if err != nil {
		return domain.ScenePlan{}, fmt.Errorf("シーンプランの読み込みに失敗しました (path: %s): %w", planPath, err)
	}
	return plan, nil
}

// DecodeScenePlan は JSON 形式のシーンプランを読み込みます。
func DecodeScenePlan(r io.Reader) (domain.ScenePlan, error) {
	var plan domain.ScenePlan
	if err := json.NewDecoder(r).Decode(&plan); err != nil {
		return domain.ScenePlan{}, fmt.Errorf("JSONの解析に失敗しました: %w", err)
	}
	if plan.Theme == "" || len(plan.Prompts) == 0 {
		return domain.ScenePlan{}, fmt.Errorf("theme と prompts は必須です")
	}
	return plan, nil
}

package runner

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shouni/go-coloring-kit/pkg/domain"
	"github.com/shouni/go-coloring-kit/pkg/generator"
)

// ColoringScriptRunner はテーマからシーンプロンプトを生成する実行実体です。
type ColoringScriptRunner struct {
	generator *generator.BookGenerator
}

// NewColoringScriptRunner は依存関係を注入して初期化します。
func NewColoringScriptRunner(gen *generator.BookGenerator) *ColoringScriptRunner {
	return &ColoringScriptRunner{generator: gen}
}

// Run はテーマからシーンプランを生成します。
func (sr *ColoringScriptRunner) Run(ctx context.Context, theme string) (*domain.ScenePlan, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return nil, domain.ErrMissingInput
	}

	slog.InfoContext(ctx, "ScriptRunner: Generating scene prompts", "theme", theme)
	scenes, err := sr.generator.GenerateScenes(ctx, theme)
	if err != nil {
		return nil, err
	}

	return &domain.ScenePlan{Theme: theme, Prompts: scenes}, nil
}

package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shouni/go-coloring-kit/internal/builder"
	"github.com/shouni/go-coloring-kit/internal/config"
	"github.com/shouni/go-coloring-kit/internal/ui"
	"github.com/shouni/go-coloring-kit/pkg/asset"
	"github.com/shouni/go-coloring-kit/pkg/domain"
	"github.com/shouni/go-coloring-kit/pkg/generator"
	"github.com/shouni/go-coloring-kit/pkg/publisher"
	"github.com/shouni/go-coloring-kit/pkg/workflow"
)

// progressWriter はプログレスバーの出力先です。
var progressWriter io.Writer = os.Stderr

// Execute は、テーマと名前から塗り絵ブックを生成し、PDF と画像を保存します。
func Execute(ctx context.Context, cfg *config.Config) (publisher.PublishResult, error) {
	appCtx, err := builder.NewAppContext(ctx, cfg)
	if err != nil {
		return publisher.PublishResult{}, err
	}
	defer closeAppContext(appCtx)

	// --- Phase 1 & 2: シーン生成と描画 ---
	book, err := runBookStep(ctx, appCtx, domain.BookRequest{Theme: cfg.Options.Theme, ChildName: cfg.Options.ChildName})
	if err != nil {
		return publisher.PublishResult{}, err
	}

	// --- Phase 3: 保存 ---
	return runPublishStep(ctx, appCtx, book)
}

// ExecutePromptsOnly は、シーンプロンプトだけを生成して JSON に保存し、保存先のパスを返します。
func ExecutePromptsOnly(ctx context.Context, cfg *config.Config) (string, error) {
	appCtx, err := builder.NewAppContext(ctx, cfg)
	if err != nil {
		return "", err
	}
	defer closeAppContext(appCtx)

	scriptRunner, err := appCtx.Workflow.BuildScriptRunner()
	if err != nil {
		return "", fmt.Errorf("ScriptRunnerの構築に失敗しました: %w", err)
	}

	slog.Info("Phase 1: シーンプロンプトの生成を開始します...", "theme", cfg.Options.Theme)
	plan, err := scriptRunner.Run(ctx, cfg.Options.Theme)
	if err != nil {
		return "", fmt.Errorf("シーンプロンプトの生成に失敗しました: %w", err)
	}

	outputPath := cfg.Options.OutputFile
	if outputPath == "" {
		outputPath, err = asset.ResolveOutputPath(cfg.Options.OutputDir, asset.DefaultPromptsJSON)
		if err != nil {
			return "", err
		}
	}

	publishRunner, err := appCtx.Workflow.BuildPublishRunner()
	if err != nil {
		return "", fmt.Errorf("PublishRunnerの構築に失敗しました: %w", err)
	}
	if err := publishRunner.SavePlan(ctx, *plan, outputPath); err != nil {
		return "", err
	}

	slog.Info("シーンプロンプトを保存しました", "path", outputPath, "scenes", len(plan.Prompts))
	return outputPath, nil
}

// ExecuteImageOnly は、保存済みのシーンプラン (JSON) を読み込み、描画と保存 (Phase 2 & 3) を実行します。
func ExecuteImageOnly(ctx context.Context, cfg *config.Config) (publisher.PublishResult, error) {
	appCtx, err := builder.NewAppContext(ctx, cfg)
	if err != nil {
		return publisher.PublishResult{}, err
	}
	defer closeAppContext(appCtx)

	imageRunner, err := appCtx.Workflow.BuildImageRunner()
	if err != nil {
		return publisher.PublishResult{}, fmt.Errorf("ImageRunnerの構築に失敗しました: %w", err)
	}

	book, err := runImageStep(ctx, imageRunner, cfg.Options.PlanFile, cfg.Options.ChildName)
	if err != nil {
		return publisher.PublishResult{}, err
	}

	return runPublishStep(ctx, appCtx, book)
}

// ExecuteCoverOnly は、表紙だけを生成して保存し、保存先のパスを返します。
func ExecuteCoverOnly(ctx context.Context, cfg *config.Config) (string, error) {
	appCtx, err := builder.NewAppContext(ctx, cfg)
	if err != nil {
		return "", err
	}
	defer closeAppContext(appCtx)

	coverRunner, err := appCtx.Workflow.BuildCoverRunner()
	if err != nil {
		return "", fmt.Errorf("CoverRunnerの構築に失敗しました: %w", err)
	}

	req := domain.BookRequest{Theme: cfg.Options.Theme, ChildName: cfg.Options.ChildName}
	return coverRunner.Run(ctx, req, cfg.Options.OutputDir)
}

// runBookStep は BookRunner を使ってシーン生成から全ページの描画までを実行します。
func runBookStep(ctx context.Context, appCtx *builder.AppContext, req domain.BookRequest) (*domain.ColoringBook, error) {
	bookRunner, err := appCtx.Workflow.BuildBookRunner()
	if err != nil {
		return nil, fmt.Errorf("BookRunnerの構築に失敗しました: %w", err)
	}

	pageCount := appCtx.Workflow.Config().PageCount
	slog.Info("Phase 1 & 2: 塗り絵ブックの生成を開始します...", "theme", req.Theme, "pages", pageCount)

	progress := ui.NewBookProgress(progressWriter, pageCount)
	book, err := bookRunner.Run(ctx, req, progress.Callback())
	if err != nil {
		return nil, fmt.Errorf("塗り絵ブックの生成に失敗しました: %w", err)
	}
	progress.Finish()

	return book, nil
}

// runImageStep はシーンプランを読み込み、プランのシーン数に合わせたプログレスバーで描画します。
func runImageStep(ctx context.Context, imageRunner workflow.ImageRunner, planPath, childName string) (*domain.ColoringBook, error) {
	plan, err := imageRunner.LoadPlan(ctx, planPath)
	if err != nil {
		return nil, err
	}

	slog.Info("Phase 2: シーンプランから描画を開始します...", "plan", planPath, "pages", len(plan.Prompts))
	progress := ui.NewBookProgress(progressWriter, len(plan.Prompts))
	book, err := imageRunner.Run(ctx, plan, childName, progress.Callback())
	if err != nil {
		return nil, fmt.Errorf("画像生成に失敗しました: %w", err)
	}
	progress.Finish()

	return book, nil
}

// runPublishStep は PublishRunner を使って最終成果物を保存します。
func runPublishStep(ctx context.Context, appCtx *builder.AppContext, book *domain.ColoringBook) (publisher.PublishResult, error) {
	slog.Info("Phase 3: 保存処理を開始します...", "output_dir", appCtx.Options.OutputDir)
	publishRunner, err := appCtx.Workflow.BuildPublishRunner()
	if err != nil {
		return publisher.PublishResult{}, fmt.Errorf("PublishRunnerの構築に失敗しました: %w", err)
	}

	result, err := publishRunner.Run(ctx, book, appCtx.Options.OutputDir)
	if err != nil {
		return result, fmt.Errorf("保存処理に失敗しました: %w", err)
	}
	slog.Info(generator.MsgBookReady, "pdf", result.PDFPath)
	return result, nil
}

func closeAppContext(appCtx *builder.AppContext) {
	if err := appCtx.Close(); err != nil {
		slog.Warn("クライアントのクローズに失敗しました", "error", err)
	}
}

package workflow

import (
	"context"
	"io"

	"github.com/shouni/go-coloring-kit/pkg/domain"
	"github.com/shouni/go-coloring-kit/pkg/generator"
	"github.com/shouni/go-coloring-kit/pkg/publisher"
)

// Workflow は、塗り絵ブック生成ワークフローの各工程を担当する Runner を構築するためのインターフェースを定義します。
type Workflow interface {
	BuildScriptRunner() (ScriptRunner, error)
	BuildBookRunner() (BookRunner, error)
	BuildImageRunner() (ImageRunner, error)
	BuildCoverRunner() (CoverRunner, error)
	BuildPublishRunner() (PublishRunner, error)
	BuildChatRunner() (ChatRunner, error)
}

// ScriptRunner は、テーマからシーンプロンプトを生成する責務を持ちます。
type ScriptRunner interface {
	Run(ctx context.Context, theme string) (*domain.ScenePlan, error)
}

// BookRunner は、シーン生成から表紙・全ページの描画までを順番に実行する責務を持ちます。
type BookRunner interface {
	Run(ctx context.Context, req domain.BookRequest, onProgress generator.ProgressFunc) (*domain.ColoringBook, error)
}

// ImageRunner は、保存済みのシーンプランから表紙とページを描画する責務を持ちます。
type ImageRunner interface {
	LoadPlan(ctx context.Context, planPath string) (domain.ScenePlan, error)
	Run(ctx context.Context, plan domain.ScenePlan, childName string, onProgress generator.ProgressFunc) (*domain.ColoringBook, error)
}

// CoverRunner は、表紙だけを生成して保存する責務を持ちます。
type CoverRunner interface {
	Run(ctx context.Context, req domain.BookRequest, outputDir string) (string, error)
}

// PublishRunner は、生成されたブックを PDF と画像として出力する責務を持ちます。
type PublishRunner interface {
	Run(ctx context.Context, book *domain.ColoringBook, outputDir string) (publisher.PublishResult, error)
	RenderPDF(w io.Writer, book *domain.ColoringBook) error
	SavePlan(ctx context.Context, plan domain.ScenePlan, path string) error
}

// ChatRunner は、ストーリーアイデアの会話を担う責務を持ちます。
type ChatRunner interface {
	Run(ctx context.Context, theme, message string) (string, error)
	History() []domain.ChatMessage
}

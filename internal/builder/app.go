package builder

import (
	"context"
	"fmt"

	"github.com/shouni/go-coloring-kit/internal/config"
	"github.com/shouni/go-coloring-kit/pkg/workflow"

	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-utils/urlpath"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持します。
// これを各 Execute 関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Options   config.GenerateOptions // Options は、コマンドラインから渡された実行時の設定です（テーマ、出力先、モデル名など）。
	Workflow  *workflow.Manager      // Workflow は、各工程の Runner を構築します。
	ioFactory remoteio.IOFactory     // ioFactory は GCS を使う場合のみ保持し、Close で解放します。
}

// NewAppContext は設定から入出力と genai クライアント、ワークフローを初期化し、AppContext を返します。
// 出力先またはシーンプランが gs:// の場合は GCS クライアントを生成します。
func NewAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	if !cfg.HasCredentials() {
		return nil, fmt.Errorf("GEMINI_API_KEY もしくは PROJECT_ID と REGION を設定してください")
	}

	reader, writer, factory, err := initializeIO(ctx, cfg.Options)
	if err != nil {
		return nil, err
	}

	manager, err := workflow.New(ctx, workflow.ManagerArgs{
		Config: cfg.KitConfig(),
		Reader: reader,
		Writer: writer,
	})
	if err != nil {
		if factory != nil {
			_ = factory.Close()
		}
		return nil, fmt.Errorf("ワークフローの初期化に失敗しました: %w", err)
	}

	return &AppContext{
		Options:   cfg.Options,
		Workflow:  manager,
		ioFactory: factory,
	}, nil
}

// Close は保持しているクライアントを解放します。
func (a *AppContext) Close() error {
	if a.ioFactory == nil {
		return nil
	}
	return a.ioFactory.Close()
}

// initializeIO は入出力先に応じた InputReader と OutputWriter を返します。
// ローカルパスだけを扱う場合、クライアントは生成せず factory は nil です。
func initializeIO(ctx context.Context, opts config.GenerateOptions) (remoteio.InputReader, remoteio.OutputWriter, remoteio.IOFactory, error) {
	if !usesGCS(opts) {
		return remoteio.NewUniversalInputReader(nil, nil), remoteio.NewUniversalIOWriter(nil, nil), nil, nil
	}

	factory, err := gcsfactory.New(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("GCSクライアントファクトリの作成に失敗しました: %w", err)
	}
	reader, err := factory.InputReader()
	if err != nil {
		_ = factory.Close()
		return nil, nil, nil, err
	}
	writer, err := factory.OutputWriter()
	if err != nil {
		_ = factory.Close()
		return nil, nil, nil, err
	}
	return reader, writer, factory, nil
}

func usesGCS(opts config.GenerateOptions) bool {
	for _, p := range []string{opts.OutputDir, opts.OutputFile, opts.PlanFile} {
		if urlpath.IsGCSURI(p) {
			return true
		}
	}
	return false
}

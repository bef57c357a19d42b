package workflow

import (
	"context"
	"fmt"

	"github.com/shouni/go-coloring-kit/pkg/chat"
	"github.com/shouni/go-coloring-kit/pkg/config"
	"github.com/shouni/go-coloring-kit/pkg/gemini"
	"github.com/shouni/go-coloring-kit/pkg/generator"
	"github.com/shouni/go-coloring-kit/pkg/prompts"
	"github.com/shouni/go-coloring-kit/pkg/publisher"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// ManagerArgs は Manager の初期化に必要な依存関係です。
// AI 関連のフィールドが nil の場合は Config から genai クライアントを生成します。
// Reader と Writer が nil の場合はローカルファイルだけを扱う実装を使います。
type ManagerArgs struct {
	Config         config.Config
	Reader         remoteio.InputReader
	Writer         remoteio.OutputWriter
	TextGenerator  gemini.TextGenerator
	ImageGenerator gemini.ImageGenerator
	ChatStarter    gemini.ChatStarter
	ScriptPrompt   prompts.ScriptPrompt
	ImagePrompt    prompts.ImagePrompt
}

// Manager は、ワークフローの各工程を担う Runner 群を構築・管理します。
type Manager struct {
	cfg           config.Config
	reader        remoteio.InputReader
	chatStarter   gemini.ChatStarter
	scriptPrompt  prompts.ScriptPrompt
	bookGenerator *generator.BookGenerator
	renderer      *publisher.PDFRenderer
	publisher     *publisher.Publisher
}

var _ Workflow = (*Manager)(nil)

// New は、設定を基に新しい Manager を初期化します。
func New(ctx context.Context, args ManagerArgs) (*Manager, error) {
	reader := args.Reader
	if reader == nil {
		reader = remoteio.NewUniversalInputReader(nil, nil)
	}
	writer := args.Writer
	if writer == nil {
		writer = remoteio.NewUniversalIOWriter(nil, nil)
	}

	textGen, imgGen, starter := args.TextGenerator, args.ImageGenerator, args.ChatStarter
	if textGen == nil || imgGen == nil || starter == nil {
		client, err := gemini.NewClient(ctx, args.Config)
		if err != nil {
			return nil, err
		}
		if textGen == nil {
			textGen = client
		}
		if imgGen == nil {
			imgGen = client
		}
		if starter == nil {
			starter = client
		}
	}

	sPrompt, err := initializeScriptPrompt(args.ScriptPrompt)
	if err != nil {
		return nil, err
	}
	iPrompt := initializeImagePrompt(args.ImagePrompt)

	composer := generator.NewBookComposer(
		textGen,
		imgGen,
		sPrompt,
		iPrompt,
		generator.NewRateLimiter(args.Config.RateInterval),
		args.Config.PageCount,
		args.Config.AspectRatio,
	)
	renderer := publisher.NewPDFRenderer(publisher.DefaultMarginMM)

	return &Manager{
		cfg:           args.Config,
		reader:        reader,
		chatStarter:   starter,
		scriptPrompt:  sPrompt,
		bookGenerator: generator.NewBookGenerator(composer),
		renderer:      renderer,
		publisher:     publisher.NewPublisher(writer, renderer),
	}, nil
}

// NewAssistant は新しいチャットアシスタントを生成します。chat.Store のファクトリとして使います。
func (m *Manager) NewAssistant() *chat.Assistant {
	return chat.NewAssistant(m.chatStarter, m.scriptPrompt)
}

// Config は Manager の設定を返します。
func (m *Manager) Config() config.Config {
	return m.cfg
}

// initializeScriptPrompt は ScriptPrompt ビルダーを初期化します。
// 引数として既存のビルダーが渡された場合はそれを返し、nil の場合は新規作成します。
func initializeScriptPrompt(scriptPrompt prompts.ScriptPrompt) (prompts.ScriptPrompt, error) {
	if scriptPrompt != nil {
		return scriptPrompt, nil
	}

	pb, err := prompts.NewTextPromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("TextPromptBuilder の新規作成に失敗しました: %w", err)
	}

	return pb, nil
}

// initializeImagePrompt は ImagePromptBuilder を初期化します。
func initializeImagePrompt(imagePrompt prompts.ImagePrompt) prompts.ImagePrompt {
	if imagePrompt != nil {
		return imagePrompt
	}
	return prompts.NewImagePromptBuilder(prompts.PageStylePrefix)
}

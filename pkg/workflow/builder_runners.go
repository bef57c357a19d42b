package workflow

import (
	"github.com/shouni/go-coloring-kit/pkg/runner"
)

// BuildScriptRunner は、シーンプロンプト生成を担当する Runner を作成します。
func (m *Manager) BuildScriptRunner() (ScriptRunner, error) {
	return runner.NewColoringScriptRunner(m.bookGenerator), nil
}

// BuildBookRunner は、塗り絵ブックの一括生成を担当する Runner を作成します。
func (m *Manager) BuildBookRunner() (BookRunner, error) {
	return runner.NewColoringBookRunner(m.bookGenerator), nil
}

// BuildImageRunner は、シーンプランからの描画を担当する Runner を作成します。
func (m *Manager) BuildImageRunner() (ImageRunner, error) {
	return runner.NewColoringImageRunner(m.bookGenerator, m.reader), nil
}

// BuildCoverRunner は、表紙の生成を担当する Runner を作成します。
func (m *Manager) BuildCoverRunner() (CoverRunner, error) {
	return runner.NewColoringCoverRunner(m.bookGenerator, m.publisher), nil
}

// BuildPublishRunner は、成果物のパブリッシュを担当する Runner を作成します。
func (m *Manager) BuildPublishRunner() (PublishRunner, error) {
	return runner.NewDefaultPublishRunner(m.publisher, m.renderer), nil
}

// BuildChatRunner は、新しい会話を担当する Runner を作成します。
func (m *Manager) BuildChatRunner() (ChatRunner, error) {
	return runner.NewColoringChatRunner(m.NewAssistant()), nil
}

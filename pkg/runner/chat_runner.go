package runner

import (
	"context"

	"github.com/shouni/go-coloring-kit/pkg/chat"
	"github.com/shouni/go-coloring-kit/pkg/domain"
)

// ColoringChatRunner は1人の利用者とのストーリーアイデアの会話を担います。
type ColoringChatRunner struct {
	assistant *chat.Assistant
}

// NewColoringChatRunner は依存関係を注入して初期化します。
func NewColoringChatRunner(assistant *chat.Assistant) *ColoringChatRunner {
	return &ColoringChatRunner{assistant: assistant}
}

// Run はメッセージを送り、応答を返します。失敗時も表示用の応答 (お詫び) を返します。
func (cr *ColoringChatRunner) Run(ctx context.Context, theme, message string) (string, error) {
	return cr.assistant.Send(ctx, theme, message)
}

// History は会話履歴を返します。
func (cr *ColoringChatRunner) History() []domain.ChatMessage {
	return cr.assistant.History()
}

package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shouni/go-coloring-kit/pkg/domain"
	"github.com/shouni/go-coloring-kit/pkg/gemini"
	"github.com/shouni/go-coloring-kit/pkg/metrics"
	"github.com/shouni/go-coloring-kit/pkg/prompts"
)

// ApologyReply はチャットの応答取得に失敗したときに履歴へ追加するメッセージです。
const ApologyReply = "Sorry, I had trouble coming up with an idea. Please try again."

// ErrEmptyMessage は空白だけのメッセージが送られたときに返されます。履歴は変更されません。
var ErrEmptyMessage = errors.New("chat message is empty")

// Assistant はストーリーアイデアを一緒に考えるチャット相手です。
// セッションは最初のメッセージ送信時に開始され、以降の会話で文脈を共有します。
type Assistant struct {
	starter gemini.ChatStarter
	prompt  prompts.ScriptPrompt

	mu      sync.Mutex
	session gemini.ChatSession
	history []domain.ChatMessage
}

// NewAssistant は Assistant を初期化します。
func NewAssistant(starter gemini.ChatStarter, sp prompts.ScriptPrompt) *Assistant {
	return &Assistant{
		starter: starter,
		prompt:  sp,
	}
}

// Send はテーマを前置したメッセージをモデルに送り、応答を返します。
// メッセージは入力されたまま履歴に残し、空白だけの場合は何もしません。
// 失敗した場合は ApologyReply を履歴に追加し、ApologyReply とエラーの両方を返します。
func (a *Assistant) Send(ctx context.Context, theme, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.history = append(a.history, domain.ChatMessage{Role: domain.ChatRoleUser, Text: message})

	reply, err := a.send(ctx, strings.TrimSpace(theme), message)
	if err != nil {
		slog.WarnContext(ctx, "チャットの応答取得に失敗しました", "error", err)
		a.history = append(a.history, domain.ChatMessage{Role: domain.ChatRoleModel, Text: ApologyReply})
		return ApologyReply, err
	}

	a.history = append(a.history, domain.ChatMessage{Role: domain.ChatRoleModel, Text: reply})
	return reply, nil
}

func (a *Assistant) send(ctx context.Context, theme, message string) (reply string, err error) {
	start := time.Now()
	defer func() { metrics.ObserveModelCall("chat", start, err) }()

	if a.session == nil {
		session, err := a.starter.StartChat(ctx, prompts.ChatSystemInstruction)
		if err != nil {
			return "", fmt.Errorf("%w: %w", gemini.ErrChatResponse, err)
		}
		a.session = session
	}

	text, err := a.prompt.BuildChatMessage(theme, message)
	if err != nil {
		return "", fmt.Errorf("チャットメッセージの生成に失敗しました: %w", err)
	}

	return a.session.SendMessage(ctx, text)
}

// History は表示用の会話履歴のコピーを返します。
func (a *Assistant) History() []domain.ChatMessage {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]domain.ChatMessage, len(a.history))
	copy(out, a.history)
	return out
}

// Reset は会話履歴とセッションを破棄します。次の Send で新しいセッションが始まります。
func (a *Assistant) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.session = nil
	a.history = nil
}

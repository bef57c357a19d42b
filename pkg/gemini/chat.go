package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// StartChat はシステム指示を設定したチャットセッションを開始します。
func (c *Client) StartChat(ctx context.Context, systemInstruction string) (ChatSession, error) {
	chatConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	}
	if systemInstruction != "" {
		chatConfig.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	chat, err := c.genai.Chats.Create(ctx, c.chatModel, chatConfig, nil)
	if err != nil {
		return nil, fmt.Errorf("チャットセッションの開始に失敗しました: %w", err)
	}
	return &chatSession{chat: chat}, nil
}

// chatSession は genai.Chat を ChatSession として扱うためのアダプターです。
type chatSession struct {
	chat *genai.Chat
}

func (s *chatSession) SendMessage(ctx context.Context, message string) (string, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrChatResponse, err)
	}

	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		return "", fmt.Errorf("%w: 応答が空です", ErrChatResponse)
	}
	return reply, nil
}

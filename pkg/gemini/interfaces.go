package gemini

import "context"

// TextGenerator は、テキストモデルから文字列の配列を生成する契約です。
type TextGenerator interface {
	GenerateStringList(ctx context.Context, prompt string, n int) ([]string, error)
}

// ImageGenerator は、画像モデルから1枚の画像を生成する契約です。
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error)
}

// ChatStarter は、システム指示付きのチャットセッションを開始する契約です。
type ChatStarter interface {
	StartChat(ctx context.Context, systemInstruction string) (ChatSession, error)
}

// ChatSession は、会話の文脈を保持するチャットのハンドルです。
type ChatSession interface {
	SendMessage(ctx context.Context, message string) (string, error)
}

var (
	_ TextGenerator  = (*Client)(nil)
	_ ImageGenerator = (*Client)(nil)
	_ ChatStarter    = (*Client)(nil)
)

package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shouni/go-coloring-kit/pkg/config"
	"github.com/shouni/go-coloring-kit/pkg/domain"

	"google.golang.org/genai"
)

var (
	// ErrInvalidPromptFormat はテキストモデルの応答が期待した JSON 配列でない場合に返されます。
	ErrInvalidPromptFormat = errors.New("Invalid prompt format received from AI.")
	// ErrNoImage は画像モデルが画像を返さなかった場合に返されます。
	ErrNoImage = errors.New("No image was generated.")
	// ErrChatResponse はチャットの応答取得に失敗した場合に返されます。
	ErrChatResponse = errors.New("Failed to get chat response.")
	// ErrNoCredentials は API キーも Vertex AI のプロジェクトとリージョンも設定されていない場合に返されます。
	ErrNoCredentials = errors.New("GEMINI_API_KEY もしくは PROJECT_ID と REGION の設定が必要です")
)

// ImageRequest は1枚の画像生成リクエストです。
type ImageRequest struct {
	Prompt         string
	AspectRatio    string
	NegativePrompt string
}

// ImageResponse は生成された画像のバイト列と MIME タイプです。
type ImageResponse struct {
	Data     []byte
	MimeType string
}

// Client は genai クライアントをラップし、シーン生成・画像生成・チャットを提供します。
type Client struct {
	genai       *genai.Client
	backend     genai.Backend
	textModel   string
	imageModel  string
	chatModel   string
	aspectRatio string
	temperature float32
}

// NewClient は設定に応じて Gemini API もしくは Vertex AI のバックエンドでクライアントを初期化します。
func NewClient(ctx context.Context, cfg config.Config) (*Client, error) {
	cc, err := clientConfig(cfg)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}

	aspectRatio := cfg.AspectRatio
	if aspectRatio == "" {
		aspectRatio = config.DefaultAspectRatio
	}

	slog.Debug("Gemini クライアントを初期化しました",
		"backend", cc.Backend.String(),
		"text_model", cfg.GeminiModel,
		"image_model", cfg.ImageModel,
		"chat_model", cfg.ChatModel,
	)

	return &Client{
		genai:       client,
		backend:     cc.Backend,
		textModel:   cfg.GeminiModel,
		imageModel:  cfg.ImageModel,
		chatModel:   cfg.ChatModel,
		aspectRatio: aspectRatio,
		temperature: cfg.Temperature,
	}, nil
}

// clientConfig は API キーがあれば Gemini API を、なければ Vertex AI を選びます。
// どちらも設定されていない場合はエラーです。
func clientConfig(cfg config.Config) (*genai.ClientConfig, error) {
	cc := &genai.ClientConfig{
		HTTPClient: &http.Client{Timeout: cfg.RequestTimeout},
	}
	switch {
	case cfg.GeminiAPIKey != "":
		cc.APIKey = cfg.GeminiAPIKey
		cc.Backend = genai.BackendGeminiAPI
	case cfg.UseVertexAI():
		cc.Project = cfg.ProjectID
		cc.Location = cfg.LocationID
		cc.Backend = genai.BackendVertexAI
	default:
		return nil, ErrNoCredentials
	}
	return cc, nil
}

// Backend は使用中のバックエンドを返します。
func (c *Client) Backend() genai.Backend {
	return c.backend
}

// GenerateStringList はテキストモデルを JSON モードで呼び出し、ちょうど n 個の文字列を返します。
func (c *Client) GenerateStringList(ctx context.Context, prompt string, n int) ([]string, error) {
	genConfig := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(c.temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.textModel, genai.Text(prompt), genConfig)
	if err != nil {
		return nil, fmt.Errorf("シーンプロンプトの生成に失敗しました: %w", err)
	}

	list, err := ParseStringList(resp.Text(), n)
	if err != nil {
		return nil, err
	}
	return list, nil
}

// GenerateImage は画像モデルで1枚の画像を生成します。
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	aspectRatio := req.AspectRatio
	if aspectRatio == "" {
		aspectRatio = c.aspectRatio
	}

	imgConfig := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    aspectRatio,
		OutputMIMEType: domain.DefaultMimeType,
	}
	if req.NegativePrompt != "" {
		imgConfig.NegativePrompt = req.NegativePrompt
	}

	resp, err := c.genai.Models.GenerateImages(ctx, c.imageModel, req.Prompt, imgConfig)
	if err != nil {
		return nil, fmt.Errorf("画像の生成に失敗しました: %w", err)
	}

	return extractImage(resp)
}

// extractImage はレスポンスから最初の画像を取り出します。
// セーフティフィルタで除外された場合も ErrNoImage です。
func extractImage(resp *genai.GenerateImagesResponse) (*ImageResponse, error) {
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return nil, ErrNoImage
	}

	generated := resp.GeneratedImages[0]
	if generated == nil || generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
		if generated != nil && generated.RAIFilteredReason != "" {
			slog.Warn("画像がフィルタリングされました", "reason", generated.RAIFilteredReason)
		}
		return nil, ErrNoImage
	}

	mimeType := generated.Image.MIMEType
	if mimeType == "" {
		mimeType = domain.DefaultMimeType
	}

	return &ImageResponse{
		Data:     generated.Image.ImageBytes,
		MimeType: mimeType,
	}, nil
}

package config

import (
	"time"
)

// デフォルト値の定義
const (
	DefaultGeminiModel    = "gemini-2.5-flash"
	DefaultImageModel     = "imagen-4.0-generate-001"
	DefaultChatModel      = "gemini-2.5-flash"
	DefaultAspectRatio    = "4:3"
	DefaultPageCount      = 5
	DefaultRateInterval   = 0
	DefaultRequestTimeout = 2 * time.Minute
	DefaultTemperature    = float32(1.0)
)

// Config は Go Coloring Kit の各 Runner を動作させるための基本設定です。
type Config struct {
	// --- AI Model Settings ---
	GeminiModel string // シーンプロンプト生成用
	ImageModel  string // 表紙・ページ画像生成用
	ChatModel   string // ストーリーアイデアのチャット用
	Temperature float32

	// --- Google AI (Gemini API) Settings ---
	GeminiAPIKey string

	// --- Vertex AI Settings ---
	ProjectID  string
	LocationID string

	// --- Generation Settings ---
	PageCount    int    // 表紙を除いた塗り絵ページ数
	AspectRatio  string // 画像のアスペクト比
	RateInterval time.Duration

	// --- Timeout ---
	RequestTimeout time.Duration
}

// NewConfig はデフォルト値で初期化された Config に API キーをセットして返します。
func NewConfig(apiKey string) Config {
	cfg := DefaultConfig()
	cfg.GeminiAPIKey = apiKey
	return cfg
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数です。
func DefaultConfig() Config {
	return Config{
		GeminiModel:    DefaultGeminiModel,
		ImageModel:     DefaultImageModel,
		ChatModel:      DefaultChatModel,
		Temperature:    DefaultTemperature,
		PageCount:      DefaultPageCount,
		AspectRatio:    DefaultAspectRatio,
		RateInterval:   DefaultRateInterval,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// UseVertexAI は Vertex AI バックエンドを使う設定かどうかを返します。
func (c Config) UseVertexAI() bool {
	return c.GeminiAPIKey == "" && c.ProjectID != "" && c.LocationID != ""
}

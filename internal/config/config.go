package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shouni/go-utils/envutil"

	kitconfig "github.com/shouni/go-coloring-kit/pkg/config"
)

// デフォルト値の定義
const (
	DefaultHTTPTimeout = 2 * time.Minute
	DefaultOutputDir   = "output"
	DefaultListenAddr  = ":8080"
	DefaultEnvFile     = ".env"
)

// Config はアプリケーション全体の環境設定（APIキーやクラウド設定）を保持する構造体です。
type Config struct {
	ProjectID        string
	LocationID       string
	GeminiAPIKey     string
	GeminiModel      string
	GeminiImageModel string
	ChatModel        string
	ListenAddr       string

	Options GenerateOptions
}

// LoadConfig は .env（存在する場合）と環境変数から設定を読み込み、構造体を返します。
func LoadConfig() *Config {
	loadEnvFile(DefaultEnvFile)

	cfg := &Config{
		ProjectID:        envutil.GetEnv("PROJECT_ID", ""),
		LocationID:       envutil.GetEnv("REGION", ""),
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:      envutil.GetEnv("GEMINI_MODEL", kitconfig.DefaultGeminiModel),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", kitconfig.DefaultImageModel),
		ChatModel:        envutil.GetEnv("CHAT_GEMINI_MODEL", kitconfig.DefaultChatModel),
		ListenAddr:       envutil.GetEnv("LISTEN_ADDR", DefaultListenAddr),
	}
	return cfg
}

// loadEnvFile は .env を読み込みます。既に設定済みの環境変数は上書きしません。
func loadEnvFile(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		slog.Warn(".env ファイルの読み込みに失敗しました", "path", path, "error", err)
	}
}

// HasCredentials は Gemini API キー、もしくは Vertex AI のプロジェクトとリージョンが設定されているかを返します。
func (c *Config) HasCredentials() bool {
	return c.GeminiAPIKey != "" || (c.ProjectID != "" && c.LocationID != "")
}

// KitConfig は CLI のオプションを反映したライブラリ用の設定を返します。
func (c *Config) KitConfig() kitconfig.Config {
	kc := kitconfig.NewConfig(c.GeminiAPIKey)
	kc.ProjectID = c.ProjectID
	kc.LocationID = c.LocationID
	kc.GeminiModel = firstNonEmpty(c.Options.AIModel, c.GeminiModel, kc.GeminiModel)
	kc.ImageModel = firstNonEmpty(c.Options.ImageModel, c.GeminiImageModel, kc.ImageModel)
	kc.ChatModel = firstNonEmpty(c.ChatModel, kc.ChatModel)
	kc.AspectRatio = firstNonEmpty(c.Options.AspectRatio, kc.AspectRatio)
	if c.Options.PageCount > 0 {
		kc.PageCount = c.Options.PageCount
	}
	if c.Options.HTTPTimeout > 0 {
		kc.RequestTimeout = c.Options.HTTPTimeout
	}
	kc.RateInterval = c.Options.RateInterval
	return kc
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータです。
type GenerateOptions struct {
	// 入力関連
	Theme     string // --theme
	ChildName string // --name
	PlanFile  string // --plan-file

	// 出力関連
	OutputDir  string // --output-dir
	OutputFile string // --output-file

	// AI挙動設定
	AIModel     string // --model: テキスト生成用のGeminiモデル
	ImageModel  string // --image-model: 画像生成用のモデル
	AspectRatio string // --aspect-ratio
	PageCount   int    // --pages

	// 実行制御
	HTTPTimeout  time.Duration // --http-timeout
	RateInterval time.Duration // --rate-interval
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-coloring-kit/pkg/config"
	"github.com/shouni/go-coloring-kit/pkg/gemini"
	"github.com/shouni/go-coloring-kit/pkg/metrics"
	"github.com/shouni/go-coloring-kit/pkg/prompts"

	"golang.org/x/time/rate"
)

// BookComposer は塗り絵ブック生成に必要な依存関係をまとめて保持します。
type BookComposer struct {
	TextGenerator  gemini.TextGenerator
	ImageGenerator gemini.ImageGenerator
	ScriptPrompt   prompts.ScriptPrompt
	ImagePrompt    prompts.ImagePrompt
	RateLimiter    *rate.Limiter // nil の場合は画像生成の間隔を制御しません
	PageCount      int
	AspectRatio    string
}

// NewBookComposer は BookComposer の新しいインスタンスを初期化済みの状態で生成します。
func NewBookComposer(
	textGen gemini.TextGenerator,
	imgGen gemini.ImageGenerator,
	sp prompts.ScriptPrompt,
	ip prompts.ImagePrompt,
	limiter *rate.Limiter,
	pageCount int,
	aspectRatio string,
) *BookComposer {
	if pageCount <= 0 {
		pageCount = config.DefaultPageCount
	}
	if aspectRatio == "" {
		aspectRatio = config.DefaultAspectRatio
	}
	return &BookComposer{
		TextGenerator:  textGen,
		ImageGenerator: imgGen,
		ScriptPrompt:   sp,
		ImagePrompt:    ip,
		RateLimiter:    limiter,
		PageCount:      pageCount,
		AspectRatio:    aspectRatio,
	}
}

// NewRateLimiter は画像生成の呼び出し間隔を制御するリミッターを返します。
// interval が 0 以下の場合は nil です。
func NewRateLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// generateImage はリミッターで間隔を空けてから画像モデルを1回呼び出します。
func (bc *BookComposer) generateImage(ctx context.Context, kind, prompt string) (*gemini.ImageResponse, error) {
	if bc.RateLimiter != nil {
		if err := bc.RateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req := gemini.ImageRequest{
		Prompt:      prompt,
		AspectRatio: bc.AspectRatio,
	}
	if bc.ImagePrompt != nil {
		req.NegativePrompt = bc.ImagePrompt.NegativePrompt()
	}

	start := time.Now()
	resp, err := bc.ImageGenerator.GenerateImage(ctx, req)
	metrics.ObserveModelCall(kind, start, err)
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Data) == 0 {
		return nil, gemini.ErrNoImage
	}

	slog.DebugContext(ctx, "画像を生成しました", "kind", kind, "duration", time.Since(start).Round(time.Millisecond))
	return resp, nil
}

// generateScenes はテーマからシーンプロンプトを生成します。
func (bc *BookComposer) generateScenes(ctx context.Context, theme string) ([]string, error) {
	prompt, err := bc.ScriptPrompt.BuildScenes(theme, bc.PageCount)
	if err != nil {
		return nil, fmt.Errorf("プロンプト生成に失敗: %w", err)
	}

	start := time.Now()
	scenes, err := bc.TextGenerator.GenerateStringList(ctx, prompt, bc.PageCount)
	metrics.ObserveModelCall("scenes", start, err)
	if err != nil {
		return nil, err
	}
	return scenes, nil
}

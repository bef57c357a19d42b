package prompts

import (
	"strings"
)

// ImagePromptBuilder は塗り絵ページ用の画像プロンプトを構築します。
type ImagePromptBuilder struct {
	stylePrefix    string
	negativePrompt string
}

// NewImagePromptBuilder は新しい ImagePromptBuilder を生成します。
// stylePrefix が空の場合は PageStylePrefix を使います。
func NewImagePromptBuilder(stylePrefix string) *ImagePromptBuilder {
	if stylePrefix == "" {
		stylePrefix = PageStylePrefix
	}
	return &ImagePromptBuilder{
		stylePrefix:    stylePrefix,
		negativePrompt: ColoringNegativePrompt,
	}
}

// BuildPagePrompt はシーンの説明に画風指定を付与したプロンプトを返します。
func (pb *ImagePromptBuilder) BuildPagePrompt(scene string) string {
	return pb.stylePrefix + strings.TrimSpace(scene)
}

// NegativePrompt は画像生成で避けさせる要素を返します。
func (pb *ImagePromptBuilder) NegativePrompt() string {
	return pb.negativePrompt
}

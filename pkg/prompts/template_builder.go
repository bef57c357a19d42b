package prompts

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/template"

	"github.com/shouni/go-coloring-kit/pkg/domain"
)

// TextPromptBuilder はプロンプトテンプレートを管理し、モード選択のロジックを内包します。
type TextPromptBuilder struct {
	templates map[string]*template.Template
}

// NewTextPromptBuilder は埋め込みテンプレートをすべて解析して TextPromptBuilder を初期化します。
func NewTextPromptBuilder() (*TextPromptBuilder, error) {
	parsedTemplates := make(map[string]*template.Template)
	for mode, content := range allTemplates {
		if content == "" {
			return nil, fmt.Errorf("プロンプトテンプレート '%s' (go:embed) の読み込みに失敗しました: 内容が空です", mode)
		}

		tmpl, err := template.New(mode).Option("missingkey=error").Parse(content)
		if err != nil {
			return nil, fmt.Errorf("プロンプト '%s' の解析に失敗: %w", mode, err)
		}
		parsedTemplates[mode] = tmpl
	}

	return &TextPromptBuilder{
		templates: parsedTemplates,
	}, nil
}

// Build は、要求されたモードに応じて適切なテンプレートを実行します。
func (b *TextPromptBuilder) Build(mode string, data TemplateData) (string, error) {
	tmpl, ok := b.templates[mode]
	if !ok {
		supported := slices.Sorted(maps.Keys(b.templates))
		return "", fmt.Errorf("不明なモードです: '%s'。サポートされているモードは [%s] です", mode, strings.Join(supported, ", "))
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("プロンプトテンプレートの実行に失敗しました: %w", err)
	}

	return strings.TrimSpace(sb.String()), nil
}

// BuildScenes はテーマから N 個のシーンプロンプトを依頼する指示文を生成します。
func (b *TextPromptBuilder) BuildScenes(theme string, sceneCount int) (string, error) {
	return b.Build(ModeScenes, TemplateData{Theme: theme, SceneCount: sceneCount})
}

// BuildCover は表紙画像用のプロンプトを生成します。
func (b *TextPromptBuilder) BuildCover(theme, childName string) (string, error) {
	return b.Build(ModeCover, TemplateData{
		Theme:     theme,
		ChildName: childName,
		Title:     domain.BookTitle(childName),
	})
}

// BuildChatMessage はチャットに送るメッセージの先頭にテーマを付与します。
func (b *TextPromptBuilder) BuildChatMessage(theme, message string) (string, error) {
	return b.Build(ModeChatMessage, TemplateData{Theme: theme, Message: message})
}

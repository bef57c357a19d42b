package prompts

import (
	_ "embed"
)

const (
	ModeScenes      = "scenes"
	ModeCover       = "cover"
	ModeChatMessage = "chat_message"
)

// TemplateData はプロンプトテンプレートに渡すデータ構造です。
type TemplateData struct {
	Theme      string
	ChildName  string
	Title      string
	SceneCount int
	Message    string
}

var (
	//go:embed templates/scenes.md
	ScenesPrompt string
	//go:embed templates/cover.md
	CoverPrompt string
	//go:embed templates/chat_message.md
	ChatMessagePrompt string
)

// allTemplates はモードとテンプレート文字列を紐づけるマップです。
var allTemplates = map[string]string{
	ModeScenes:      ScenesPrompt,
	ModeCover:       CoverPrompt,
	ModeChatMessage: ChatMessagePrompt,
}

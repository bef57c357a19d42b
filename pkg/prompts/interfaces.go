package prompts

// ScriptPrompt は、テキストモデルに送るプロンプトを構築する契約です。
type ScriptPrompt interface {
	// Build は、指定されたモード（例: "scenes", "cover"）とデータに基づいてプロンプト文字列を生成します。
	Build(mode string, data TemplateData) (string, error)
	BuildScenes(theme string, sceneCount int) (string, error)
	BuildCover(theme, childName string) (string, error)
	BuildChatMessage(theme, message string) (string, error)
}

// ImagePrompt は、塗り絵ページ用の画像プロンプトを構築する契約です。
type ImagePrompt interface {
	BuildPagePrompt(scene string) string
	NegativePrompt() string
}

var (
	_ ScriptPrompt = (*TextPromptBuilder)(nil)
	_ ImagePrompt  = (*ImagePromptBuilder)(nil)
)

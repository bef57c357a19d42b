package prompts

const (
	// PageStylePrefix は各塗り絵ページのプロンプトの先頭に付与する画風指定です。
	PageStylePrefix = "A children's coloring book page, simple line art, thick bold black outlines, black and white, no shading, no color, clean vector style. "

	// ColoringNegativePrompt は画像モデルに避けさせたい要素です。
	ColoringNegativePrompt = "color, colored, shading, gradient, grayscale fill, photorealistic, text, watermark, signature, low quality, distorted"

	// ChatSystemInstruction はストーリーアイデア用チャットの役割定義です。
	ChatSystemInstruction = "You are a friendly and cheerful assistant helping a child and parent come up with fun story ideas for their coloring book. Keep responses short, imaginative, and appropriate for young children."
)

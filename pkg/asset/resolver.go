package asset

import (
	"path/filepath"
	"strings"

	"github.com/shouni/go-utils/urlpath"
)

const (
	// DefaultImageDir は生成された画像を格納するデフォルトのディレクトリ名です。
	DefaultImageDir = "images"
	// DefaultPromptsJSON はシーンプロンプトを保存するデフォルトの JSON ファイル名です。
	DefaultPromptsJSON = "prompts.json"
	// DefaultCoverFileName は表紙画像のファイル名です。
	DefaultCoverFileName = "cover.jpg"
	// DefaultPageFileName は塗り絵ページ画像の共通のベースファイル名です。
	DefaultPageFileName = "page.jpg"
)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolvePath(baseDir, fileName)
}

// GenerateIndexedPath は、指定されたベースパスの拡張子の前に連番を挿入し、
// 新しいパス文字列を生成します。index は1以上の整数である必要があります。
// 例: "path/to/page.jpg", 1 -> "path/to/page_1.jpg"
func GenerateIndexedPath(basePath string, index int) (string, error) {
	return urlpath.GenerateIndexedPath(basePath, index)
}

// ExtensionFor は MIME タイプに対応する拡張子を返します。
func ExtensionFor(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

// WithExtension はファイル名の拡張子を MIME タイプに合わせて差し替えます。
func WithExtension(fileName, mimeType string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName)) + ExtensionFor(mimeType)
}

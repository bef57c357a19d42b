package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shouni/go-coloring-kit/pkg/asset"
	"github.com/shouni/go-coloring-kit/pkg/domain"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	PDFPath     string   // 生成された PDF のパス
	PromptsPath string   // 生成された prompts.json のパス (プロンプトがない場合は空)
	ImagePaths  []string // 保存された全画像のパスリスト (表紙が先頭)
}

// Publisher は塗り絵ブックの PDF・画像・プロンプトを保存します。
type Publisher struct {
	writer   remoteio.OutputWriter
	renderer *PDFRenderer
}

// NewPublisher は Publisher を初期化します。
// writer はローカルパスと gs:// などのリモート URI の両方を扱えます。
func NewPublisher(writer remoteio.OutputWriter, renderer *PDFRenderer) *Publisher {
	if renderer == nil {
		renderer = NewPDFRenderer(DefaultMarginMM)
	}
	return &Publisher{
		writer:   writer,
		renderer: renderer,
	}
}

// Publish は PDF、各ページの画像、シーンプロンプトを outputDir に書き出します。
func (p *Publisher) Publish(ctx context.Context, book *domain.ColoringBook, outputDir string) (PublishResult, error) {
	result := PublishResult{}
	if book == nil || len(book.Pages) == 0 {
		return result, domain.ErrEmptyBook
	}

	// 1. PDF
	var buf bytes.Buffer
	if err := p.renderer.Render(&buf, book); err != nil {
		return result, err
	}
	pdfPath, err := asset.ResolveOutputPath(outputDir, book.PDFFileName())
	if err != nil {
		return result, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, pdfPath, &buf, "application/pdf"); err != nil {
		return result, fmt.Errorf("PDFの書き込みに失敗しました: %w", err)
	}
	result.PDFPath = pdfPath

	// 2. 画像
	imgDir, err := asset.ResolveOutputPath(outputDir, asset.DefaultImageDir)
	if err != nil {
		return result, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}
	for _, page := range book.Pages {
		saved, err := p.SavePage(ctx, page, imgDir)
		if err != nil {
			return result, err
		}
		result.ImagePaths = append(result.ImagePaths, saved)
	}

	// 3. シーンプロンプト
	if len(book.Prompts) > 0 {
		promptsPath, err := asset.ResolveOutputPath(outputDir, asset.DefaultPromptsJSON)
		if err != nil {
			return result, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
		}
		plan := domain.ScenePlan{Theme: book.Theme, Prompts: book.Prompts}
		if err := p.WritePlan(ctx, plan, promptsPath); err != nil {
			return result, err
		}
		result.PromptsPath = promptsPath
	}

	slog.InfoContext(ctx, "塗り絵ブックを保存しました",
		"pdf", result.PDFPath,
		"images", len(result.ImagePaths),
	)
	return result, nil
}

// SavePage は1ページ分の画像を dir に保存し、保存先のパスを返します。
// 表紙は cover.jpg、塗り絵ページは page_N.jpg です (拡張子は MIME タイプに従います)。
func (p *Publisher) SavePage(ctx context.Context, page domain.Page, dir string) (string, error) {
	if len(page.ImageData) == 0 {
		return "", fmt.Errorf("%s の画像データが空です", page)
	}

	name := asset.DefaultCoverFileName
	if !page.IsCover() {
		indexed, err := asset.GenerateIndexedPath(asset.DefaultPageFileName, page.ID)
		if err != nil {
			return "", fmt.Errorf("ファイル名の生成に失敗しました: %w", err)
		}
		name = indexed
	}
	name = asset.WithExtension(name, page.ContentType())

	fullPath, err := asset.ResolveOutputPath(dir, name)
	if err != nil {
		return "", fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, fullPath, bytes.NewReader(page.ImageData), page.ContentType()); err != nil {
		return "", fmt.Errorf("画像の書き込みに失敗しました %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// WritePlan はシーンプランを JSON として path に保存します。
func (p *Publisher) WritePlan(ctx context.Context, plan domain.ScenePlan, path string) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("シーンプランのエンコードに失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, path, bytes.NewReader(data), "application/json"); err != nil {
		return fmt.Errorf("シーンプランの書き込みに失敗しました: %w", err)
	}
	return nil
}

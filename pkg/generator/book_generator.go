package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shouni/go-coloring-kit/pkg/domain"
	"github.com/shouni/go-coloring-kit/pkg/metrics"
)

// 進捗メッセージ
const (
	MsgBrainstorming     = "Brainstorming some fun ideas..."
	MsgDesigningCover    = "Designing a beautiful cover..."
	MsgCoverCreated      = "Cover created!"
	MsgBookReady         = "Your coloring book is ready!"
	msgDrawingPageFormat = "Drawing page %d of %d..."
	msgPageReadyFormat   = "Page %d is ready!"
)

// ErrNoScenes はシーンプロンプトが1件もないプランを描こうとしたときに返されます。
var ErrNoScenes = errors.New("scene plan has no prompts")

// ProgressFunc は各工程の開始・完了時に呼ばれます。
// pages はその時点までに生成されたページのコピーで、新しいページがない工程では nil です。
type ProgressFunc func(message string, pages []domain.Page)

// BookGenerator は表紙と塗り絵ページを1枚ずつ順番に生成します。
type BookGenerator struct {
	composer *BookComposer
}

// NewBookGenerator は BookGenerator の新しいインスタンスを初期化します。
func NewBookGenerator(composer *BookComposer) *BookGenerator {
	return &BookGenerator{composer: composer}
}

// Generate はシーンプロンプトの生成から表紙・全ページの描画までを順番に実行します。
// 最初に失敗した工程で処理を打ち切り、エラーを返します。
func (g *BookGenerator) Generate(ctx context.Context, req domain.BookRequest, onProgress ProgressFunc) (book *domain.ColoringBook, err error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	defer func() { metrics.ObserveBook(err) }()

	book = domain.NewColoringBook(req)
	logger := slog.With("theme", book.Theme, "child_name", book.ChildName)
	logger.InfoContext(ctx, "塗り絵ブックの生成を開始します", "pages", g.composer.PageCount)

	notify(onProgress, MsgBrainstorming, nil)
	scenes, err := g.GenerateScenes(ctx, book.Theme)
	if err != nil {
		return nil, err
	}
	book.Prompts = scenes

	if err := g.render(ctx, book, onProgress); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "塗り絵ブックの生成が完了しました", "pages", len(book.Pages))
	return book, nil
}

// GenerateScenes はテーマから PageCount 件のシーンプロンプトを生成します。
func (g *BookGenerator) GenerateScenes(ctx context.Context, theme string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scenes, err := g.composer.generateScenes(ctx, theme)
	if err != nil {
		return nil, fmt.Errorf("シーンプロンプトの生成に失敗しました: %w", err)
	}
	return scenes, nil
}

// RenderBook は既存のシーンプランから表紙と各ページを描画します。
func (g *BookGenerator) RenderBook(ctx context.Context, plan domain.ScenePlan, childName string, onProgress ProgressFunc) (book *domain.ColoringBook, err error) {
	req := domain.BookRequest{Theme: plan.Theme, ChildName: childName}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(plan.Prompts) == 0 {
		return nil, ErrNoScenes
	}
	defer func() { metrics.ObserveBook(err) }()

	book = domain.NewColoringBook(req)
	book.Prompts = append([]string(nil), plan.Prompts...)

	if err := g.render(ctx, book, onProgress); err != nil {
		return nil, err
	}
	return book, nil
}

// RenderCover はタイトル入りの表紙を1枚描画します。
func (g *BookGenerator) RenderCover(ctx context.Context, theme, childName string) (*domain.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prompt, err := g.composer.ScriptPrompt.BuildCover(theme, childName)
	if err != nil {
		return nil, fmt.Errorf("表紙プロンプトの生成に失敗しました: %w", err)
	}

	resp, err := g.composer.generateImage(ctx, string(domain.PageTypeCover), prompt)
	if err != nil {
		return nil, fmt.Errorf("表紙の生成に失敗しました: %w", err)
	}

	return &domain.Page{
		ID:        0,
		Type:      domain.PageTypeCover,
		ImageData: resp.Data,
		MimeType:  resp.MimeType,
		Prompt:    prompt,
	}, nil
}

// RenderPage はシーンに画風指定を付けて塗り絵ページを1枚描画します。
func (g *BookGenerator) RenderPage(ctx context.Context, id int, scene string) (*domain.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prompt := g.composer.ImagePrompt.BuildPagePrompt(scene)
	resp, err := g.composer.generateImage(ctx, string(domain.PageTypePage), prompt)
	if err != nil {
		return nil, fmt.Errorf("ページ %d の生成に失敗しました: %w", id, err)
	}

	return &domain.Page{
		ID:        id,
		Type:      domain.PageTypePage,
		ImageData: resp.Data,
		MimeType:  resp.MimeType,
		Prompt:    prompt,
	}, nil
}

// render は表紙、続いて各ページを1枚ずつ描画し、book.Pages に追加します。
func (g *BookGenerator) render(ctx context.Context, book *domain.ColoringBook, onProgress ProgressFunc) error {
	notify(onProgress, MsgDesigningCover, nil)
	cover, err := g.RenderCover(ctx, book.Theme, book.ChildName)
	if err != nil {
		return err
	}
	book.Pages = append(book.Pages, *cover)
	notify(onProgress, MsgCoverCreated, snapshot(book.Pages))

	total := len(book.Prompts)
	for i, scene := range book.Prompts {
		id := i + 1
		notify(onProgress, fmt.Sprintf(msgDrawingPageFormat, id, total), snapshot(book.Pages))

		page, err := g.RenderPage(ctx, id, scene)
		if err != nil {
			return err
		}
		book.Pages = append(book.Pages, *page)
		slog.DebugContext(ctx, "ページを生成しました", "page", id, "total", total)

		notify(onProgress, fmt.Sprintf(msgPageReadyFormat, id), snapshot(book.Pages))
	}
	return nil
}

func notify(onProgress ProgressFunc, message string, pages []domain.Page) {
	if onProgress != nil {
		onProgress(message, pages)
	}
}

// snapshot はコールバック側で保持しても安全なようにページ一覧をコピーします。
func snapshot(pages []domain.Page) []domain.Page {
	if pages == nil {
		return nil
	}
	out := make([]domain.Page, len(pages))
	copy(out, pages)
	return out
}

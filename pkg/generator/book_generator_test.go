package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shouni/go-coloring-kit/pkg/domain"
	"github.com/shouni/go-coloring-kit/pkg/gemini"
	"github.com/shouni/go-coloring-kit/pkg/prompts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeText struct {
	scenes  []string
	err     error
	prompts []string
}

func (f *fakeText) GenerateStringList(_ context.Context, prompt string, n int) ([]string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	return f.scenes, nil
}

type fakeImage struct {
	failAt   int // 1 始まりの呼び出し回数。0 なら失敗しない
	requests []gemini.ImageRequest
}

func (f *fakeImage) GenerateImage(_ context.Context, req gemini.ImageRequest) (*gemini.ImageResponse, error) {
	f.requests = append(f.requests, req)
	if f.failAt == len(f.requests) {
		return nil, gemini.ErrNoImage
	}
	return &gemini.ImageResponse{
		Data:     []byte(fmt.Sprintf("img-%d", len(f.requests))),
		MimeType: "image/jpeg",
	}, nil
}

type progressEvent struct {
	message string
	pages   []domain.Page
}

func newTestGenerator(t *testing.T, text *fakeText, img *fakeImage, pageCount int) *BookGenerator {
	t.Helper()
	sp, err := prompts.NewTextPromptBuilder()
	require.NoError(t, err)
	composer := NewBookComposer(text, img, sp, prompts.NewImagePromptBuilder(""), nil, pageCount, "")
	return NewBookGenerator(composer)
}

func recordProgress(events *[]progressEvent) ProgressFunc {
	return func(message string, pages []domain.Page) {
		*events = append(*events, progressEvent{message: message, pages: pages})
	}
}

func TestBookGenerator_Generate(t *testing.T) {
	text := &fakeText{scenes: []string{"s1", "s2", "s3", "s4", "s5"}}
	img := &fakeImage{}
	g := newTestGenerator(t, text, img, 5)

	var events []progressEvent
	book, err := g.Generate(context.Background(), domain.BookRequest{Theme: " Space Dinosaurs ", ChildName: "Alex"}, recordProgress(&events))
	require.NoError(t, err)

	wantMessages := []string{
		"Brainstorming some fun ideas...",
		"Designing a beautiful cover...",
		"Cover created!",
	}
	for i := 1; i <= 5; i++ {
		wantMessages = append(wantMessages, fmt.Sprintf("Drawing page %d of 5...", i), fmt.Sprintf("Page %d is ready!", i))
	}
	gotMessages := make([]string, len(events))
	for i, e := range events {
		gotMessages[i] = e.message
	}
	assert.Equal(t, wantMessages, gotMessages)

	t.Run("ブックの内容", func(t *testing.T) {
		assert.Equal(t, "Space Dinosaurs", book.Theme)
		assert.Equal(t, []string{"s1", "s2", "s3", "s4", "s5"}, book.Prompts)
		require.Len(t, book.Pages, 6)
		assert.Equal(t, domain.PageTypeCover, book.Pages[0].Type)
		assert.Equal(t, 0, book.Pages[0].ID)
		for i := 1; i <= 5; i++ {
			assert.Equal(t, i, book.Pages[i].ID)
			assert.Equal(t, domain.PageTypePage, book.Pages[i].Type)
		}
	})

	t.Run("画像リクエスト", func(t *testing.T) {
		require.Len(t, img.requests, 6)
		assert.Contains(t, img.requests[0].Prompt, `titled "Alex's Coloring Book!"`)
		assert.Equal(t, prompts.PageStylePrefix+"s1", img.requests[1].Prompt)
		assert.Equal(t, "4:3", img.requests[1].AspectRatio)
		assert.Equal(t, prompts.ColoringNegativePrompt, img.requests[1].NegativePrompt)
		require.Len(t, text.prompts, 1)
		assert.Contains(t, text.prompts[0], `"Space Dinosaurs"`)
	})

	t.Run("進捗のページ一覧", func(t *testing.T) {
		assert.Nil(t, events[0].pages)
		assert.Nil(t, events[1].pages)
		assert.Len(t, events[2].pages, 1)
		assert.Len(t, events[3].pages, 1)  // Drawing page 1
		assert.Len(t, events[4].pages, 2)  // Page 1 is ready
		assert.Len(t, events[12].pages, 6) // Page 5 is ready
	})

	t.Run("コールバックに渡したページはコピー", func(t *testing.T) {
		events[2].pages[0].ID = 99
		assert.Equal(t, 0, book.Pages[0].ID)
	})
}

func TestBookGenerator_Generate_AbortsOnFirstError(t *testing.T) {
	text := &fakeText{scenes: []string{"s1", "s2", "s3"}}
	img := &fakeImage{failAt: 3} // 表紙, ページ1 の次 (ページ2) で失敗
	g := newTestGenerator(t, text, img, 3)

	var events []progressEvent
	book, err := g.Generate(context.Background(), domain.BookRequest{Theme: "Ocean", ChildName: "Mia"}, recordProgress(&events))

	require.Error(t, err)
	assert.Nil(t, book)
	assert.ErrorIs(t, err, gemini.ErrNoImage)
	assert.Contains(t, err.Error(), "ページ 2")
	assert.Len(t, img.requests, 3, "失敗後に画像生成を続けてはいけません")
	assert.Equal(t, "Drawing page 2 of 3...", events[len(events)-1].message)
}

func TestBookGenerator_Generate_SceneError(t *testing.T) {
	text := &fakeText{err: gemini.ErrInvalidPromptFormat}
	img := &fakeImage{}
	g := newTestGenerator(t, text, img, 5)

	var events []progressEvent
	_, err := g.Generate(context.Background(), domain.BookRequest{Theme: "Ocean", ChildName: "Mia"}, recordProgress(&events))

	assert.ErrorIs(t, err, gemini.ErrInvalidPromptFormat)
	assert.Empty(t, img.requests)
	require.Len(t, events, 1)
	assert.Equal(t, MsgBrainstorming, events[0].message)
}

func TestBookGenerator_Generate_Validation(t *testing.T) {
	text := &fakeText{}
	g := newTestGenerator(t, text, &fakeImage{}, 5)

	called := false
	_, err := g.Generate(context.Background(), domain.BookRequest{Theme: "  ", ChildName: "Mia"}, func(string, []domain.Page) { called = true })

	assert.ErrorIs(t, err, domain.ErrMissingInput)
	assert.False(t, called)
	assert.Empty(t, text.prompts)
}

func TestBookGenerator_Generate_Canceled(t *testing.T) {
	text := &fakeText{scenes: []string{"s1", "s2"}}
	img := &fakeImage{}
	g := newTestGenerator(t, text, img, 2)

	ctx, cancel := context.WithCancel(context.Background())
	_, err := g.Generate(ctx, domain.BookRequest{Theme: "Ocean", ChildName: "Mia"}, func(message string, _ []domain.Page) {
		if message == MsgCoverCreated {
			cancel()
		}
	})

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Len(t, img.requests, 1)
}

func TestBookGenerator_RenderBook(t *testing.T) {
	img := &fakeImage{}
	g := newTestGenerator(t, &fakeText{}, img, 5)

	plan := domain.ScenePlan{Theme: "Farm", Prompts: []string{"a cow", "a pig"}}
	var events []progressEvent
	book, err := g.RenderBook(context.Background(), plan, "Sam", recordProgress(&events))
	require.NoError(t, err)

	assert.Len(t, book.Pages, 3)
	assert.Equal(t, "Drawing page 2 of 2...", events[len(events)-2].message)
	assert.True(t, strings.HasSuffix(img.requests[2].Prompt, "a pig"))

	t.Run("空のプラン", func(t *testing.T) {
		_, err := g.RenderBook(context.Background(), domain.ScenePlan{Theme: "Farm"}, "Sam", nil)
		assert.ErrorIs(t, err, ErrNoScenes)
	})
}

func TestBookGenerator_RenderCover(t *testing.T) {
	img := &fakeImage{}
	g := newTestGenerator(t, &fakeText{}, img, 5)

	page, err := g.RenderCover(context.Background(), "Robots", "Kai")
	require.NoError(t, err)

	assert.True(t, page.IsCover())
	assert.Equal(t, []byte("img-1"), page.ImageData)
	assert.Contains(t, page.Prompt, `The theme is "Robots".`)
}

func TestNewRateLimiter(t *testing.T) {
	assert.Nil(t, NewRateLimiter(0))
	assert.NotNil(t, NewRateLimiter(1))
}

func newLimitedGenerator(t *testing.T, text *fakeText, img *fakeImage, pageCount int, interval time.Duration) *BookGenerator {
	t.Helper()
	sp, err := prompts.NewTextPromptBuilder()
	require.NoError(t, err)
	composer := NewBookComposer(text, img, sp, prompts.NewImagePromptBuilder(""), NewRateLimiter(interval), pageCount, "")
	return NewBookGenerator(composer)
}

func TestBookGenerator_RateLimiter(t *testing.T) {
	t.Run("paces image calls", func(t *testing.T) {
		img := &fakeImage{}
		g := newLimitedGenerator(t, &fakeText{scenes: []string{"s1", "s2"}}, img, 2, 20*time.Millisecond)

		start := time.Now()
		_, err := g.Generate(context.Background(), domain.BookRequest{Theme: "Farm", ChildName: "Sam"}, nil)
		require.NoError(t, err)

		// 表紙は即時、2ページ分は間隔を空けて呼ばれる
		assert.Len(t, img.requests, 3)
		assert.GreaterOrEqual(t, time.Since(start), 35*time.Millisecond)
	})

	t.Run("deadline stops the page loop at the limiter", func(t *testing.T) {
		img := &fakeImage{}
		g := newLimitedGenerator(t, &fakeText{scenes: []string{"s1", "s2"}}, img, 2, time.Hour)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		var events []progressEvent
		book, err := g.Generate(ctx, domain.BookRequest{Theme: "Farm", ChildName: "Sam"}, recordProgress(&events))
		require.Error(t, err)
		assert.Nil(t, book)
		assert.ErrorContains(t, err, "ページ 1")

		// 表紙だけが描画され、1ページ目はリミッターで打ち切られる
		assert.Len(t, img.requests, 1)
		assert.Equal(t, "Drawing page 1 of 2...", events[len(events)-1].message)
	})

	t.Run("canceled context", func(t *testing.T) {
		img := &fakeImage{}
		g := newLimitedGenerator(t, &fakeText{}, img, 2, time.Hour)

		ctx, cancel := context.WithCancel(context.Background())
		_, err := g.RenderCover(ctx, "Farm", "Sam")
		require.NoError(t, err)

		cancel()
		_, err = g.composer.generateImage(ctx, "page", "a cow")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Len(t, img.requests, 1)
	})
}

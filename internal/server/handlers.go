package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shouni/go-coloring-kit/pkg/chat"
	"github.com/shouni/go-coloring-kit/pkg/domain"
	"github.com/shouni/go-coloring-kit/pkg/generator"
	"github.com/shouni/go-coloring-kit/pkg/workflow"
)

// MsgGenerationFailed は生成に失敗したときに利用者へ表示するメッセージです。
const MsgGenerationFailed = "An error occurred while creating your coloring book. Please try again."

// SSE のイベント名
const (
	EventProgress = "progress"
	EventDone     = "done"
	EventError    = "error"
)

type errorResponse struct {
	Error string `json:"error"`
}

type pagePayload struct {
	ID        int             `json:"id"`
	Type      domain.PageType `json:"type"`
	ImageData string          `json:"imageData"`
}

type progressPayload struct {
	Message string        `json:"message"`
	Pages   []pagePayload `json:"pages"`
}

type donePayload struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type bookResponse struct {
	ID        string        `json:"id"`
	Theme     string        `json:"theme"`
	ChildName string        `json:"childName"`
	Title     string        `json:"title"`
	Prompts   []string      `json:"prompts"`
	Pages     []pagePayload `json:"pages"`
	PDFURL    string        `json:"pdfUrl"`
}

type chatRequest struct {
	SessionID string `json:"sessionId"`
	Theme     string `json:"theme"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string               `json:"sessionId"`
	Reply     string               `json:"reply"`
	History   []domain.ChatMessage `json:"history"`
	Error     bool                 `json:"error,omitempty"`
}

type streamEvent struct {
	name string
	data any
}

func (s *Server) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// createBook はブックを生成し、進捗を Server-Sent Events で送ります。
// 入力の検証はストリーム開始前に行い、失敗した場合は 400 を返します。
func (s *Server) createBook(c *gin.Context) {
	var req domain.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: domain.ErrMissingInput.Error()})
		return
	}
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	bookRunner, err := s.workflow.BuildBookRunner()
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: MsgGenerationFailed})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	events := make(chan streamEvent, 4)
	go s.generate(ctx, bookRunner, req, events)

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(ev.name, ev.data)
			return true
		case <-ctx.Done():
			return false
		}
	})
}

// generate は BookRunner を実行し、進捗と結果を events に送ります。終了時に events を閉じます。
func (s *Server) generate(ctx context.Context, bookRunner workflow.BookRunner, req domain.BookRequest, events chan<- streamEvent) {
	defer close(events)

	send := func(ev streamEvent) {
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}

	book, err := bookRunner.Run(ctx, req, func(message string, pages []domain.Page) {
		send(streamEvent{name: EventProgress, data: progressPayload{Message: message, Pages: toPagePayloads(pages)}})
	})
	if err != nil {
		slog.ErrorContext(ctx, "塗り絵ブックの生成に失敗しました", "theme", req.Theme, "error", err)
		send(streamEvent{name: EventError, data: gin.H{"message": MsgGenerationFailed}})
		return
	}

	id := s.books.Save(book)
	slog.InfoContext(ctx, "塗り絵ブックを生成しました", "id", id, "theme", book.Theme, "pages", len(book.Pages))
	send(streamEvent{name: EventDone, data: donePayload{ID: id, Message: generator.MsgBookReady}})
}

func (s *Server) getBook(c *gin.Context) {
	book, err := s.books.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, bookResponse{
		ID:        book.ID,
		Theme:     book.Theme,
		ChildName: book.ChildName,
		Title:     book.Title(),
		Prompts:   book.Prompts,
		Pages:     toPagePayloads(book.Pages),
		PDFURL:    fmt.Sprintf("/api/books/%s/pdf", book.ID),
	})
}

func (s *Server) downloadPDF(c *gin.Context) {
	book, err := s.books.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	publishRunner, err := s.workflow.BuildPublishRunner()
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to prepare the PDF"})
		return
	}

	var buf bytes.Buffer
	if err := publishRunner.RenderPDF(&buf, book); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to create the PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, domain.PDFFileName(book.ChildName, book.Theme)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// sendChat はストーリーアイデアのチャットに1通送ります。
// モデルの応答に失敗した場合も 200 でお詫びの応答を返し、error を true にします。
func (s *Server) sendChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	id, assistant, err := s.chats.GetOrCreate(req.SessionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	reply, err := assistant.Send(c.Request.Context(), req.Theme, req.Message)
	if errors.Is(err, chat.ErrEmptyMessage) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, chatResponse{
		SessionID: id,
		Reply:     reply,
		History:   assistant.History(),
		Error:     err != nil,
	})
}

func toPagePayloads(pages []domain.Page) []pagePayload {
	out := make([]pagePayload, 0, len(pages))
	for _, p := range pages {
		out = append(out, pagePayload{
			ID:        p.ID,
			Type:      p.Type,
			ImageData: p.DataURI(),
		})
	}
	return out
}

package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"rsc.io/pdf"

	"github.com/shouni/go-coloring-kit/pkg/chat"
	"github.com/shouni/go-coloring-kit/pkg/config"
	"github.com/shouni/go-coloring-kit/pkg/domain"
	"github.com/shouni/go-coloring-kit/pkg/gemini"
	"github.com/shouni/go-coloring-kit/pkg/generator"
	"github.com/shouni/go-coloring-kit/pkg/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAI struct {
	jpeg     []byte
	imageErr error
	chatErr  error
}

func (s *stubAI) GenerateStringList(_ context.Context, _ string, n int) ([]string, error) {
	out := make([]string, n)
	for i := range out {
		out[i] = "a friendly whale"
	}
	return out, nil
}

func (s *stubAI) GenerateImage(_ context.Context, _ gemini.ImageRequest) (*gemini.ImageResponse, error) {
	if s.imageErr != nil {
		return nil, s.imageErr
	}
	return &gemini.ImageResponse{Data: s.jpeg, MimeType: "image/jpeg"}, nil
}

func (s *stubAI) StartChat(_ context.Context, _ string) (gemini.ChatSession, error) {
	return s, nil
}

func (s *stubAI) SendMessage(_ context.Context, message string) (string, error) {
	if s.chatErr != nil {
		return "", s.chatErr
	}
	return "echo: " + message, nil
}

type sseEvent struct {
	Name string
	Data string
}

func newTestServer(t *testing.T, ai *stubAI) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, 40, 30)), nil))
	ai.jpeg = buf.Bytes()

	cfg := config.DefaultConfig()
	cfg.PageCount = 2
	m, err := workflow.New(context.Background(), workflow.ManagerArgs{
		Config:         cfg,
		TextGenerator:  ai,
		ImageGenerator: ai,
		ChatStarter:    ai,
	})
	require.NoError(t, err)

	s := New(m, NewBookStore(0), chat.NewStore(0, m.NewAssistant))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

func readEvents(t *testing.T, r io.Reader) []sseEvent {
	t.Helper()
	var events []sseEvent
	var cur sseEvent
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			cur.Name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			cur.Data += strings.TrimPrefix(line, "data:")
		case line == "" && cur.Name != "":
			events = append(events, cur)
			cur = sseEvent{}
		}
	}
	require.NoError(t, sc.Err())
	return events
}

func TestCreateBook_StreamsProgressAndStoresBook(t *testing.T) {
	ts := newTestServer(t, &stubAI{})

	res := postJSON(t, ts.URL+"/api/books", domain.BookRequest{Theme: " Ocean ", ChildName: "Mia"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/event-stream")

	events := readEvents(t, res.Body)
	// Brainstorming, Designing, Cover created, 2 x (Drawing, Ready), done
	require.Len(t, events, 8)

	var first progressPayload
	require.NoError(t, json.Unmarshal([]byte(events[0].Data), &first))
	assert.Equal(t, EventProgress, events[0].Name)
	assert.Equal(t, generator.MsgBrainstorming, first.Message)
	assert.Empty(t, first.Pages)

	var coverDone progressPayload
	require.NoError(t, json.Unmarshal([]byte(events[2].Data), &coverDone))
	assert.Equal(t, generator.MsgCoverCreated, coverDone.Message)
	require.Len(t, coverDone.Pages, 1)
	assert.Equal(t, domain.PageTypeCover, coverDone.Pages[0].Type)
	assert.True(t, strings.HasPrefix(coverDone.Pages[0].ImageData, "data:image/jpeg;base64,"))

	var lastProgress progressPayload
	require.NoError(t, json.Unmarshal([]byte(events[6].Data), &lastProgress))
	assert.Equal(t, "Page 2 is ready!", lastProgress.Message)
	assert.Len(t, lastProgress.Pages, 3)

	last := events[len(events)-1]
	require.Equal(t, EventDone, last.Name)
	var done donePayload
	require.NoError(t, json.Unmarshal([]byte(last.Data), &done))
	assert.Equal(t, generator.MsgBookReady, done.Message)
	require.NotEmpty(t, done.ID)

	t.Run("get book", func(t *testing.T) {
		res, err := http.Get(ts.URL + "/api/books/" + done.ID)
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)

		var book bookResponse
		require.NoError(t, json.NewDecoder(res.Body).Decode(&book))
		assert.Equal(t, "Ocean", book.Theme)
		assert.Equal(t, "Mia's Coloring Book!", book.Title)
		assert.Len(t, book.Prompts, 2)
		assert.Len(t, book.Pages, 3)
		assert.Equal(t, "/api/books/"+done.ID+"/pdf", book.PDFURL)
	})

	t.Run("download pdf", func(t *testing.T) {
		res, err := http.Get(ts.URL + "/api/books/" + done.ID + "/pdf")
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "application/pdf", res.Header.Get("Content-Type"))
		assert.Contains(t, res.Header.Get("Content-Disposition"), `filename="mia_ocean_coloring_book.pdf"`)

		b, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		r, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
		require.NoError(t, err)
		assert.Equal(t, 3, r.NumPage())
	})
}

func TestCreateBook_Validation(t *testing.T) {
	ts := newTestServer(t, &stubAI{})

	tests := []struct {
		name string
		body any
	}{
		{name: "missing name", body: domain.BookRequest{Theme: "Ocean"}},
		{name: "blank theme", body: domain.BookRequest{Theme: "  ", ChildName: "Mia"}},
		{name: "not json", body: "theme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := postJSON(t, ts.URL+"/api/books", tt.body)
			assert.Equal(t, http.StatusBadRequest, res.StatusCode)

			var body errorResponse
			require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
			assert.Equal(t, domain.ErrMissingInput.Error(), body.Error)
		})
	}
}

func TestCreateBook_GenerationFailure(t *testing.T) {
	ts := newTestServer(t, &stubAI{imageErr: gemini.ErrNoImage})

	res := postJSON(t, ts.URL+"/api/books", domain.BookRequest{Theme: "Ocean", ChildName: "Mia"})
	require.Equal(t, http.StatusOK, res.StatusCode)

	events := readEvents(t, res.Body)
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, EventError, last.Name)
	assert.Contains(t, last.Data, MsgGenerationFailed)
	for _, ev := range events {
		assert.NotEqual(t, EventDone, ev.Name)
	}
}

func TestGetBook_NotFound(t *testing.T) {
	ts := newTestServer(t, &stubAI{})

	for _, path := range []string{"/api/books/missing", "/api/books/missing/pdf"} {
		res, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		_ = res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode, path)
	}
}

func TestSendChat(t *testing.T) {
	ts := newTestServer(t, &stubAI{})

	res := postJSON(t, ts.URL+"/api/chat", chatRequest{Theme: "Ocean", Message: "Any ideas?"})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var first chatResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&first))
	assert.NotEmpty(t, first.SessionID)
	assert.Equal(t, "echo: My coloring book theme is 'Ocean'. Any ideas?", first.Reply)
	assert.False(t, first.Error)
	require.Len(t, first.History, 2)
	assert.Equal(t, domain.ChatMessage{Role: domain.ChatRoleUser, Text: "Any ideas?"}, first.History[0])

	res = postJSON(t, ts.URL+"/api/chat", chatRequest{SessionID: first.SessionID, Theme: "Ocean", Message: "More!"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	var second chatResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&second))
	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Len(t, second.History, 4)

	t.Run("invalid session", func(t *testing.T) {
		res := postJSON(t, ts.URL+"/api/chat", chatRequest{SessionID: "not-a-uuid", Message: "hi"})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("empty message", func(t *testing.T) {
		res := postJSON(t, ts.URL+"/api/chat", chatRequest{SessionID: first.SessionID, Message: "   "})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})
}

func TestSendChat_FailureReturnsApology(t *testing.T) {
	ts := newTestServer(t, &stubAI{chatErr: errors.New("quota exceeded")})

	res := postJSON(t, ts.URL+"/api/chat", chatRequest{Theme: "Ocean", Message: "Hello"})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body chatResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.True(t, body.Error)
	assert.Equal(t, chat.ApologyReply, body.Reply)
	require.Len(t, body.History, 2)
	assert.Equal(t, chat.ApologyReply, body.History[1].Text)
}

func TestStaticAndOps(t *testing.T) {
	ts := newTestServer(t, &stubAI{})

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))

	res, err = http.Get(ts.URL + "/")
	require.NoError(t, err)
	page, err := io.ReadAll(res.Body)
	_ = res.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(page), "Coloring Book Creator")

	res, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	metricsBody, err := io.ReadAll(res.Body)
	_ = res.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(metricsBody), "coloring_kit_http_requests_total")
}

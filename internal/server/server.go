// Package server は塗り絵ブック生成を Web ブラウザから利用するための HTTP サービスです。
package server

import (
	"context"
	_ "embed"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-coloring-kit/pkg/chat"
	"github.com/shouni/go-coloring-kit/pkg/workflow"
)

const (
	// ShutdownTimeout はシャットダウン時に処理中のリクエストを待つ最大時間です。
	ShutdownTimeout = 30 * time.Second
	// readHeaderTimeout はリクエストヘッダの読み込みタイムアウトです。
	// ブック生成の SSE は長時間続くため WriteTimeout は設定しません。
	readHeaderTimeout = 10 * time.Second
)

//go:embed static/index.html
var indexHTML []byte

// Server は Gin エンジンと、生成済みブック・チャットセッションのストアを保持します。
type Server struct {
	workflow workflow.Workflow
	books    *BookStore
	chats    *chat.Store
	engine   *gin.Engine
}

// New はルーティングを設定した Server を返します。
func New(wf workflow.Workflow, books *BookStore, chats *chat.Store) *Server {
	s := &Server{
		workflow: wf,
		books:    books,
		chats:    chats,
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), corsMiddleware())

	r.GET("/", s.index)
	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/books", s.createBook)
		api.GET("/books/:id", s.getBook)
		api.GET("/books/:id/pdf", s.downloadPDF)
		api.POST("/chat", s.sendChat)
	}
	return r
}

// Handler は http.Handler としてのエンジンを返します。
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run は addr で待ち受けを開始し、ctx がキャンセルされるとグレースフルに停止します。
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("HTTP サーバーを起動します", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("HTTP サーバーを停止します...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("HTTP サーバーを停止しました")
	return nil
}

package cmd

import (
	"fmt"

	"github.com/shouni/go-coloring-kit/internal/builder"
	"github.com/shouni/go-coloring-kit/internal/server"
	"github.com/shouni/go-coloring-kit/pkg/chat"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var listenAddr string

// serveCmd は、ブラウザから塗り絵ブックを作れる HTTP サービスを起動します。
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "ブラウザ向けの HTTP サービスを起動します。",
	Long: `フォーム付きのページと JSON/SSE の API を提供します。
生成したブックとチャットのセッションはメモリ上にのみ保持され、一定時間で破棄されます。`,
	Example: "  coloring-kit serve --addr :8080",
	RunE:    serveCommand,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "待ち受けるアドレスです (既定: LISTEN_ADDR または :8080)。")
}

func serveCommand(cmd *cobra.Command, args []string) error {
	cfg := loadOptions()
	addr := listenAddr
	if addr == "" {
		addr = cfg.ListenAddr
	}

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	appCtx, err := builder.NewAppContext(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = appCtx.Close() }()

	srv := server.New(
		appCtx.Workflow,
		server.NewBookStore(server.DefaultBookTTL),
		chat.NewStore(chat.DefaultSessionTTL, appCtx.Workflow.NewAssistant),
	)
	if err := srv.Run(cmd.Context(), addr); err != nil {
		return fmt.Errorf("HTTP サーバーの実行中にエラーが発生しました: %w", err)
	}
	return nil
}

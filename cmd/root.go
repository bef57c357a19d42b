package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shouni/go-coloring-kit/internal/config"
	"github.com/shouni/go-coloring-kit/internal/ui"
	kitconfig "github.com/shouni/go-coloring-kit/pkg/config"

	"github.com/spf13/cobra"
)

var (
	// opts は各サブコマンドのフラグの値を保持します。
	opts    config.GenerateOptions
	verbose bool

	// appCfg は PersistentPreRunE で環境変数から読み込まれます。
	appCfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "coloring-kit",
	Short: "AI で子ども向けの塗り絵ブックを作ります。",
	Long: `テーマと子どもの名前から、表紙と白黒線画の塗り絵ページを生成し、PDF にまとめます。
シーンプロンプトだけの生成、保存済みプロンプトからの描画、アイデア出しのチャット、
ブラウザ向けの HTTP サービスも提供します。`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preRunAppE,
}

func init() {
	addAppFlags(rootCmd)
	rootCmd.AddCommand(
		generateCmd,
		promptsCmd,
		imageCmd,
		coverCmd,
		chatCmd,
		serveCmd,
	)
}

// addAppFlags は、すべてのサブコマンドに共通するフラグを定義します。
func addAppFlags(rootCmd *cobra.Command) {
	// --- 出力先 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "d", config.DefaultOutputDir, "生成物を保存するディレクトリです。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", "", "シーンプロンプトの生成に使う Gemini モデル名です (既定: GEMINI_MODEL または "+kitconfig.DefaultGeminiModel+")。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", "", "画像生成に使うモデル名です (既定: IMAGE_GEMINI_MODEL または "+kitconfig.DefaultImageModel+")。")
	rootCmd.PersistentFlags().StringVar(&opts.AspectRatio, "aspect-ratio", kitconfig.DefaultAspectRatio, "生成する画像のアスペクト比です。")
	rootCmd.PersistentFlags().IntVarP(&opts.PageCount, "pages", "p", kitconfig.DefaultPageCount, "塗り絵ページの枚数です (表紙を除く)。")

	// --- 実行制御 ---
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "モデル呼び出し1回あたりのタイムアウトです。")
	rootCmd.PersistentFlags().DurationVar(&opts.RateInterval, "rate-interval", kitconfig.DefaultRateInterval, "画像生成リクエストの最小間隔です (0 で無制限)。")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "デバッグログを出力します。")
}

// preRunAppE は、ロガーを設定し、環境変数から設定を読み込んで認証情報の有無を確認します。
func preRunAppE(cmd *cobra.Command, args []string) error {
	setupLogger(verbose)

	appCfg = config.LoadConfig()
	if !appCfg.HasCredentials() {
		return fmt.Errorf("環境変数 GEMINI_API_KEY (または PROJECT_ID と REGION) が設定されていません")
	}
	if opts.PageCount <= 0 {
		return fmt.Errorf("--pages には 1 以上を指定してください: %d", opts.PageCount)
	}
	return nil
}

func setupLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadOptions は、フラグの値を反映した設定を返します。
func loadOptions() *config.Config {
	appCfg.Options = opts
	return appCfg
}

// Execute は、アプリケーションのメインエントリポイントです。
// SIGINT/SIGTERM を受けると実行中のコマンドのコンテキストをキャンセルします。
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:], os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// execute は args でルートコマンドを実行し、エラーがあれば errOut に表示します。
func execute(ctx context.Context, args []string, errOut io.Writer) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		ui.Error(errOut, "%v", err)
	}
	return err
}

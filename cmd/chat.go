package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-coloring-kit/internal/builder"
	"github.com/shouni/go-coloring-kit/internal/ui"

	"github.com/spf13/cobra"
)

// chatCmd は、ストーリーアイデアを相談する対話モードを開始します。
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "塗り絵ブックのアイデアを AI と相談します。",
	Long: `テーマを伝えながら、塗り絵にしたい場面やお話のアイデアを会話で考えます。
"exit" または "quit" で終了します。`,
	RunE: chatCommand,
}

func init() {
	chatCmd.Flags().StringVarP(&opts.Theme, "theme", "t", "", "相談したい塗り絵ブックのテーマです。")
}

func chatCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	appCtx, err := builder.NewAppContext(ctx, loadOptions())
	if err != nil {
		return err
	}
	defer func() { _ = appCtx.Close() }()
	chatRunner, err := appCtx.Workflow.BuildChatRunner()
	if err != nil {
		return fmt.Errorf("ChatRunnerの構築に失敗しました: %w", err)
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	fmt.Fprintln(out, `アイデアを相談しましょう。終了するには "exit" と入力してください。`)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		message := scanner.Text()
		switch strings.TrimSpace(message) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		spinner := ui.NewSpinner(errOut, "考え中...")
		spinner.Start()
		reply, err := chatRunner.Run(ctx, opts.Theme, message)
		spinner.Stop()

		if err != nil {
			slog.Debug("チャットの応答取得に失敗しました", "error", err)
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
		ui.Assistant(out, reply)
	}

	return scanner.Err()
}

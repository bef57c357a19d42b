package cmd

import (
	"fmt"

	"github.com/shouni/go-coloring-kit/internal/pipeline"
	"github.com/shouni/go-coloring-kit/internal/ui"

	"github.com/spf13/cobra"
)

// promptsCmd は、シーンプロンプトの生成 (JSON 出力) のみを実行します。
var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "シーンプロンプト (JSON) のみを生成して保存します。",
	Long: `テーマから塗り絵ページのシーンを考え、JSON 形式で保存します。画像生成は行いません。
保存した JSON は編集してから image コマンドで描画できます。`,
	RunE: promptsCommand,
}

func init() {
	promptsCmd.Flags().StringVarP(&opts.Theme, "theme", "t", "", "塗り絵ブックのテーマです。")
	promptsCmd.Flags().StringVarP(&opts.OutputFile, "output-file", "o", "", "保存先のパスです (既定: <output-dir>/prompts.json)。")
	_ = promptsCmd.MarkFlagRequired("theme")
}

func promptsCommand(cmd *cobra.Command, args []string) error {
	path, err := pipeline.ExecutePromptsOnly(cmd.Context(), loadOptions())
	if err != nil {
		return fmt.Errorf("シーンプロンプトの生成中にエラーが発生しました: %w", err)
	}

	ui.Success(cmd.OutOrStdout(), "シーンプロンプトを保存しました: %s", path)
	return nil
}

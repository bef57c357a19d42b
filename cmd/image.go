package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/shouni/go-coloring-kit/internal/config"
	"github.com/shouni/go-coloring-kit/internal/pipeline"
	"github.com/shouni/go-coloring-kit/internal/ui"
	"github.com/shouni/go-coloring-kit/pkg/asset"

	"github.com/spf13/cobra"
)

// imageCmd は、保存済みのシーンプロンプト JSON を読み込んで描画と保存を実行します。
// テキスト生成をスキップして、表紙・ページの描画と PDF の保存のみを行います。
var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "シーンプロンプト JSON から塗り絵ブックを描画して保存します。",
	Long: `prompts コマンドで保存 (または手で編集) したシーンプロンプトを読み込み、
表紙と各ページの線画を描いて PDF にまとめます。`,
	Example: "  coloring-kit image -f output/prompts.json --name Mia",
	RunE:    imageCommand,
}

func init() {
	imageCmd.Flags().StringVarP(&opts.PlanFile, "plan-file", "f", filepath.Join(config.DefaultOutputDir, asset.DefaultPromptsJSON), "読み込むシーンプロンプト JSON のパスです。")
	imageCmd.Flags().StringVarP(&opts.ChildName, "name", "n", "", "表紙に入れる子どもの名前です。")
	_ = imageCmd.MarkFlagRequired("name")
}

func imageCommand(cmd *cobra.Command, args []string) error {
	slog.Info("シーンプロンプトから描画を開始します", "plan_file", opts.PlanFile, "output_dir", opts.OutputDir)

	result, err := pipeline.ExecuteImageOnly(cmd.Context(), loadOptions())
	if err != nil {
		return fmt.Errorf("描画中にエラーが発生しました: %w", err)
	}

	ui.Success(cmd.OutOrStdout(), "PDF を保存しました: %s", result.PDFPath)
	return nil
}

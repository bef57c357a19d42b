package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-coloring-kit/internal/pipeline"
	"github.com/shouni/go-coloring-kit/internal/ui"

	"github.com/spf13/cobra"
)

// generateCmd は、シーンプロンプトの生成から PDF の保存までを一括で実行します。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "テーマと名前から塗り絵ブックを生成して PDF に保存します。",
	Long: `テーマからシーンプロンプトを考え、表紙と各ページの線画を順番に描き、
PDF・画像・プロンプト (JSON) を出力ディレクトリに保存します。`,
	Example: `  coloring-kit generate --theme "Space dinosaurs" --name Mia --pages 5`,
	RunE:    generateCommand,
}

func init() {
	generateCmd.Flags().StringVarP(&opts.Theme, "theme", "t", "", "塗り絵ブックのテーマです。")
	generateCmd.Flags().StringVarP(&opts.ChildName, "name", "n", "", "表紙に入れる子どもの名前です。")
	_ = generateCmd.MarkFlagRequired("theme")
	_ = generateCmd.MarkFlagRequired("name")
}

func generateCommand(cmd *cobra.Command, args []string) error {
	cfg := loadOptions()

	slog.Info("塗り絵ブックの生成を開始します",
		"theme", opts.Theme,
		"name", opts.ChildName,
		"pages", opts.PageCount,
		"output_dir", opts.OutputDir)

	result, err := pipeline.Execute(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("塗り絵ブックの生成中にエラーが発生しました: %w", err)
	}

	ui.Success(cmd.OutOrStdout(), "PDF を保存しました: %s", result.PDFPath)
	return nil
}

package cmd

import (
	"fmt"

	"github.com/shouni/go-coloring-kit/internal/pipeline"
	"github.com/shouni/go-coloring-kit/internal/ui"

	"github.com/spf13/cobra"
)

// coverCmd は、表紙だけを生成して画像として保存します。
var coverCmd = &cobra.Command{
	Use:   "cover",
	Short: "表紙だけを生成して保存します。",
	Long:  "ページを描く前に、タイトル入りの表紙の仕上がりを確認したいときに使います。",
	RunE:  coverCommand,
}

func init() {
	coverCmd.Flags().StringVarP(&opts.Theme, "theme", "t", "", "塗り絵ブックのテーマです。")
	coverCmd.Flags().StringVarP(&opts.ChildName, "name", "n", "", "表紙に入れる子どもの名前です。")
	_ = coverCmd.MarkFlagRequired("theme")
	_ = coverCmd.MarkFlagRequired("name")
}

func coverCommand(cmd *cobra.Command, args []string) error {
	path, err := pipeline.ExecuteCoverOnly(cmd.Context(), loadOptions())
	if err != nil {
		return fmt.Errorf("表紙の生成中にエラーが発生しました: %w", err)
	}

	ui.Success(cmd.OutOrStdout(), "表紙を保存しました: %s", path)
	return nil
}

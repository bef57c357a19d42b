package main

import (
	"github.com/shouni/go-coloring-kit/cmd"
)

// main はアプリケーションのエントリーポイントです。
// コマンドライン引数の解析と実行はすべて cmd パッケージに委ねます。
func main() {
	cmd.Execute()
}

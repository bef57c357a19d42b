package domain

import (
	"fmt"
	"strings"
)

// fileNameSanitizer はファイル名として使用できない文字を置換します。
var fileNameSanitizer = strings.NewReplacer(
	" ", "_",
	"/", "_",
	`\`, "_",
	":", "_",
	"*", "_",
	"?", "_",
	`"`, "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// PDFFileName は "<name>_<theme>_coloring_book.pdf" 形式のファイル名を返します。
// 英字は小文字に揃え、空白は "_" に置き換えます。
func PDFFileName(childName, theme string) string {
	return fmt.Sprintf("%s_%s_coloring_book.pdf", sanitize(childName), sanitize(theme))
}

func sanitize(s string) string {
	return fileNameSanitizer.Replace(strings.ToLower(strings.TrimSpace(s)))
}

package gemini

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

var jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*\\S)\\s*```")

// ParseStringList は AI の応答から JSON 文字列配列を取り出し、要素数が n であることを検証します。
// n が 0 以下の場合は要素数を検証しません。
func ParseStringList(raw string, n int) ([]string, error) {
	raw = strings.TrimSpace(raw)
	var rawJSON string

	matches := jsonBlockRegex.FindStringSubmatch(raw)
	if len(matches) > 1 {
		rawJSON = matches[1]
	} else {
		first := strings.Index(raw, "[")
		last := strings.LastIndex(raw, "]")
		if first != -1 && last > first {
			rawJSON = raw[first : last+1]
		} else {
			rawJSON = raw
		}
	}

	var list []string
	if err := json.Unmarshal([]byte(rawJSON), &list); err != nil {
		slog.Warn("AIの応答を文字列配列として解析できませんでした", "response", truncateString(raw, 200), "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPromptFormat, err)
	}

	if n > 0 && len(list) != n {
		return nil, fmt.Errorf("%w: %d 件を期待しましたが %d 件でした", ErrInvalidPromptFormat, n, len(list))
	}
	for i, s := range list {
		if strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("%w: %d 番目の要素が空です", ErrInvalidPromptFormat, i+1)
		}
	}

	return list, nil
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

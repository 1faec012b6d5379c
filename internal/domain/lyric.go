package domain

import "strings"

// SplitLyricLines は入力テキストを歌詞行の列に変換します。
// 改行で分割し、前後の空白を除去したうえで空行を捨てます。
// 行の順序は入力のまま保持され、重複行も除去しません（出力順を決めるため）。
func SplitLyricLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

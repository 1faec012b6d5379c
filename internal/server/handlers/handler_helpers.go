package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"lyric-story-web/internal/domain"
)

// render は HTML テンプレートをレンダリングし、レスポンスを書き込みます。
func (h *Handler) render(w http.ResponseWriter, status int, pageName string, title string, data any) {
	tmpl, ok := h.templateCache[pageName]
	if !ok {
		slog.Error("キャッシュ内にテンプレートが見つかりません", "page", pageName)
		http.Error(w, "システムエラーが発生しました（テンプレート未定義）", http.StatusInternalServerError)
		return
	}

	renderData := struct {
		Title string
		Data  any
	}{
		Title: title + titleSuffix,
		Data:  data,
	}

	var buf bytes.Buffer
	// レイアウトファイルをベースに実行します
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", renderData); err != nil {
		slog.Error("テンプレートのレンダリングに失敗しました", "page", pageName, "error", err)
		http.Error(w, "画面の表示中にエラーが発生しました", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("レスポンスの書き込みに失敗しました", "error", err)
	}
}

// splitColumns は挿入順を保ったまま画像をラウンドロビンで列に振り分けます。
// 画像 i は列 i mod n に入ります。n は画像数と maxColumns の小さい方です。
func splitColumns(images []domain.GeneratedImage, maxColumns int) [][]domain.GeneratedImage {
	if len(images) == 0 {
		return nil
	}

	n := maxColumns
	if n < 1 {
		n = 1
	}
	if len(images) < n {
		n = len(images)
	}

	columns := make([][]domain.GeneratedImage, n)
	for i, img := range images {
		columns[i%n] = append(columns[i%n], img)
	}
	return columns
}

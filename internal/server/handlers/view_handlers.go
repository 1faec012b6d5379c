package handlers

import (
	"net/http"

	"lyric-story-web/internal/domain"
)

// indexView は入力フォーム画面の表示データです。
type indexView struct {
	MaxImagesPerLine int
	Warning          string
}

// storyView は生成結果画面の表示データです。
// Columns は挿入順をラウンドロビンで列に割り当てたグリッドです。
type storyView struct {
	RunID      string
	LineCount  int
	ImageCount int
	Columns    [][]domain.GeneratedImage
	Failures   []domain.LineFailure
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "index.html", "Generate", indexView{
		MaxImagesPerLine: h.cfg.MaxImagesPerLine,
	})
}

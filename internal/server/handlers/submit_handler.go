package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"lyric-story-web/internal/config"
	"lyric-story-web/internal/domain"
)

// HandleSubmit は歌詞フォームの送信を受け付け、生成実行を同期的に駆動します。
// 実行中に再送信された場合は 409 を返し、進行中の実行には影響を与えません。
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.Warn("フォームの解析に失敗しました", "error", err)
		http.Error(w, "リクエストの解析に失敗しました", http.StatusBadRequest)
		return
	}

	lyrics := r.FormValue("lyrics")
	lines := domain.SplitLyricLines(lyrics)
	if len(lines) == 0 {
		h.render(w, http.StatusBadRequest, "index.html", "Generate", indexView{
			MaxImagesPerLine: h.cfg.MaxImagesPerLine,
			Warning:          "歌詞を入力してください。空行のみの入力は処理できません。",
		})
		return
	}

	imagesPerLine, err := strconv.Atoi(r.FormValue("images_per_line"))
	if err != nil {
		imagesPerLine = 1
	}
	if imagesPerLine < 1 || imagesPerLine > h.cfg.MaxImagesPerLine {
		slog.WarnContext(r.Context(), "images_per_line が許容範囲外です", "input", imagesPerLine, "max", h.cfg.MaxImagesPerLine)
		http.Error(w, "1行あたりの画像数が許容範囲外です", http.StatusBadRequest)
		return
	}

	if !h.mu.TryLock() {
		slog.WarnContext(r.Context(), "生成実行中の再送信を拒否しました", "error", domain.ErrBusy)
		http.Error(w, "生成処理が実行中です。完了後に再度お試しください。", http.StatusConflict)
		return
	}
	defer h.mu.Unlock()

	if err := h.runner.Execute(r.Context(), lyrics, imagesPerLine, &h.result); err != nil {
		if errors.Is(err, domain.ErrNoLyricLines) {
			h.render(w, http.StatusBadRequest, "index.html", "Generate", indexView{
				MaxImagesPerLine: h.cfg.MaxImagesPerLine,
				Warning:          "歌詞を入力してください。空行のみの入力は処理できません。",
			})
			return
		}

		slog.ErrorContext(r.Context(), "生成実行に失敗しました", "error", err)
		h.notifyError(r, err)
		http.Error(w, "生成処理に失敗しました。管理者にお問い合わせください。", http.StatusInternalServerError)
		return
	}

	h.notifyCompletion(r, len(lines))

	h.render(w, http.StatusOK, "story.html", "Story", storyView{
		RunID:      h.result.RunID,
		LineCount:  len(lines),
		ImageCount: h.result.Len(),
		Columns:    splitColumns(h.result.Images(), config.DefaultMaxImagesPerRow),
		Failures:   h.result.Failures(),
	})
}

// notifyCompletion は実行サマリーを Slack へ送信します。通知の失敗は応答に影響させません。
func (h *Handler) notifyCompletion(r *http.Request, lineCount int) {
	if h.notifier == nil {
		return
	}

	req := domain.NotificationRequest{
		RunID:        h.result.RunID,
		LineCount:    lineCount,
		ImageCount:   h.result.Len(),
		FailureCount: len(h.result.Failures()),
		Backend:      h.cfg.ImageBackend,
	}
	if err := h.notifier.Notify(r.Context(), req); err != nil {
		slog.WarnContext(r.Context(), "Slack 通知の送信に失敗しました", "error", err)
	}
}

func (h *Handler) notifyError(r *http.Request, cause error) {
	if h.notifier == nil {
		return
	}

	req := domain.NotificationRequest{
		RunID:   h.result.RunID,
		Backend: h.cfg.ImageBackend,
	}
	if err := h.notifier.NotifyError(r.Context(), cause, req); err != nil {
		slog.WarnContext(r.Context(), "Slack エラー通知の送信に失敗しました", "error", err)
	}
}

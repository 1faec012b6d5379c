package pipeline

import (
	"context"
	"log/slog"
	"time"

	"lyric-story-web/internal/domain"
)

// Reporter は生成の進行状況を呼び出し側へ伝える境界です。
// Webハンドラーは表示用にイベントを収集し、既定実装は slog へ流します。
type Reporter interface {
	// RunStarted は有効な歌詞行の確定後、最初の生成前に一度だけ呼ばれます。
	RunStarted(ctx context.Context, runID string, lineCount, imagesPerLine int)

	// RetryScheduled は一時的失敗の後、待機が始まる前に試行ごとに呼ばれます。
	RetryScheduled(ctx context.Context, runID, line string, attempt, maxAttempts int, wait time.Duration, err error)

	// LineFinished は1行分の画像が結果へ追記された後に呼ばれます。
	LineFinished(ctx context.Context, runID string, index int, line string, imageCount int)

	// LineFailed はリトライ枯渇・空応答・予期しないエラーで行が失敗したときに呼ばれます。
	LineFailed(ctx context.Context, runID string, index int, line string, err error)

	// RunCompleted は個々の行の成否に関わらず、全行の処理後に一度だけ呼ばれます。
	RunCompleted(ctx context.Context, runID string, result *domain.StoryResult)
}

// SlogReporter は進行状況を構造化ログとして出力する既定の Reporter です。
type SlogReporter struct{}

func (SlogReporter) RunStarted(ctx context.Context, runID string, lineCount, imagesPerLine int) {
	slog.InfoContext(ctx, "Generation run started",
		"run_id", runID,
		"lines", lineCount,
		"images_per_line", imagesPerLine,
	)
}

func (SlogReporter) RetryScheduled(ctx context.Context, runID, line string, attempt, maxAttempts int, wait time.Duration, err error) {
	slog.WarnContext(ctx, "Generation call failed, retrying",
		"run_id", runID,
		"line", line,
		"attempt", attempt,
		"max_attempts", maxAttempts,
		"wait", wait.String(),
		"error", err,
	)
}

func (SlogReporter) LineFinished(ctx context.Context, runID string, index int, line string, imageCount int) {
	slog.InfoContext(ctx, "Line processed",
		"run_id", runID,
		"line_index", index,
		"line", line,
		"images", imageCount,
	)
}

func (SlogReporter) LineFailed(ctx context.Context, runID string, index int, line string, err error) {
	slog.ErrorContext(ctx, "Line failed",
		"run_id", runID,
		"line_index", index,
		"line", line,
		"error", err,
	)
}

func (SlogReporter) RunCompleted(ctx context.Context, runID string, result *domain.StoryResult) {
	slog.InfoContext(ctx, "Generation run completed",
		"run_id", runID,
		"images", result.Len(),
		"failed_lines", len(result.Failures()),
	)
}

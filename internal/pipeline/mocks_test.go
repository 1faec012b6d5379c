package pipeline

import (
	"context"
	"time"

	"lyric-story-web/internal/domain"
	"lyric-story-web/internal/generator"
)

// --- Mocks ---

// mockGenerator は ImageGenerator のテスト用モックです。
// 呼び出しごとの応答を generateFunc で制御します。
type mockGenerator struct {
	calls        int
	prompts      []string
	generateFunc func(call int, req domain.GenerationRequest) ([]generator.ImageRef, error)
}

func (m *mockGenerator) Generate(ctx context.Context, req domain.GenerationRequest) ([]generator.ImageRef, error) {
	m.calls++
	m.prompts = append(m.prompts, req.Prompt)
	if m.generateFunc != nil {
		return m.generateFunc(m.calls, req)
	}
	return []generator.ImageRef{{Data: []byte("ok"), MimeType: "image/png"}}, nil
}

// recordingReporter は発火したイベントを記録する Reporter です。
type recordingReporter struct {
	started    int
	retries    []time.Duration
	finished   []string
	failed     []string
	completed  int
	lastRunIDs []string
}

func (r *recordingReporter) RunStarted(ctx context.Context, runID string, lineCount, imagesPerLine int) {
	r.started++
	r.lastRunIDs = append(r.lastRunIDs, runID)
}

func (r *recordingReporter) RetryScheduled(ctx context.Context, runID, line string, attempt, maxAttempts int, wait time.Duration, err error) {
	r.retries = append(r.retries, wait)
}

func (r *recordingReporter) LineFinished(ctx context.Context, runID string, index int, line string, imageCount int) {
	r.finished = append(r.finished, line)
}

func (r *recordingReporter) LineFailed(ctx context.Context, runID string, index int, line string, err error) {
	r.failed = append(r.failed, line)
}

func (r *recordingReporter) RunCompleted(ctx context.Context, runID string, result *domain.StoryResult) {
	r.completed++
}

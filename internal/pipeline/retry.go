package pipeline

import (
	"context"
	"fmt"
	"time"

	"lyric-story-web/internal/domain"
	"lyric-story-web/internal/generator"
)

// generateWithRetry は1行分の生成呼び出しを上限付き指数バックオフで実行します。
//
// 試行は 0 始まりで数え、一時的失敗のたびに baseDelay * 2^attempt だけ待機します
// (既定では 1, 2, 4, 8 秒)。最終試行の失敗は待機せずそのまま返します。
// 空応答などリトライ対象でない失敗は即座に返します。
func (p *StoryPipeline) generateWithRetry(ctx context.Context, runID, line string, req domain.GenerationRequest) ([]generator.ImageRef, error) {
	var lastErr error

	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		refs, err := p.gen.Generate(ctx, req)
		if err == nil {
			return refs, nil
		}
		lastErr = err

		if !domain.IsTransient(err) {
			return nil, err
		}
		if attempt == p.maxAttempts-1 {
			break
		}

		wait := p.baseDelay * time.Duration(1<<attempt)
		p.reporter.RetryScheduled(ctx, runID, line, attempt+1, p.maxAttempts, wait, err)

		if err := p.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("exceeded maximum retry attempts (%d): %w", p.maxAttempts, lastErr)
}

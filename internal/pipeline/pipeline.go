package pipeline

import (
	"context"
	"fmt"
	"time"

	"lyric-story-web/internal/config"
	"lyric-story-web/internal/domain"
	"lyric-story-web/internal/generator"

	"github.com/google/uuid"
)

// StoryPipeline は歌詞テキストから画像列を生成する一連の流れを管理します。
// 行の抽出 → プロンプト構築 → 上限付きリトライでの生成 → 結果への追記、を
// 行ごとに順次実行します。並列化は外部レートリミットへの配慮から行いません。
type StoryPipeline struct {
	gen      generator.ImageGenerator
	reporter Reporter

	stylePrefix  string
	aspectRatio  string
	rateInterval time.Duration
	maxAttempts  int
	baseDelay    time.Duration

	// sleep はテストから待機を観測できるよう差し替え可能にしています。
	sleep func(ctx context.Context, d time.Duration) error
}

// NewStoryPipeline は依存関係と設定を注入して初期化します。
func NewStoryPipeline(gen generator.ImageGenerator, reporter Reporter, cfg *config.Config) (*StoryPipeline, error) {
	if gen == nil {
		return nil, fmt.Errorf("gen (ImageGenerator) is required")
	}
	if reporter == nil {
		reporter = SlogReporter{}
	}

	return &StoryPipeline{
		gen:          gen,
		reporter:     reporter,
		stylePrefix:  cfg.StylePrefix,
		aspectRatio:  cfg.AspectRatio,
		rateInterval: cfg.RateInterval,
		maxAttempts:  cfg.MaxAttempts,
		baseDelay:    cfg.RetryBaseDelay,
		sleep:        sleepContext,
	}, nil
}

// BuildPrompt は歌詞行を固定スタイルのプロンプト文字列に変換します。
// 純粋関数であり、同じ行に対しては常に同一の文字列を返します。
func (p *StoryPipeline) BuildPrompt(line string) string {
	return fmt.Sprintf("%s: '%s'", p.stylePrefix, line)
}

// Execute は1回の生成実行を駆動します。
// result は呼び出し側が所有し、実行開始時に必ず全消去されます。
// 行単位の失敗は result に記録して後続行へ進み、全行の処理後に nil を返します。
// 入力に有効な行が無い場合のみ domain.ErrNoLyricLines を返します。
func (p *StoryPipeline) Execute(ctx context.Context, rawLyrics string, imagesPerLine int, result *domain.StoryResult) error {
	lines := domain.SplitLyricLines(rawLyrics)
	if len(lines) == 0 {
		return domain.ErrNoLyricLines
	}
	if imagesPerLine < 1 {
		imagesPerLine = 1
	}

	runID := uuid.NewString()[:8]
	result.Reset(runID)

	p.reporter.RunStarted(ctx, runID, len(lines), imagesPerLine)

	for i, line := range lines {
		p.processLine(ctx, runID, i, line, imagesPerLine, result)

		// 外部 API のレートリミットを踏まないよう行間に小休止を挟みます。
		_ = p.sleep(ctx, p.rateInterval)
	}

	p.reporter.RunCompleted(ctx, runID, result)
	return nil
}

// processLine は1行分の生成を実行し、失敗を行内に隔離します。
func (p *StoryPipeline) processLine(ctx context.Context, runID string, index int, line string, count int, result *domain.StoryResult) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("unexpected error: %v", r)
			result.AddFailure(index, line, err.Error())
			p.reporter.LineFailed(ctx, runID, index, line, err)
		}
	}()

	req := domain.GenerationRequest{
		Prompt:      p.BuildPrompt(line),
		Count:       count,
		AspectRatio: p.aspectRatio,
	}

	refs, err := p.generateWithRetry(ctx, runID, line, req)
	if err != nil {
		result.AddFailure(index, line, err.Error())
		p.reporter.LineFailed(ctx, runID, index, line, err)
		return
	}

	// 生成され次第1枚ずつ追記します。後続行が失敗しても部分結果が残ります。
	for j, ref := range refs {
		img := domain.NewGeneratedImage(line, index, j+1)
		img.Data = ref.Data
		img.MimeType = ref.MimeType
		img.URL = ref.URL
		result.Append(img)
	}

	p.reporter.LineFinished(ctx, runID, index, line, len(refs))
}

// sleepContext はコンテキストのキャンセルを尊重しつつ待機します。
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package builder

import (
	"context"
	"fmt"

	"lyric-story-web/internal/adapters"
	"lyric-story-web/internal/config"
	"lyric-story-web/internal/generator"
	"lyric-story-web/internal/pipeline"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// AppContext はアプリケーションの依存関係を保持します。
// 各フィールドをインターフェースで定義することで、将来的なモック利用を容易にします。
type AppContext struct {
	Config        *config.Config
	HTTPClient    httpkit.ClientInterface
	Generator     generator.ImageGenerator
	Pipeline      *pipeline.StoryPipeline
	SlackNotifier adapters.SlackNotifier
}

// BuildAppContext は外部サービスとの接続を確立し、依存関係を組み立てます。
func BuildAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	// 1. 基盤クライアントの初期化
	httpClient := httpkit.New(config.DefaultHTTPTimeout)

	// 2. 画像生成バックエンドの構築
	gen, err := buildImageGenerator(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build image generator: %w", err)
	}

	// 3. パイプラインの構築
	storyPipeline, err := pipeline.NewStoryPipeline(gen, pipeline.SlogReporter{}, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create story pipeline: %w", err)
	}

	// 4. アダプターの初期化
	slack, err := adapters.NewSlackAdapter(httpClient, cfg.SlackWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Slack adapter: %w", err)
	}

	return &AppContext{
		Config:        cfg,
		HTTPClient:    httpClient,
		Generator:     gen,
		Pipeline:      storyPipeline,
		SlackNotifier: slack,
	}, nil
}

package handlers

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sync"

	"lyric-story-web/internal/adapters"
	"lyric-story-web/internal/config"
	"lyric-story-web/internal/domain"
)

const titleSuffix = " - Lyric Story Web"

// StoryRunner は1回の生成実行を駆動するインターフェースです。
// 実装は *pipeline.StoryPipeline ですが、ハンドラーのテストではモックに差し替えます。
type StoryRunner interface {
	Execute(ctx context.Context, rawLyrics string, imagesPerLine int, result *domain.StoryResult) error
}

type Handler struct {
	cfg           *config.Config
	templateCache map[string]*template.Template
	runner        StoryRunner
	notifier      adapters.SlackNotifier

	// mu は生成実行を同時に1つへ制限します。実行中の再送信は 409 を返します。
	mu     sync.Mutex
	result domain.StoryResult
}

// NewHandler は指定された構成に基づいて新しいハンドラーを初期化します。
// テンプレートをコンパイルし、レイアウトファイルが存在することを確認します。
func NewHandler(cfg *config.Config, runner StoryRunner, notifier adapters.SlackNotifier) (*Handler, error) {
	if runner == nil {
		return nil, fmt.Errorf("runner (StoryRunner) is required")
	}

	cache := make(map[string]*template.Template)
	layoutPath := filepath.Join(cfg.TemplateDir, "layout.html")
	if _, err := os.Stat(layoutPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("レイアウトテンプレートが見つかりません: %s", layoutPath)
	}

	pagePaths, err := filepath.Glob(filepath.Join(cfg.TemplateDir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("ページテンプレートの検索に失敗しました: %w", err)
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		// data URL スキームが html/template のサニタイズで落とされないようにします。
		"safeURL": func(s string) template.URL { return template.URL(s) },
		"seq": func(n int) []int {
			s := make([]int, 0, n)
			for i := 1; i <= n; i++ {
				s = append(s, i)
			}
			return s
		},
	}

	for _, pagePath := range pagePaths {
		pageName := filepath.Base(pagePath)
		if pageName == "layout.html" {
			continue
		}

		tmpl := template.New(pageName).Funcs(funcMap)
		tmpl, err = tmpl.ParseFiles(layoutPath, pagePath)
		if err != nil {
			return nil, fmt.Errorf("テンプレート %s の解析に失敗しました: %w", pageName, err)
		}
		cache[pageName] = tmpl
	}

	return &Handler{
		cfg:           cfg,
		templateCache: cache,
		runner:        runner,
		notifier:      notifier,
	}, nil
}

package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lyric-story-web/internal/config"
	"lyric-story-web/internal/domain"

	"github.com/stretchr/testify/require"
)

// --- Mocks ---

// mockRunner は StoryRunner のテスト用モックです。
type mockRunner struct {
	calls       int
	lastLyrics  string
	lastCount   int
	executeFunc func(ctx context.Context, rawLyrics string, imagesPerLine int, result *domain.StoryResult) error
}

func (m *mockRunner) Execute(ctx context.Context, rawLyrics string, imagesPerLine int, result *domain.StoryResult) error {
	m.calls++
	m.lastLyrics = rawLyrics
	m.lastCount = imagesPerLine
	if m.executeFunc != nil {
		return m.executeFunc(ctx, rawLyrics, imagesPerLine, result)
	}
	result.Reset("test-run")
	result.Append(domain.NewGeneratedImage("line", 0, 1))
	return nil
}

// mockNotifier は SlackNotifier のテスト用モックです。
type mockNotifier struct {
	notified    []domain.NotificationRequest
	errNotified []error
}

func (m *mockNotifier) Notify(ctx context.Context, req domain.NotificationRequest) error {
	m.notified = append(m.notified, req)
	return nil
}

func (m *mockNotifier) NotifyError(ctx context.Context, errDetail error, req domain.NotificationRequest) error {
	m.errNotified = append(m.errNotified, errDetail)
	return nil
}

// --- テスト用テンプレート ---

const testLayout = `{{template "content" .}}`

const testIndex = `{{define "content"}}index{{with .Data.Warning}} warning: {{.}}{{end}}{{end}}`

const testStory = `{{define "content"}}run={{.Data.RunID}} images={{.Data.ImageCount}}
{{- range .Data.Failures}} failure: {{.Message}}{{end}}
{{- range $col := .Data.Columns}} col:{{range $col}}[{{.Caption}}]{{end}}{{end}}{{end}}`

// writeTestTemplates は一時ディレクトリに最小構成のテンプレートを配置します。
func writeTestTemplates(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range map[string]string{
		"layout.html": testLayout,
		"index.html":  testIndex,
		"story.html":  testStory,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func testHandlerConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		ImageBackend:     config.BackendImagen,
		MaxImagesPerLine: 3,
		TemplateDir:      writeTestTemplates(t),
	}
}

package builder

import (
	"context"
	"fmt"
	"net/http"

	"lyric-story-web/internal/config"
	"lyric-story-web/internal/generator"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// buildImageGenerator は設定されたバックエンドに対応するアダプターを構築します。
func buildImageGenerator(ctx context.Context, cfg *config.Config) (generator.ImageGenerator, error) {
	switch cfg.ImageBackend {
	case config.BackendImagen:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create genai client: %w", err)
		}
		return generator.NewImagenGenerator(client, cfg.ImageModel)

	case config.BackendFlash:
		aiClient, err := gemini.NewClient(ctx, gemini.Config{APIKey: cfg.GeminiAPIKey})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return generator.NewFlashGenerator(aiClient, cfg.FlashImageModel)

	case config.BackendOpenAI:
		httpClient := &http.Client{Timeout: config.DefaultHTTPTimeout}
		return generator.NewOpenAIImageGenerator(httpClient, cfg.OpenAIImageURL, cfg.OpenAIAPIKey, cfg.OpenAIImageModel, cfg.OpenAIImageSize)

	default:
		return nil, fmt.Errorf("unknown image backend: %s", cfg.ImageBackend)
	}
}

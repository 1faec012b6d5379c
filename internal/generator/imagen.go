package generator

import (
	"context"
	"fmt"

	"lyric-story-web/internal/domain"

	"google.golang.org/genai"
)

// imagenModels は genai.Client.Models のうち利用するメソッドの抽象です。
type imagenModels interface {
	GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// ImagenGenerator は Imagen 系モデルをバッチ生成で叩くアダプターです。
// 1回の API 呼び出しで要求枚数をまとめて生成し、インラインバイト列を返します。
type ImagenGenerator struct {
	models imagenModels
	model  string
}

// NewImagenGenerator は genai クライアントを注入して初期化します。
func NewImagenGenerator(client *genai.Client, model string) (*ImagenGenerator, error) {
	if client == nil {
		return nil, fmt.Errorf("client is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model name is required")
	}
	return &ImagenGenerator{models: client.Models, model: model}, nil
}

// Generate は要求枚数の画像を一括生成します。
func (g *ImagenGenerator) Generate(ctx context.Context, req domain.GenerationRequest) ([]ImageRef, error) {
	resp, err := g.models.GenerateImages(ctx, g.model, req.Prompt, &genai.GenerateImagesConfig{
		NumberOfImages: int32(req.Count),
		AspectRatio:    req.AspectRatio,
	})
	if err != nil {
		return nil, domain.Transient(fmt.Errorf("imagen generation failed: %w", err))
	}

	var refs []ImageRef
	for _, gen := range resp.GeneratedImages {
		if gen.Image == nil || len(gen.Image.ImageBytes) == 0 {
			continue
		}
		mime := gen.Image.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		refs = append(refs, ImageRef{Data: gen.Image.ImageBytes, MimeType: mime})
	}

	if len(refs) == 0 {
		return nil, domain.ErrEmptyResult
	}
	return refs, nil
}

package generator

import (
	"context"
	"fmt"

	"lyric-story-web/internal/domain"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// FlashGenerator は flash-image 系モデルを叩くアダプターです。
// このモデル系列は1回の呼び出しで1枚しか返さないため、
// 要求枚数に達するまで呼び出しを繰り返します。
type FlashGenerator struct {
	aiClient gemini.GenerativeModel
	model    string
}

// NewFlashGenerator は gemini クライアントを注入して初期化します。
func NewFlashGenerator(aiClient gemini.GenerativeModel, model string) (*FlashGenerator, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model name is required")
	}
	return &FlashGenerator{aiClient: aiClient, model: model}, nil
}

// Generate は要求枚数に達するまで1枚ずつ生成します。
// 途中の呼び出しが通信エラーで失敗した場合は行全体を一時的失敗として返します。
func (g *FlashGenerator) Generate(ctx context.Context, req domain.GenerationRequest) ([]ImageRef, error) {
	parts := []*genai.Part{{Text: req.Prompt}}
	opts := gemini.GenerateOptions{AspectRatio: req.AspectRatio}

	var refs []ImageRef
	for i := 0; i < req.Count; i++ {
		resp, err := g.aiClient.GenerateWithParts(ctx, g.model, parts, opts)
		if err != nil {
			return nil, domain.Transient(fmt.Errorf("flash-image generation failed: %w", err))
		}

		ref, ok := parseInlineResponse(resp)
		if !ok {
			// 画像の無い応答はこの1枚分のみスキップし、残りの試行は続けます。
			continue
		}
		refs = append(refs, ref)
	}

	if len(refs) == 0 {
		return nil, domain.ErrEmptyResult
	}
	return refs, nil
}

// parseInlineResponse はレスポンス候補からインライン画像データを抽出します。
func parseInlineResponse(resp *gemini.Response) (ImageRef, bool) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return ImageRef{}, false
	}

	candidate := resp.RawResponse.Candidates[0]
	if candidate.Content == nil {
		return ImageRef{}, false
	}
	for _, part := range candidate.Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return ImageRef{Data: part.InlineData.Data, MimeType: part.InlineData.MIMEType}, true
		}
	}
	return ImageRef{}, false
}

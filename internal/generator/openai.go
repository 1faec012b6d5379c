package generator

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"lyric-story-web/internal/domain"
)

// imageGenerationRequest は OpenAI 互換 images エンドポイントへのリクエストです。
type imageGenerationRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

// imageGenerationResponse は OpenAI 互換 images エンドポイントのレスポンスです。
type imageGenerationResponse struct {
	Created int64       `json:"created"`
	Data    []imageData `json:"data"`
	Error   *apiError   `json:"error"`
}

// imageData は生成された1枚分のデータです。ホスト済み URL か
// base64 バイト列のどちらかが埋まります。
type imageData struct {
	URL           string `json:"url"`
	B64JSON       string `json:"b64_json"`
	RevisedPrompt string `json:"revised_prompt"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// OpenAIImageGenerator は OpenAI 互換の images/generations エンドポイントを
// 叩くアダプターです。DALL-E 系のホスト済み URL 応答をそのまま参照として返します。
type OpenAIImageGenerator struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	model      string
	size       string
}

// NewOpenAIImageGenerator は接続情報を注入して初期化します。
func NewOpenAIImageGenerator(httpClient *http.Client, endpoint, apiKey, model, size string) (*OpenAIImageGenerator, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	if endpoint == "" || apiKey == "" {
		return nil, fmt.Errorf("endpoint and apiKey are required")
	}
	return &OpenAIImageGenerator{
		httpClient: httpClient,
		endpoint:   endpoint,
		apiKey:     apiKey,
		model:      model,
		size:       size,
	}, nil
}

// Generate は要求枚数の画像を一括生成します。
func (g *OpenAIImageGenerator) Generate(ctx context.Context, req domain.GenerationRequest) ([]ImageRef, error) {
	payload := imageGenerationRequest{
		Model:  g.model,
		Prompt: req.Prompt,
		N:      req.Count,
		Size:   g.size,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal image request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, domain.Transient(fmt.Errorf("image API request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// 本文の先頭だけをエラーメッセージに含めます。
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, domain.Transient(fmt.Errorf("image API returned status %d: %s", resp.StatusCode, snippet))
	}

	var decoded imageGenerationResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, domain.Transient(fmt.Errorf("failed to decode image response: %w", err))
	}
	if decoded.Error != nil {
		return nil, fmt.Errorf("image API error (%s): %s", decoded.Error.Type, decoded.Error.Message)
	}

	var refs []ImageRef
	for _, item := range decoded.Data {
		switch {
		case item.URL != "":
			refs = append(refs, ImageRef{URL: item.URL})
		case item.B64JSON != "":
			raw, err := base64.StdEncoding.DecodeString(item.B64JSON)
			if err != nil {
				continue
			}
			refs = append(refs, ImageRef{Data: raw, MimeType: "image/png"})
		}
	}

	if len(refs) == 0 {
		return nil, domain.ErrEmptyResult
	}
	return refs, nil
}

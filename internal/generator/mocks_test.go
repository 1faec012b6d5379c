package generator

import (
	"context"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// --- Mocks ---

// mockImagenModels は imagenModels インターフェースのテスト用モックです。
type mockImagenModels struct {
	calls        int
	lastPrompt   string
	lastConfig   *genai.GenerateImagesConfig
	generateFunc func(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

func (m *mockImagenModels) GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	m.calls++
	m.lastPrompt = prompt
	m.lastConfig = config
	if m.generateFunc != nil {
		return m.generateFunc(ctx, model, prompt, config)
	}
	return &genai.GenerateImagesResponse{}, nil
}

// mockAIClient は gemini.GenerativeModel のテスト用モックです。
// 利用しないメソッドはインターフェースの埋め込みで解決します。
type mockAIClient struct {
	gemini.GenerativeModel
	calls        int
	generateFunc func(model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

func (m *mockAIClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.calls++
	if m.generateFunc != nil {
		return m.generateFunc(model, parts, opts)
	}
	return nil, nil
}

// inlineImageResponse は1枚のインライン画像を含むレスポンスを組み立てます。
func inlineImageResponse(mime string, data []byte) *gemini.Response {
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{
					Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: mime, Data: data}}},
				},
			}},
		},
	}
}

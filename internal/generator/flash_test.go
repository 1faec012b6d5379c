package generator

import (
	"context"
	"errors"
	"testing"

	"lyric-story-web/internal/domain"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestFlashGenerator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("要求枚数に達するまで1枚ずつ呼び出す", func(t *testing.T) {
		mock := &mockAIClient{
			generateFunc: func(model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				return inlineImageResponse("image/png", []byte("flash-image")), nil
			},
		}
		g, err := NewFlashGenerator(mock, "gemini-2.5-flash-image")
		require.NoError(t, err)

		refs, err := g.Generate(ctx, domain.GenerationRequest{Prompt: "neon rain", Count: 3, AspectRatio: "1:1"})

		require.NoError(t, err)
		assert.Len(t, refs, 3)
		assert.Equal(t, 3, mock.calls, "1呼び出し1枚のモデルなので枚数分の呼び出しになること")
		assert.Equal(t, []byte("flash-image"), refs[0].Data)
		assert.Equal(t, "image/png", refs[0].MimeType)
	})

	t.Run("通信エラーは一時的失敗として行全体を失敗させる", func(t *testing.T) {
		mock := &mockAIClient{
			generateFunc: func(model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				return nil, errors.New("deadline exceeded")
			},
		}
		g, _ := NewFlashGenerator(mock, "gemini-2.5-flash-image")

		_, err := g.Generate(ctx, domain.GenerationRequest{Prompt: "p", Count: 2})

		require.Error(t, err)
		assert.True(t, domain.IsTransient(err))
	})

	t.Run("インライン画像を含まない応答のみの場合は ErrEmptyResult", func(t *testing.T) {
		mock := &mockAIClient{
			generateFunc: func(model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				// テキストのみの候補を返します。
				return &gemini.Response{
					RawResponse: &genai.GenerateContentResponse{
						Candidates: []*genai.Candidate{{
							Content: &genai.Content{Parts: []*genai.Part{{Text: "no image here"}}},
						}},
					},
				}, nil
			},
		}
		g, _ := NewFlashGenerator(mock, "gemini-2.5-flash-image")

		_, err := g.Generate(ctx, domain.GenerationRequest{Prompt: "p", Count: 1})

		require.ErrorIs(t, err, domain.ErrEmptyResult)
	})
}

func TestParseInlineResponse(t *testing.T) {
	t.Run("先頭候補からインライン画像を抽出する", func(t *testing.T) {
		ref, ok := parseInlineResponse(inlineImageResponse("image/webp", []byte("abc")))
		require.True(t, ok)
		assert.Equal(t, "image/webp", ref.MimeType)
		assert.Equal(t, []byte("abc"), ref.Data)
	})

	t.Run("nil や候補なしの応答は安全に false を返す", func(t *testing.T) {
		_, ok := parseInlineResponse(nil)
		assert.False(t, ok)

		_, ok = parseInlineResponse(&gemini.Response{})
		assert.False(t, ok)

		_, ok = parseInlineResponse(&gemini.Response{RawResponse: &genai.GenerateContentResponse{}})
		assert.False(t, ok)
	})
}

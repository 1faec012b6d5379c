package domain

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeneratedImage(t *testing.T) {
	t.Run("キャプションは行内の1始まり番号を含む", func(t *testing.T) {
		img := NewGeneratedImage("silent night", 3, 2)

		assert.Equal(t, "silent night", img.Line)
		assert.Equal(t, 3, img.LineIndex)
		assert.Equal(t, 2, img.Index)
		assert.Equal(t, "'silent night' (Image 2)", img.Caption)
	})
}

func TestGeneratedImage_Src(t *testing.T) {
	t.Run("URL があればそのまま返す", func(t *testing.T) {
		img := GeneratedImage{URL: "https://cdn.example.com/a.png", Data: []byte("unused")}
		assert.Equal(t, "https://cdn.example.com/a.png", img.Src())
	})

	t.Run("URL が無ければ data URL を組み立てる", func(t *testing.T) {
		img := GeneratedImage{Data: []byte("png-bytes"), MimeType: "image/jpeg"}
		want := fmt.Sprintf("data:image/jpeg;base64,%s", base64.StdEncoding.EncodeToString([]byte("png-bytes")))
		assert.Equal(t, want, img.Src())
	})

	t.Run("MIME タイプが空なら image/png を既定とする", func(t *testing.T) {
		img := GeneratedImage{Data: []byte("x")}
		assert.Contains(t, img.Src(), "data:image/png;base64,")
	})
}

func TestStoryResult(t *testing.T) {
	t.Run("Append は挿入順を保持する", func(t *testing.T) {
		var r StoryResult
		r.Reset("run-1")

		r.Append(NewGeneratedImage("line A", 0, 1))
		r.Append(NewGeneratedImage("line A", 0, 2))
		r.Append(NewGeneratedImage("line B", 1, 1))

		require.Equal(t, 3, r.Len())
		assert.Equal(t, "'line A' (Image 1)", r.Images()[0].Caption)
		assert.Equal(t, "'line A' (Image 2)", r.Images()[1].Caption)
		assert.Equal(t, "'line B' (Image 1)", r.Images()[2].Caption)
	})

	t.Run("Reset は前回実行の画像と失敗を完全に破棄する", func(t *testing.T) {
		var r StoryResult
		r.Reset("run-1")
		r.Append(NewGeneratedImage("old", 0, 1))
		r.AddFailure(1, "bad line", "boom")

		r.Reset("run-2")

		assert.Equal(t, "run-2", r.RunID)
		assert.Zero(t, r.Len())
		assert.Empty(t, r.Images())
		assert.Empty(t, r.Failures())
	})

	t.Run("AddFailure は行の情報を記録する", func(t *testing.T) {
		var r StoryResult
		r.Reset("run-1")
		r.AddFailure(2, "stormy sea", "exceeded maximum retry attempts")

		require.Len(t, r.Failures(), 1)
		f := r.Failures()[0]
		assert.Equal(t, 2, f.LineIndex)
		assert.Equal(t, "stormy sea", f.Line)
		assert.Contains(t, f.Message, "retry")
	})
}

package domain

import (
	"encoding/base64"
	"fmt"
)

// GenerationRequest は1つの歌詞行から導出される画像生成要求です。
type GenerationRequest struct {
	Prompt      string
	Count       int    // 生成する画像の枚数 (1 以上)
	AspectRatio string // パイプラインが固定する補助パラメータ
}

// GeneratedImage は生成結果の1単位です。
// バックエンドによって Data (インラインバイト列) か URL (ホスト済み参照) の
// いずれかが埋まります。生成後に変更されることはありません。
type GeneratedImage struct {
	Line      string // 元になった歌詞行
	LineIndex int    // 行の通し番号 (0始まり)
	Index     int    // 行内バッチでの番号 (1始まり)
	Caption   string
	Data      []byte
	MimeType  string
	URL       string
}

// NewGeneratedImage はキャプションを組み立てて GeneratedImage を生成します。
// キャプション書式は「'<行>' (Image <n>)」で、n は行内の 1 始まり番号です。
func NewGeneratedImage(line string, lineIndex, index int) GeneratedImage {
	return GeneratedImage{
		Line:      line,
		LineIndex: lineIndex,
		Index:     index,
		Caption:   fmt.Sprintf("'%s' (Image %d)", line, index),
	}
}

// Src はブラウザの <img> にそのまま渡せる参照を返します。
// ホスト済み URL があればそれを、無ければ data URL を組み立てます。
func (g GeneratedImage) Src() string {
	if g.URL != "" {
		return g.URL
	}
	mime := g.MimeType
	if mime == "" {
		mime = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(g.Data))
}

// LineFailure は1行分の処理失敗の記録です。失敗しても後続行の処理は継続されます。
type LineFailure struct {
	Line      string
	LineIndex int
	Message   string
}

// StoryResult は1回の生成実行に紐づく結果コレクションです。
// 追記のみ可能な順序付きリストで、新しい実行の開始時に Reset で全消去されます。
// 順序は (行順, 行内バッチ順) を反映し、並べ替えや重複排除は行いません。
type StoryResult struct {
	RunID    string
	images   []GeneratedImage
	failures []LineFailure
}

// Reset は前回実行の結果を完全に破棄し、新しい実行IDを設定します。
func (r *StoryResult) Reset(runID string) {
	r.RunID = runID
	r.images = nil
	r.failures = nil
}

// Append は生成された画像を末尾に追加します。
// 後続行が失敗しても部分的な結果が残るよう、生成され次第呼び出されます。
func (r *StoryResult) Append(img GeneratedImage) {
	r.images = append(r.images, img)
}

// AddFailure は行単位の失敗を記録します。
func (r *StoryResult) AddFailure(lineIndex int, line, message string) {
	r.failures = append(r.failures, LineFailure{Line: line, LineIndex: lineIndex, Message: message})
}

// Images は挿入順の画像列を返します。
func (r *StoryResult) Images() []GeneratedImage {
	return r.images
}

// Failures は記録された行単位の失敗を返します。
func (r *StoryResult) Failures() []LineFailure {
	return r.failures
}

// Len は収集済みの画像数を返します。
func (r *StoryResult) Len() int {
	return len(r.images)
}
